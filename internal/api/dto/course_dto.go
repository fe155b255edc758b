package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// Price accepts a JSON number or a string holding one. Hex floats, Inf and NaN are rejected.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("price %q is not a number", data)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("price %q is not a finite number", data)
	}
	*p = Price(v)
	return nil
}

// CreateCourseRequest payload for POST /admin/course.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,max=500"`
	Price       Price  `json:"price" validate:"finite,gt=0"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
}

// Course converts the request into a domain course owned by creatorID.
func (r CreateCourseRequest) Course(creatorID string) *domain.Course {
	return &domain.Course{
		Title:       r.Title,
		Description: r.Description,
		Price:       float64(r.Price),
		ImageURL:    r.ImageURL,
		CreatorID:   creatorID,
	}
}

// UpdateCourseRequest payload for PUT /admin/course/:id. Absent fields are kept.
type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *Price  `json:"price" validate:"omitempty,finite,gt=0"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

// Patch converts the request into a domain patch.
func (r UpdateCourseRequest) Patch() domain.CoursePatch {
	patch := domain.CoursePatch{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
	if r.Price != nil {
		price := float64(*r.Price)
		patch.Price = &price
	}
	return patch
}

// CourseResponse wraps a single course.
type CourseResponse struct {
	Message string         `json:"message"`
	Course  *domain.Course `json:"course"`
}

// CoursesResponse wraps a course list.
type CoursesResponse struct {
	Message string          `json:"message"`
	Courses []domain.Course `json:"courses"`
}
