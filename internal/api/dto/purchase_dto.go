package dto

import (
	"strings"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// PurchaseRequest payload for POST /course/purchase.
type PurchaseRequest struct {
	CourseID string `json:"courseId" validate:"required,objectid"`
}

// Normalize lowercases the course id so hex ids match regardless of case.
func (r *PurchaseRequest) Normalize() {
	r.CourseID = strings.ToLower(strings.TrimSpace(r.CourseID))
}

// PurchaseResponse wraps the created purchase.
type PurchaseResponse struct {
	Message  string           `json:"message"`
	Purchase *domain.Purchase `json:"purchase"`
}
