package domain

import "time"

// Course is a sellable course owned by the admin that created it.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CoursePatch carries the optional fields of a partial update. Nil means "keep".
type CoursePatch struct {
	Title       *string
	Description *string
	Price       *float64
	ImageURL    *string
}

// Apply merges the patch into c. CreatorID is never touched.
func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
}
