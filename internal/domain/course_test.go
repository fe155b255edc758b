package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoursePatchApply(t *testing.T) {
	course := Course{
		ID:          "65a1b2c3d4e5f6a7b8c9d0e1",
		Title:       "Go",
		Description: "basics",
		Price:       10,
		ImageURL:    "https://img.example.com/go.png",
		CreatorID:   "65a1b2c3d4e5f6a7b8c9d0ff",
	}
	title := "Go in depth"
	price := 49.5

	CoursePatch{Title: &title, Price: &price}.Apply(&course)

	assert.Equal(t, "Go in depth", course.Title)
	assert.Equal(t, 49.5, course.Price)
	assert.Equal(t, "basics", course.Description)
	assert.Equal(t, "https://img.example.com/go.png", course.ImageURL)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0ff", course.CreatorID)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("staff").Valid())
}
