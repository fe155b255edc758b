package validation_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/validation"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

func details(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidationFailed, de.Code)
	return de.Details
}

func TestSignupSchema(t *testing.T) {
	valid := dto.SignupRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "password1"}
	assert.NoError(t, validation.Struct(valid))

	cases := []struct {
		name  string
		req   dto.SignupRequest
		field string
	}{
		{"bad email", dto.SignupRequest{FirstName: "A", LastName: "B", Email: "nope", Password: "password1"}, "email"},
		{"short password", dto.SignupRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "short"}, "password"},
		{"long password", dto.SignupRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Password: strings.Repeat("x", 33)}, "password"},
		{"missing first name", dto.SignupRequest{LastName: "B", Email: "a@b.com", Password: "password1"}, "firstName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, details(t, validation.Struct(tc.req)), tc.field)
		})
	}
}

func TestCreateCourseSchema(t *testing.T) {
	req := dto.CreateCourseRequest{Title: "Go", Description: "basics", Price: 10, ImageURL: "https://img.example.com/go.png"}
	assert.NoError(t, validation.Struct(req))

	req.Price = 0
	assert.Contains(t, details(t, validation.Struct(req)), "price")

	req.Price = 10
	req.ImageURL = "not a url"
	assert.Contains(t, details(t, validation.Struct(req)), "imageUrl")

	req.ImageURL = "https://img.example.com/go.png"
	req.Description = strings.Repeat("d", 501)
	assert.Equal(t, "maximum 500 characters", details(t, validation.Struct(req))["description"])
}

func TestUpdateCourseSchemaAllowsPartial(t *testing.T) {
	assert.NoError(t, validation.Struct(dto.UpdateCourseRequest{}))

	bad := dto.Price(-1)
	assert.Contains(t, details(t, validation.Struct(dto.UpdateCourseRequest{Price: &bad})), "price")
}

func TestPurchaseSchema(t *testing.T) {
	assert.NoError(t, validation.Struct(dto.PurchaseRequest{CourseID: "65a1b2c3d4e5f6a7b8c9d0e1"}))

	for _, id := range []string{"", "123", "zza1b2c3d4e5f6a7b8c9d0e1", "65a1b2c3d4e5f6a7b8c9d0e1ff", "0x1234567890abcdef123456"} {
		assert.Contains(t, details(t, validation.Struct(dto.PurchaseRequest{CourseID: id})), "courseId", id)
	}
}

func TestObjectID(t *testing.T) {
	id, err := validation.ObjectID("id", "65a1b2c3d4e5f6a7b8c9d0e1")
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", id)

	id, err = validation.ObjectID("id", "65A1B2C3D4E5F6A7B8C9D0E1")
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", id)

	for _, bad := range []string{"abc", "0x1234567890abcdef123456", "0X1234567890ABCDEF123456", "65a1b2c3d4e5f6a7b8c9d0eg"} {
		_, err := validation.ObjectID("id", bad)
		assert.Contains(t, details(t, err), "id", bad)
	}
}

func TestPriceCoercion(t *testing.T) {
	var req dto.CreateCourseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"49.5"}`), &req))
	assert.Equal(t, dto.Price(49.5), req.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price":12}`), &req))
	assert.Equal(t, dto.Price(12), req.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price":"cheap"}`), &req))
}

func TestPriceRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"Inf"`, `"+Infinity"`, `"-inf"`, `"NaN"`, `"0x1p3"`, `1e400`, `""`} {
		var req dto.CreateCourseRequest
		assert.Error(t, json.Unmarshal([]byte(`{"price":`+raw+`}`), &req), raw)
	}

	req := dto.CreateCourseRequest{Title: "Go", Description: "basics", Price: dto.Price(math.Inf(1)), ImageURL: "https://img.example.com/go.png"}
	assert.Equal(t, "must be a finite number", details(t, validation.Struct(req))["price"])

	nan := dto.Price(math.NaN())
	assert.Contains(t, details(t, validation.Struct(dto.UpdateCourseRequest{Price: &nan})), "price")
}

func TestPurchaseRequestNormalizesID(t *testing.T) {
	req := dto.PurchaseRequest{CourseID: " 65A1B2C3D4E5F6A7B8C9D0E1 "}
	req.Normalize()
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", req.CourseID)
	assert.NoError(t, validation.Struct(req))
}

func TestParseBody(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "details": de.Details})
		},
	})
	app.Post("/signin", func(c *fiber.Ctx) error {
		var req dto.SigninRequest
		if err := validation.ParseBody(c, &req); err != nil {
			return err
		}
		return c.SendStatus(http.StatusNoContent)
	})

	send := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, send(`{"email":"a@b.com","password":"password1"}`))
	assert.Equal(t, http.StatusBadRequest, send(`{"email":"a@b.com"}`))
	assert.Equal(t, http.StatusBadRequest, send(`{not json`))
}
