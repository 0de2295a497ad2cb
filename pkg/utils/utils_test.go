package utils

import (
	"context"
	"regexp"
	"testing"
	"time"

	"movie-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Username string  `validate:"required,min=3"`
	Email    string  `validate:"required,email"`
	Rating   float64 `validate:"gte=0,lte=10"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(registerForm{Username: "ab", Email: "nope", Rating: 11})
	require.Len(t, errs, 3)
	assert.Equal(t, "Minimum length is 3", errs["Username"])
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Must be at most 10", errs["Rating"])

	assert.Equal(t,
		"Email: Invalid email format; Rating: Must be at most 10; Username: Minimum length is 3",
		FormatValidationErrors(errs))

	assert.Nil(t, ValidateStruct(registerForm{Username: "alice", Email: "a@b.co", Rating: 5}))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID(time.Date(2026, 10, 18, 19, 5, 7, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^BOOK-20261018-190507-\d{4}$`), id)
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))

	page, perPage := NormalizePage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPerPage, perPage)
}

func TestUserContextRoundTrip(t *testing.T) {
	assert.False(t, GetUserContext(context.Background()).IsAuthenticated())

	uc := entity.NewUserContext(&entity.User{Role: entity.RoleUser}, "tok")
	got := GetUserContext(SetUserContext(context.Background(), uc))
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.IsAuthenticated())
}
