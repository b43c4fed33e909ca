package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required"`
}

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Bio   string   `json:"bio" validate:"min=5"`
	Tags  []string `json:"tags" validate:"min=1"`
	Items []item   `json:"items" validate:"dive"`
	Kind  string   `json:"kind" validate:"oneof=a b"`
	Terms bool     `json:"terms" validate:"eq=true"`
}

func TestValidateReportsJSONPaths(t *testing.T) {
	err := Validate(&sample{Email: "nope", Bio: "hi", Items: []item{{}}, Kind: "c"})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"email":         "must be a valid email address",
		"bio":           "must be at least 5 characters",
		"tags":          "must contain at least 1 item(s)",
		"items[0].name": "is required",
		"kind":          "must be one of: a b",
		"terms":         "must be true",
	}, verr.Fields)
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(&sample{
		Email: "a@x.com", Bio: "hello", Tags: []string{"x"}, Kind: "a", Terms: true,
	}))
}

type credentials struct {
	Name     string `json:"name" validate:"notblank"`
	Password string `json:"password" validate:"required,bcryptmax"`
}

func TestNotBlankAndBcryptMax(t *testing.T) {
	err := Validate(&credentials{Name: " \t ", Password: strings.Repeat("é", 37)})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"password": "must be at most 72 bytes",
	}, verr.Fields)

	assert.NoError(t, Validate(&credentials{Name: "Jo", Password: strings.Repeat("é", 36)}))
	assert.NoError(t, Validate(&credentials{Name: "Jo", Password: strings.Repeat("p", MaxPasswordBytes)}))
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	hour := base.Add(time.Hour)

	assert.True(t, Overlaps(base, hour, base.Add(30*time.Minute), hour.Add(time.Hour)))
	assert.True(t, Overlaps(base, hour, base, hour))
	assert.False(t, Overlaps(base, hour, hour, hour.Add(time.Hour)))
	assert.False(t, Overlaps(hour, hour.Add(time.Hour), base, hour))
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
