package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/platform/apperr"
)

var errInvalidSample = apperr.Validation("invalid sample")

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank,email"`
	Age   *int   `json:"age" validate:"omitempty,gte=0"`
}

func TestStruct_OK(t *testing.T) {
	age := 3
	err := New().Struct(errInvalidSample, sample{Name: "Rex", Email: "a@b.com", Age: &age})
	assert.NoError(t, err)
}

func TestStruct_ReportsFieldsByJSONName(t *testing.T) {
	age := -1
	err := New().Struct(errInvalidSample, sample{Name: "   ", Email: "nope", Age: &age})
	require.Error(t, err)

	assert.True(t, errors.Is(err, errInvalidSample))
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "invalid sample", apperr.Message(err))

	details := apperr.Details(err)
	assert.Contains(t, details, "name is required")
	assert.Contains(t, details, "email must be a valid email")
	assert.Contains(t, details, "age must be greater than or equal to 0")
}
