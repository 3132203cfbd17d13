package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Collects(t *testing.T) {
	ve := &ValidationError{}
	assert.NoError(t, ve.OrNil())

	ve.Add("username", "too short").Add("password", "contains whitespace")
	assert.True(t, ve.Has("username"))
	assert.False(t, ve.Has("email"))
	assert.Error(t, ve.OrNil())
	assert.Contains(t, ve.Error(), "username: too short")
	assert.Contains(t, ve.Error(), "password: contains whitespace")
}

func TestAsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("create job: %w", Invalid("work_hours", "must be greater than 0"))

	ve, ok := AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "work_hours", ve.Fields[0].Field)

	_, ok = AsValidation(errors.New("boom"))
	assert.False(t, ok)
}

func TestSentinels(t *testing.T) {
	err := fmt.Errorf("approve: %w", ErrForbidden)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))
}
