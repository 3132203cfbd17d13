package model

import (
	"findjob-backend/internal/apperror"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplication_DecideFromPending(t *testing.T) {
	app := Application{Status: ApplicationStatusPending}
	changed, err := app.Decide(ApplicationStatusApproved)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ApplicationStatusApproved, app.Status)
}

func TestApplication_DecideSameStatusIsNoop(t *testing.T) {
	app := Application{Status: ApplicationStatusRejected}
	changed, err := app.Decide(ApplicationStatusRejected)
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestApplication_DecideAcrossTerminalFails(t *testing.T) {
	app := Application{Status: ApplicationStatusApproved}
	changed, err := app.Decide(ApplicationStatusRejected)
	assert.False(t, changed)
	_, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, ApplicationStatusApproved, app.Status)
}

func TestApplication_DecidePendingIsInvalid(t *testing.T) {
	app := Application{Status: ApplicationStatusPending}
	_, err := app.Decide(ApplicationStatusPending)
	assert.Error(t, err)
}
