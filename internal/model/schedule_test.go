package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkSchedule_Validate(t *testing.T) {
	now := time.Now()

	ok := WorkSchedule{StartTime: now, EndTime: now.Add(time.Hour)}
	assert.NoError(t, ok.Validate())

	same := WorkSchedule{StartTime: now, EndTime: now}
	assert.Error(t, same.Validate())

	reversed := WorkSchedule{StartTime: now.Add(time.Hour), EndTime: now}
	assert.Error(t, reversed.Validate())

	badStatus := WorkSchedule{StartTime: now, EndTime: now.Add(time.Hour), Status: "paused"}
	assert.Error(t, badStatus.Validate())
}

func TestCoordinates_Validate(t *testing.T) {
	assert.NoError(t, Coordinates{Latitude: 10.77, Longitude: 106.7}.Validate("coordinates"))
	assert.Error(t, Coordinates{Latitude: -91}.Validate("coordinates"))
	assert.Error(t, Coordinates{Longitude: 180.5}.Validate("coordinates"))
}
