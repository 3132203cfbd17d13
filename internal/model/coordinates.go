package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	"findjob-backend/internal/apperror"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// Validate checks that both components are finite and within range.
func (c Coordinates) Validate(field string) error {
	ve := &apperror.ValidationError{}
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		ve.Add(field+".latitude", "must be between -90 and 90")
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		ve.Add(field+".longitude", "must be between -180 and 180")
	}
	return ve.OrNil()
}

// Value stores coordinates as a jsonb object.
func (c Coordinates) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a jsonb object.
func (c *Coordinates) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("coordinates: cannot scan %T", src)
	}
}

// MapData is the payload of the map-data endpoints.
type MapData struct {
	Location         string      `json:"location"`
	Coordinates      Coordinates `json:"coordinates"`
	GoogleMapsAPIKey string      `json:"google_maps_api_key"`
}
