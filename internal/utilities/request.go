package utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseID read a positive integer path parameter. On failure it writes 400 and return false.
func ParseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid %s: %q", name, raw),
		})
		return 0, false
	}
	return uint(id), true
}

// QueryUint read an optional positive integer query parameter. Missing
// parameters yield zero. On failure it writes 400 and return false.
func QueryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid %s: %q", name, raw),
		})
		return 0, false
	}
	return uint(v), true
}

// QueryUUID read an optional uuid query parameter.
func QueryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid %s: %q", name, raw),
		})
		return nil, false
	}
	return &id, true
}

// BindJSON decode the request body into dst, rejecting unknown fields.
// On failure it writes 400 and return false.
func BindJSON(c *gin.Context, dst any) bool {
	return bindJSON(c, dst, false)
}

// BindOptionalJSON is BindJSON accepting an empty body.
func BindOptionalJSON(c *gin.Context, dst any) bool {
	return bindJSON(c, dst, true)
}

func bindJSON(c *gin.Context, dst any, optional bool) bool {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return false
	}
	return true
}
