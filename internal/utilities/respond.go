package utilities

import (
	"errors"
	"net/http"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ValidationErrorResponse type for swagger docs
type ValidationErrorResponse struct {
	Error  string                `json:"error"`
	Fields []apperror.FieldError `json:"fields"`
}

// PostgreSQL error codes the services translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint error.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key error.
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// ViolatedConstraint return the constraint name of a PostgreSQL error, if any.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// RespondError write the HTTP response matching err and abort the chain.
// Unknown errors are logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	if ve, ok := apperror.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperror.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, apperror.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, apperror.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		log := logger.Get()
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
