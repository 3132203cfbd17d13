// Package verification provides HTTP handlers for employer verification requests.
package verification

import (
	"context"
	"net/http"

	"findjob-backend/internal/model"
	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// VerificationController handles endpoints under /verifications.
type VerificationController struct {
	Verifications *service.VerificationService
}

// NewVerificationController creates a new instance of VerificationController.
func NewVerificationController(verifications *service.VerificationService) *VerificationController {
	return &VerificationController{
		Verifications: verifications,
	}
}

// SubmitVerification files a verification document for the logged in employer.
// @Summary Submit verification request
// @Description Employers only. At most one pending request per employer.
// @Tags Verification
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param verification body service.VerificationInput true "Document link"
// @Success 201 {object} model.Verification
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid link or request already pending"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /verifications [post]
func (vc *VerificationController) SubmitVerification(c *gin.Context) {
	var in service.VerificationInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	v, err := vc.Verifications.Submit(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetVerifications lists verification requests.
// @Summary List verification requests
// @Description Admins see every request, employers their own.
// @Tags Verification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} model.Verification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer or admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /verifications [get]
func (vc *VerificationController) GetVerifications(c *gin.Context) {
	list, err := vc.Verifications.List(c.Request.Context(), utilities.OptionalUser(c), c.Query("status"))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ApproveVerification approves a request and marks the employer verified.
// @Summary Approve verification request
// @Description Admin only.
// @Tags Verification
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Verification ID"
// @Param decision body service.DecisionInput false "Optional admin note"
// @Success 200 {object} model.Verification
// @Failure 400 {object} utilities.ValidationErrorResponse "Request already decided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Request not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /verifications/{id}/approve [patch]
func (vc *VerificationController) ApproveVerification(c *gin.Context) {
	vc.decide(c, vc.Verifications.Approve)
}

// RejectVerification rejects a request.
// @Summary Reject verification request
// @Description Admin only.
// @Tags Verification
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Verification ID"
// @Param decision body service.DecisionInput false "Optional admin note"
// @Success 200 {object} model.Verification
// @Failure 400 {object} utilities.ValidationErrorResponse "Request already decided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Request not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /verifications/{id}/reject [patch]
func (vc *VerificationController) RejectVerification(c *gin.Context) {
	vc.decide(c, vc.Verifications.Reject)
}

func (vc *VerificationController) decide(c *gin.Context, fn func(ctx context.Context, caller *model.User, id uint, in service.DecisionInput) (model.Verification, error)) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.DecisionInput
	if !utilities.BindOptionalJSON(c, &in) {
		return
	}
	v, err := fn(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
