// Package candidate provides HTTP handlers for candidate profiles.
package candidate

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// CandidateController handles endpoints under /candidates.
type CandidateController struct {
	Candidates *service.CandidateService
}

// NewCandidateController creates a new instance of CandidateController.
func NewCandidateController(candidates *service.CandidateService) *CandidateController {
	return &CandidateController{
		Candidates: candidates,
	}
}

// GetCandidateByID retrieves one candidate profile.
// @Summary Retrieve candidate profile by ID
// @Tags Candidate
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Candidate ID"
// @Success 200 {object} model.Candidate
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Candidate not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidates/{id} [get]
func (cc *CandidateController) GetCandidateByID(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	candidate, err := cc.Candidates.Get(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// EditCandidateProfile overwrites the given fields of a candidate profile.
// @Summary Edit candidate profile
// @Description Owner or admin only.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Candidate ID"
// @Param candidate_profile body service.UpdateCandidateInput true "Candidate info to be written"
// @Success 200 {object} model.Candidate "Successfully overwrite"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Candidate not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidates/{id} [patch]
func (cc *CandidateController) EditCandidateProfile(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.UpdateCandidateInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	candidate, err := cc.Candidates.Update(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}
