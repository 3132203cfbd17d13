// Package application provides HTTP handlers for job application operations.
package application

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Applications *service.ApplicationService
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(apps *service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Applications: apps,
	}
}

// ApplicationHandler handles the creation of a new job application by a candidate.
// @Summary Create job application
// @Description Only candidates can apply, only to active jobs, and only once per job. cv_link defaults to the profile CV.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body service.ApplyInput true "Application information"
// @Success 201 {object} model.Application "Successfully apply job post"
// @Failure 400 {object} utilities.ValidationErrorResponse "Job not active, duplicate application or invalid cv_link"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply [post]
func (ac *ApplicationController) ApplicationHandler(c *gin.Context) {
	var in service.ApplyInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	app, err := ac.Applications.Create(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetApplications lists applications visible to the caller.
// @Summary List applications
// @Description Candidates see their own, employers those to their jobs, admins all.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply [get]
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	apps, err := ac.Applications.List(c.Request.Context(), utilities.OptionalUser(c))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetApplication return one application within the caller's scope.
// @Summary Get application by ID
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply/{id} [get]
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	app, err := ac.Applications.Get(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// GetJobApplications lists applications to one job.
// @Summary List applications of a job
// @Description Only the job owner or an admin may list.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id path integer true "Job ID"
// @Success 200 {array} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply/job/{job_id} [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	jobID, ok := utilities.ParseID(c, "job_id")
	if !ok {
		return
	}
	apps, err := ac.Applications.ListByJob(c.Request.Context(), utilities.OptionalUser(c), jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ApproveApplication accepts a pending application.
// @Summary Approve application
// @Description Only the job owner or an admin may decide. Approving twice is a no-op; approving a rejected application fails.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ValidationErrorResponse "Already rejected"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply/{id}/approve [patch]
func (ac *ApplicationController) ApproveApplication(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	app, err := ac.Applications.Approve(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// RejectApplication declines a pending application.
// @Summary Reject application
// @Description Only the job owner or an admin may decide. Rejecting twice is a no-op; rejecting an approved application fails.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Application ID"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ValidationErrorResponse "Already approved"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply/{id}/reject [patch]
func (ac *ApplicationController) RejectApplication(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	app, err := ac.Applications.Reject(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
