// Package jobpost provides HTTP handlers for job post related operations.
package jobpost

import (
	"net/http"
	"strings"

	"findjob-backend/internal/model"
	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// JobPostController handles job post related endpoints
type JobPostController struct {
	Jobs *service.JobService
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(jobs *service.JobService) *JobPostController {
	return &JobPostController{
		Jobs: jobs,
	}
}

type statusBody struct {
	Status model.JobStatus `json:"status"`
}

// CreateJobPostHandler handles the creation of a new job post by an employer.
// @Summary Create job post based on given json structure
// @Description Only employers have access to this endpoint. New posts start as draft and followers of the employer are notified.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully create job post"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid job post fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobPostController) CreateJobPostHandler(c *gin.Context) {
	var in service.JobInput
	if !utilities.BindJSON(c, &in) {
		return
	}

	job, err := jc.Jobs.Create(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetPosts fetches job posts that match query.
// @Summary Get job posts based on query
// @Description Every query is optional. Drafts are only listed for their owner and admins.
// @Tags Job
// @Produce json
// @Param q query string false "Search from job title with substring matching and case insensitive"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Param category_id query integer false "Category ID, exact match"
// @Param status query string false "draft, active, closed or completed"
// @Param employer_id query integer false "Employer ID, exact match"
// @Success 200 {array} model.Job "Return job post(s)"
// @Failure 400 {object} utilities.ErrorResponse "Invalid query"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobPostController) GetPosts(c *gin.Context) {
	categoryID, ok := utilities.QueryUint(c, "category_id")
	if !ok {
		return
	}
	employerID, ok := utilities.QueryUint(c, "employer_id")
	if !ok {
		return
	}
	filter := service.JobFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		Location:   strings.TrimSpace(c.Query("location")),
		CategoryID: categoryID,
		Status:     model.JobStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		EmployerID: employerID,
	}

	jobs, err := jc.Jobs.List(c.Request.Context(), utilities.OptionalUser(c), filter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetPostByID fetches a job post by its ID.
// @Summary Get job post by ID
// @Tags Job
// @Produce json
// @Param id path integer true "ID of desired job post"
// @Success 200 {object} model.Job "Return the job post with the specified ID"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobPostController) GetPostByID(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	job, err := jc.Jobs.Get(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetPostEmployer return the employer owning a job post.
// @Summary Get employer of a job post
// @Tags Job
// @Produce json
// @Param id path integer true "ID of job post"
// @Success 200 {object} model.Employer
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/employer [get]
func (jc *JobPostController) GetPostEmployer(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	employer, err := jc.Jobs.Employer(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

// GetPostMapData return location data of a job post.
// @Summary Get map data of a job post
// @Tags Job
// @Produce json
// @Param id path integer true "ID of job post"
// @Success 200 {object} model.MapData
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found or no map data available"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/map-data [get]
func (jc *JobPostController) GetPostMapData(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	data, err := jc.Jobs.MapData(c.Request.Context(), utilities.OptionalUser(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// EditJobPost edits a job post.
// @Summary Edit job post
// @Description Only the owner or an admin may edit. Omitted fields stay unchanged.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of job post"
// @Param Job body service.UpdateJobInput true "Fields to change"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobPostController) EditJobPost(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.UpdateJobInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	job, err := jc.Jobs.Update(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJobPost deletes a job post together with its applications and schedules.
// @Summary Delete job post
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of job post"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobPostController) DeleteJobPost(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	if err := jc.Jobs.Delete(c.Request.Context(), utilities.OptionalUser(c), id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job post deleted successfully"})
}

// SetPostStatus moves a job post through its lifecycle.
// @Summary Change job post status
// @Description Allowed: draft to active, active to closed or completed, closed to completed. Repeating the current status is accepted.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of job post"
// @Param Status body statusBody true "Target status"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ValidationErrorResponse "Transition not allowed"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/status [patch]
func (jc *JobPostController) SetPostStatus(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var body statusBody
	if !utilities.BindJSON(c, &body) {
		return
	}
	job, err := jc.Jobs.SetStatus(c.Request.Context(), utilities.OptionalUser(c), id, body.Status)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
