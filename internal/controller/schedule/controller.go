// Package schedule provides HTTP handlers for work shifts of job postings.
package schedule

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// ScheduleController handles endpoints under /work-schedules.
type ScheduleController struct {
	Schedules *service.ScheduleService
}

// NewScheduleController creates a new instance of ScheduleController.
func NewScheduleController(schedules *service.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Schedules: schedules,
	}
}

// CreateSchedule adds a shift to a job posting.
// @Summary Create work schedule
// @Description Job owner or admin only. start_time must be before end_time (RFC 3339).
// @Tags WorkSchedule
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param schedule body service.ScheduleInput true "Shift information"
// @Success 201 {object} model.WorkSchedule
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid time window"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /work-schedules [post]
func (sc *ScheduleController) CreateSchedule(c *gin.Context) {
	var in service.ScheduleInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	ws, err := sc.Schedules.Create(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// GetSchedules lists shifts visible to the caller.
// @Summary List work schedules
// @Description Employers see shifts of their postings, candidates those of postings they were approved for.
// @Tags WorkSchedule
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id query integer false "Only shifts of this job"
// @Success 200 {array} model.WorkSchedule
// @Failure 400 {object} utilities.ErrorResponse "Invalid job_id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /work-schedules [get]
func (sc *ScheduleController) GetSchedules(c *gin.Context) {
	jobID, ok := utilities.QueryUint(c, "job_id")
	if !ok {
		return
	}
	shifts, err := sc.Schedules.List(c.Request.Context(), utilities.OptionalUser(c), jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// UpdateScheduleStatus changes the status of a shift.
// @Summary Update work schedule status
// @Tags WorkSchedule
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Schedule ID"
// @Param status body service.ScheduleStatusInput true "New status"
// @Success 200 {object} model.WorkSchedule
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Schedule not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /work-schedules/{id} [patch]
func (sc *ScheduleController) UpdateScheduleStatus(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.ScheduleStatusInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	ws, err := sc.Schedules.SetStatus(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}
