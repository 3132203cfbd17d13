// Package employer provides HTTP handlers for employer profiles.
package employer

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// EmployerController handles endpoints under /employers.
type EmployerController struct {
	Employers *service.EmployerService
}

// NewEmployerController creates a new instance of EmployerController.
func NewEmployerController(employers *service.EmployerService) *EmployerController {
	return &EmployerController{
		Employers: employers,
	}
}

// GetEmployers lists every employer profile.
// @Summary List employers
// @Description Administrators only.
// @Tags Employer
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Employer
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers [get]
func (ec *EmployerController) GetEmployers(c *gin.Context) {
	employers, err := ec.Employers.List(c.Request.Context(), utilities.OptionalUser(c))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employers)
}

// GetEmployerByID retrieves one employer profile.
// @Summary Retrieve employer profile by ID
// @Tags Employer
// @Produce json
// @Param id path integer true "Employer ID"
// @Success 200 {object} model.Employer
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Employer not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id} [get]
func (ec *EmployerController) GetEmployerByID(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	employer, err := ec.Employers.Get(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

// EditEmployerProfile overwrites the given fields of an employer profile.
// @Summary Edit employer profile
// @Description Owner or admin only. Verified status and images can't be changed here.
// @Tags Employer
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Employer ID"
// @Param employer_profile body service.UpdateEmployerInput true "Employer info to be written"
// @Success 200 {object} model.Employer "Successfully overwrite"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Employer not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id} [patch]
func (ec *EmployerController) EditEmployerProfile(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.UpdateEmployerInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	employer, err := ec.Employers.Update(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

// GetEmployerMapData returns employer coordinates for the map widget.
// @Summary Employer map data
// @Tags Employer
// @Produce json
// @Param id path integer true "Employer ID"
// @Success 200 {object} model.MapData
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Employer not exist or has no coordinates"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id}/map-data [get]
func (ec *EmployerController) GetEmployerMapData(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	data, err := ec.Employers.MapData(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
