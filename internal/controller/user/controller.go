// Package user provides HTTP handlers for registration and self management.
package user

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// UserController handles identity endpoints under /users.
type UserController struct {
	Users *service.UserService
}

// NewUserController creates a new instance of UserController.
func NewUserController(users *service.UserService) *UserController {
	return &UserController{
		Users: users,
	}
}

// RegisterEmployer creates an employer account together with its profile.
// @Summary Register as employer
// @Description Username is at least 5 characters of letters, digits and underscore. Password is at least 6 characters without whitespace.
// @Tags User
// @Accept json
// @Produce json
// @Param info body service.RegisterEmployerInput true "Account and company information"
// @Success 201 {object} model.User "Successfully registered"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid input or username/email taken"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/register-employer [post]
func (uc *UserController) RegisterEmployer(c *gin.Context) {
	var in service.RegisterEmployerInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	user, err := uc.Users.RegisterEmployer(c.Request.Context(), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// RegisterCandidate creates a candidate account together with its profile.
// @Summary Register as candidate
// @Description cv_link is optional and must be an http(s) link to a .pdf, .doc or .docx file.
// @Tags User
// @Accept json
// @Produce json
// @Param info body service.RegisterCandidateInput true "Account and candidate information"
// @Success 201 {object} model.User "Successfully registered"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid input or username/email taken"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/register-candidate [post]
func (uc *UserController) RegisterCandidate(c *gin.Context) {
	var in service.RegisterCandidateInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	user, err := uc.Users.RegisterCandidate(c.Request.Context(), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetCurrentUser returns the logged in user with its profile.
// @Summary Retrieve current user
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/current-user [get]
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	user, err := uc.Users.Current(c.Request.Context(), utilities.OptionalUser(c))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// EditCurrentUser changes names, password or email preference of the logged in user.
// @Summary Edit current user
// @Description Only first_name, last_name, password and email_notification can be changed.
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param info body service.UpdateSelfInput true "Fields to change"
// @Success 200 {object} model.User "Successfully updated"
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/current-user [patch]
func (uc *UserController) EditCurrentUser(c *gin.Context) {
	var in service.UpdateSelfInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	user, err := uc.Users.UpdateSelf(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SendEmail records an email notification for the logged in user and queues the email.
// @Summary Send notification email to yourself
// @Description Fails with 400 when email notifications are turned off. Subject and message have defaults.
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param email body service.SendEmailInput false "Optional subject and message"
// @Success 200 {object} utilities.MessageResponse "Email queued"
// @Failure 400 {object} utilities.ValidationErrorResponse "Email notifications disabled"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/send-email [post]
func (uc *UserController) SendEmail(c *gin.Context) {
	var in service.SendEmailInput
	if !utilities.BindOptionalJSON(c, &in) {
		return
	}
	if err := uc.Users.SendEmail(c.Request.Context(), utilities.OptionalUser(c), in); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Email sent successfully"})
}
