// Package review provides HTTP handlers for reviews after completed jobs.
package review

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// ReviewController handles endpoints under /reviews.
type ReviewController struct {
	Reviews *service.ReviewService
}

// NewReviewController creates a new instance of ReviewController.
func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{
		Reviews: reviews,
	}
}

// CreateReview rates another user for a completed job.
// @Summary Create review
// @Description The job must be completed. One review per reviewer, reviewee and job. Rating between 1 and 5.
// @Tags Review
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param review body service.ReviewInput true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} utilities.ValidationErrorResponse "Invalid review"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /reviews [post]
func (rc *ReviewController) CreateReview(c *gin.Context) {
	var in service.ReviewInput
	if !utilities.BindJSON(c, &in) {
		return
	}
	review, err := rc.Reviews.Create(c.Request.Context(), utilities.OptionalUser(c), in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReviews lists reviews received by a user.
// @Summary List reviews of a user
// @Tags Review
// @Produce json
// @Param user_id query string true "Reviewee user ID"
// @Success 200 {array} model.Review
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid user_id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /reviews [get]
func (rc *ReviewController) GetReviews(c *gin.Context) {
	userID, ok := utilities.QueryUUID(c, "user_id")
	if !ok {
		return
	}
	if userID == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "user_id is required"})
		return
	}
	reviews, err := rc.Reviews.ListFor(c.Request.Context(), *userID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
