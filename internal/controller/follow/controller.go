// Package follow provides HTTP handlers for candidates following employers.
package follow

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// FollowController handles follow subscriptions.
type FollowController struct {
	Follows *service.FollowService
}

// NewFollowController creates a new instance of FollowController.
func NewFollowController(follows *service.FollowService) *FollowController {
	return &FollowController{
		Follows: follows,
	}
}

// FollowEmployer subscribes the logged in candidate to an employer's new postings.
// @Summary Follow employer
// @Description Following again only updates notify_email, which defaults to true.
// @Tags Follow
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Employer ID"
// @Param follow body service.FollowInput false "Email preference"
// @Success 200 {object} model.Follow
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Employer not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id}/follow [post]
func (fc *FollowController) FollowEmployer(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	var in service.FollowInput
	if !utilities.BindOptionalJSON(c, &in) {
		return
	}
	follow, err := fc.Follows.Follow(c.Request.Context(), utilities.OptionalUser(c), id, in)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, follow)
}

// UnfollowEmployer removes the subscription.
// @Summary Unfollow employer
// @Tags Follow
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Employer ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Not following"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id}/follow [delete]
func (fc *FollowController) UnfollowEmployer(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	if err := fc.Follows.Unfollow(c.Request.Context(), utilities.OptionalUser(c), id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Unfollowed successfully"})
}

// GetFollowing lists the employers the logged in candidate follows.
// @Summary List followed employers
// @Tags Follow
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Follow
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /follows [get]
func (fc *FollowController) GetFollowing(c *gin.Context) {
	follows, err := fc.Follows.Following(c.Request.Context(), utilities.OptionalUser(c))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, follows)
}
