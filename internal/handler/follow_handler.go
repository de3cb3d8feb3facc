package handler

import (
	"net/http"

	"pulsefeed/backend/internal/database"
	"pulsefeed/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Adds the target user to the viewer's follow list. Following twice is a no-op.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        username path  string  true  "Target username"
// @Success      200  {object}  map[string]string "{"message": "Now following"}"
// @Failure      400  {object}  ErrorResponse "Self-follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{username}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	target, ok := findUserByUsername(c)
	if !ok {
		return
	}

	if err := feedService.Follow(c.Request.Context(), viewerID.(uint), target.ID); err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Now following"})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the target user from the viewer's follow list.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        username path  string  true  "Target username"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{username}/unfollow [post]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	target, ok := findUserByUsername(c)
	if !ok {
		return
	}

	if err := feedService.Unfollow(c.Request.Context(), viewerID.(uint), target.ID); err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// findUserByUsername resolves the :username path param, writing the 404
// itself when the user does not exist.
func findUserByUsername(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// GetFollowing godoc
// @Summary      List followed users
// @Description  Returns the users the viewer follows, paginated.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users/me/following [get]
func GetFollowing(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := parsePageParams(c)

	query := database.DB.Model(&models.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", viewerID)

	listUsers(c, query, page, limit)
}

// GetFollowers godoc
// @Summary      List followers
// @Description  Returns the users following the viewer, paginated.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users/me/followers [get]
func GetFollowers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := parsePageParams(c)

	query := database.DB.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", viewerID)

	listUsers(c, query, page, limit)
}

func listUsers(c *gin.Context, query *gorm.DB, page, limit int) {
	result, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	data := make([]PublicUserResponse, len(result.Data))
	for i, user := range result.Data {
		data[i] = PublicUserResponse{ID: user.ID, Username: user.Username}
	}

	c.JSON(http.StatusOK, PaginatedResponse[PublicUserResponse]{Data: data, Meta: result.Meta})
}
