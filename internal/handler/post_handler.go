package handler

import (
	"net/http"
	"strconv"
	"time"

	"pulsefeed/backend/internal/database"
	"pulsefeed/backend/internal/feed"
	"pulsefeed/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// AttachmentInput describes an optional file reference on a new post.
type AttachmentInput struct {
	FileName    string `json:"file_name" binding:"required" example:"photo.jpg"`
	ContentType string `json:"content_type" example:"image/jpeg"`
	Size        int64  `json:"size" example:"102400"`
}

// PostInput defines the structure for creating a post.
type PostInput struct {
	Content    string           `json:"content" binding:"required" example:"hello world"`
	Attachment *AttachmentInput `json:"attachment,omitempty"`
}

// ReactionInput defines the structure for reacting to a post.
type ReactionInput struct {
	Kind models.ReactionKind `json:"kind" binding:"required,oneof=LIKE DISLIKE" example:"LIKE"`
}

// AttachmentResponse is the public projection of an attachment reference.
type AttachmentResponse struct {
	StorageKey  string `json:"storage_key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ReactionSummaryResponse is the aggregated reaction view of one post.
type ReactionSummaryResponse struct {
	Likes          int     `json:"likes"`
	Dislikes       int     `json:"dislikes"`
	ViewerReaction *string `json:"viewer_reaction,omitempty"`
}

// PostResponse is the public projection of a post with its reaction summary.
type PostResponse struct {
	ID         uint                    `json:"id"`
	Content    string                  `json:"content"`
	CreatedAt  time.Time               `json:"created_at"`
	Author     PublicUserResponse      `json:"author"`
	Attachment *AttachmentResponse     `json:"attachment,omitempty"`
	Reactions  ReactionSummaryResponse `json:"reactions"`
}

func newPostResponse(item feed.Item) PostResponse {
	resp := PostResponse{
		ID:        item.Post.ID,
		Content:   item.Post.Content,
		CreatedAt: item.Post.CreatedAt,
		Author:    PublicUserResponse{ID: item.Post.Author.ID, Username: item.Post.Author.Username},
		Reactions: ReactionSummaryResponse{
			Likes:    item.Summary.Likes,
			Dislikes: item.Summary.Dislikes,
		},
	}
	if item.Summary.Viewer != nil {
		kind := string(*item.Summary.Viewer)
		resp.Reactions.ViewerReaction = &kind
	}
	if item.Post.Attachment != nil {
		resp.Attachment = &AttachmentResponse{
			StorageKey:  item.Post.Attachment.StorageKey,
			FileName:    item.Post.Attachment.FileName,
			ContentType: item.Post.Attachment.ContentType,
			Size:        item.Post.Attachment.Size,
		}
	}
	return resp
}

func newPostResponses(items []feed.Item) []PostResponse {
	responses := make([]PostResponse, len(items))
	for i, item := range items {
		responses[i] = newPostResponse(item)
	}
	return responses
}

// endregion

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a new post by the authenticated user, optionally with an attachment reference.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201 {object} PostResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var att *feed.AttachmentInput
	if input.Attachment != nil {
		att = &feed.AttachmentInput{
			FileName:    input.Attachment.FileName,
			ContentType: input.Attachment.ContentType,
			Size:        input.Attachment.Size,
		}
	}

	post, err := feedService.CreatePost(c.Request.Context(), viewerID.(uint), input.Content, att)
	if err != nil {
		respondFeedError(c, err)
		return
	}

	// The fresh post has no reactions yet, so the summary is all zeroes.
	item := feed.Item{Post: *post}
	var author models.User
	if err := database.DB.First(&author, viewerID.(uint)).Error; err == nil {
		item.Post.Author = author
	}
	c.JSON(http.StatusCreated, newPostResponse(item))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post owned by the authenticated user, along with its reactions and attachment.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200 {object} map[string]string "{"message": "Post deleted"}"
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Not the owner"
// @Failure      404 {object} ErrorResponse "Post not found"
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	owner, err := feedService.IsOwner(c.Request.Context(), viewerID.(uint), uint(postID))
	if err != nil {
		respondFeedError(c, err)
		return
	}
	if !owner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a post"})
		return
	}

	if err := feedService.DeletePost(c.Request.Context(), uint(postID)); err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ReactToPost godoc
// @Summary      React to a post
// @Description  Toggles the authenticated user's reaction on a post. Repeating the same kind clears it; sending the opposite kind replaces it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int           true "Post ID"
// @Param        input body ReactionInput true "Reaction kind"
// @Success      200 {object} map[string]string "{"message": "Reaction updated"}"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Post not found"
// @Router       /posts/{id}/react [post]
func ReactToPost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input ReactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := feedService.React(c.Request.Context(), uint(postID), viewerID.(uint), input.Kind); err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction updated"})
}

// GetUserPosts godoc
// @Summary      Get a user's posts
// @Description  Returns one user's posts, newest first, with the same cursor semantics as the feed.
// @Tags         posts
// @Produce      json
// @Param        username path  string true  "Username"
// @Param        before   query int    false "Exclusive upper bound post id"
// @Param        page     query int    false "Page number" default(0)
// @Param        limit    query int    false "Items per page" default(10)
// @Success      200 {object} FeedResponse
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{username}/posts [get]
func GetUserPosts(c *gin.Context) {
	viewerID := viewerFromContext(c)
	username := c.Param("username")

	beforeID, page := parseCursorParams(c)
	result, err := feedService.UserPosts(c.Request.Context(), username, viewerID, beforeID, page)
	if err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Data: newPostResponses(result.Items),
		Meta: FeedMeta{Page: result.Page, PageSize: result.Size},
	})
}
