package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"pulsefeed/backend/internal/feed"
	"pulsefeed/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// FeedMeta describes which slice of the bounded result set a feed page covers.
type FeedMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// FeedResponse is one page of the feed.
type FeedResponse struct {
	Data []PostResponse `json:"data"`
	Meta FeedMeta       `json:"meta"`
}

// FeedListResponse is an unpaginated feed slice (the "after" direction).
type FeedListResponse struct {
	Data []PostResponse `json:"data"`
}

// endregion

// viewerFromContext returns the authenticated user's id, or nil for
// anonymous requests behind the optional-auth middleware.
func viewerFromContext(c *gin.Context) *uint {
	if v, exists := c.Get("userID"); exists {
		id := v.(uint)
		return &id
	}
	return nil
}

// GetFeed godoc
// @Summary      Get the feed
// @Description  Returns the viewer's timeline (own posts plus followed users), newest first. Anonymous requests get the global feed. With `after`, returns all posts newer than that id, unpaginated; otherwise returns posts older than `before` (or the newest posts), paged.
// @Tags         feed
// @Produce      json
// @Param        before query int false "Exclusive upper bound post id"
// @Param        after  query int false "Exclusive lower bound post id (unpaginated mode)"
// @Param        page   query int false "Page number (before mode)" default(0)
// @Param        limit  query int false "Items per page (before mode)" default(10)
// @Success      200 {object} FeedResponse
// @Failure      404 {object} ErrorResponse "Viewer not found"
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	viewerID := viewerFromContext(c)

	if afterStr := c.Query("after"); afterStr != "" {
		afterID, err := strconv.ParseUint(afterStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after id"})
			return
		}

		items, err := feedService.FeedAfter(c.Request.Context(), viewerID, uint(afterID))
		if err != nil {
			respondFeedError(c, err)
			return
		}
		c.JSON(http.StatusOK, FeedListResponse{Data: newPostResponses(items)})
		return
	}

	beforeID, page := parseCursorParams(c)
	result, err := feedService.Feed(c.Request.Context(), viewerID, beforeID, page)
	if err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Data: newPostResponses(result.Items),
		Meta: FeedMeta{Page: result.Page, PageSize: result.Size},
	})
}

// GetFeedCount godoc
// @Summary      Count new feed posts
// @Description  Returns how many posts in the viewer's timeline are newer than the given id.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        after query int true "Exclusive lower bound post id"
// @Success      200 {object} map[string]int64 "{"count": 4}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Viewer not found"
// @Router       /feed/count [get]
func GetFeedCount(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	afterID, err := strconv.ParseUint(c.Query("after"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after id"})
		return
	}

	count, err := feedService.FeedCount(c.Request.Context(), viewerID.(uint), uint(afterID))
	if err != nil {
		respondFeedError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// StreamFeed godoc
// @Summary      Stream feed events
// @Description  Server-sent event stream of new posts from the viewer's audience.
// @Tags         feed
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "SSE stream"
// @Failure      401 {object} ErrorResponse
// @Router       /feed/stream [get]
func StreamFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(viewerID.(uint), client)
	defer hub.GlobalHub.Unsubscribe(viewerID.(uint), client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// respondFeedError maps engine errors onto HTTP statuses.
func respondFeedError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, feed.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, feed.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
	case errors.Is(err, feed.ErrInvalidReaction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction kind"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
