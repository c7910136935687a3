package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nuuxixv/MindConnect/internal/services"
	"github.com/nuuxixv/MindConnect/internal/ws"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	community *services.CommunityService
	hub       *ws.Hub
	log       *slog.Logger
}

func NewCommunityHandler(community *services.CommunityService, hub *ws.Hub, log *slog.Logger) *CommunityHandler {
	return &CommunityHandler{community: community, hub: hub, log: log}
}

type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,max=200" example:"Bedtime struggles"`
	Content  string `json:"content" binding:"required" example:"How do you handle bedtime with a 5 year old?"`
	Category string `json:"category" binding:"required,oneof=free worry info" example:"worry"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required" example:"A fixed routine helped us a lot."`
}

// ListPosts godoc
// @Summary      List community posts
// @Tags         community
// @Produce      json
// @Success      200 {array} Post
// @Router       /api/posts [get]
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts, err := h.community.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary      Create a community post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body CreatePostRequest true "Post data"
// @Success      201 {object} Post
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/posts [post]
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	post, err := h.community.CreatePost(c.Request.Context(), currentUserID(c), services.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get a post with its comments
// @Description  Each read counts as a view
// @Tags         community
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} Post
// @Failure      404 {object} ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *CommunityHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.community.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  The new comment is pushed to websocket watchers of the post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path int true "Post ID"
// @Param        request body CreateCommentRequest true "Comment data"
// @Success      201 {object} Comment
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/posts/{id}/comments [post]
func (h *CommunityHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	comment, err := h.community.CreateComment(c.Request.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.hub.Broadcast(id, ws.Event{Type: ws.EventCommentCreated, Data: comment})
	c.JSON(http.StatusCreated, comment)
}
