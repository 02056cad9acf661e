package delivery

import (
	"errors"
	"net/http"

	"photoblog-backend/internal/post/usecase"

	"github.com/gin-gonic/gin"
)

// PostHandler handles blog post HTTP requests
type PostHandler struct {
	postUsecase usecase.PostUsecase
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postUsecase usecase.PostUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
}

// UpdatePostRequest represents the request body for updating a post
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Excerpt *string   `json:"excerpt"`
	Content *string   `json:"content"`
	Images  *[]string `json:"images"`
}

// ListPosts returns all posts for the public gallery
// GET /api/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUsecase.ListPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

// GetPostByID returns a single post
// GET /api/posts/:id
func (h *PostHandler) GetPostByID(c *gin.Context) {
	post, err := h.postUsecase.GetPostByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post and triggers subscriber notification
// POST /api/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), req.Title, req.Excerpt, req.Content, req.Images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post
// PUT /api/admin/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUsecase.UpdatePost(c.Param("id"), usecase.PostUpdateRequest{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post
// DELETE /api/admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUsecase.DeletePost(c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
