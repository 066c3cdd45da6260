package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"microblog/internal/apperrors"
	"microblog/internal/auth"
	"microblog/internal/model"
	"microblog/internal/service"
)

const createdAtLayout = "2006-01-02 15:04:05"

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest represents a partial update; absent fields keep their
// prior values.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// PostResponse is the wire form of a post.
type PostResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// PostEnvelope wraps a post with a confirmation message.
type PostEnvelope struct {
	Message string       `json:"message"`
	Post    PostResponse `json:"post"`
}

func postToResponse(post *model.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author.Username,
		CreatedAt: post.CreatedAt.Format(createdAtLayout),
	}
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post body"
// @Success 201 {object} PostEnvelope
// @Failure 400 {object} apperrors.MessageResponse
// @Failure 401 {object} apperrors.MessageResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user := auth.CurrentUser(c)

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrPostFieldsRequired)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, apperrors.ErrPostFieldsRequired)
	}

	post, err := h.postService.Create(c.Request().Context(), user, req.Title, req.Content)
	if err != nil {
		log.Printf("create post: %v", err)
		return writeError(c, err)
	}

	log.Printf("post created (id=%d) by user: %s", post.ID, user.Username)
	return c.JSON(http.StatusCreated, PostEnvelope{
		Message: "post published successfully",
		Post:    postToResponse(post),
	})
}

// List godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		return writeError(c, err)
	}

	result := make([]PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, postToResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} apperrors.MessageResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return writeError(c, err)
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, postToResponse(post))
}

// Update godoc
// @Summary Update a post (author only, partial)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} PostEnvelope
// @Failure 400 {object} apperrors.MessageResponse
// @Failure 401 {object} apperrors.MessageResponse
// @Failure 403 {object} apperrors.MessageResponse
// @Failure 404 {object} apperrors.MessageResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := parsePostID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrNoUpdateData)
	}

	post, err := h.postService.Update(c.Request().Context(), user, id, req.Title, req.Content)
	if err != nil {
		log.Printf("update post %d: %v", id, err)
		return writeError(c, err)
	}

	log.Printf("post id=%d updated by user: %s", post.ID, user.Username)
	return c.JSON(http.StatusOK, PostEnvelope{
		Message: "post updated successfully",
		Post:    postToResponse(post),
	})
}

// Delete godoc
// @Summary Delete a post (author only)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} apperrors.MessageResponse
// @Failure 401 {object} apperrors.MessageResponse
// @Failure 403 {object} apperrors.MessageResponse
// @Failure 404 {object} apperrors.MessageResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := parsePostID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.postService.Delete(c.Request().Context(), user, id); err != nil {
		log.Printf("delete post %d: %v", id, err)
		return writeError(c, err)
	}

	log.Printf("post id=%d deleted by user: %s", id, user.Username)
	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "post deleted"})
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, apperrors.ErrPostNotFound
	}
	return uint(id), nil
}
