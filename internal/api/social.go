package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/middleware"
	"github.com/sakmpar/newsforge/internal/models"
)

const recentCommentLimit = 3

// requireDB writes the degraded-mode response when no database is wired and
// reports whether the handler may proceed.
func (h *Handlers) requireDB(c *fiber.Ctx) bool {
	if h.db != nil {
		return true
	}
	c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "Social features are not available",
	})
	return false
}

type createPostRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Category    string `json:"category" validate:"max=100"`
	Tags        string `json:"tags" validate:"max=200"`
}

type commentRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
}

type shareRequest struct {
	Platform string `json:"platform" validate:"required,oneof=facebook twitter whatsapp linkedin copy"`
}

// ListPosts handles GET /api/v1/posts with page/page_size pagination. Each
// item carries interaction counts, the newest comments, and whether the
// authenticated caller has liked it.
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{"success": true, "posts": []any{}, "total": 0})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))

	posts, total, err := h.db.Posts.FindPage(c.Context(), page, pageSize)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing posts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list posts",
		})
	}

	userID, authed := middleware.UserID(c)

	items := make([]fiber.Map, 0, len(posts))
	for _, post := range posts {
		items = append(items, h.postView(c, post, userID, authed))
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"posts":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPost handles GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *fiber.Ctx) error {
	if h.db == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	post, err := h.db.Posts.FindByID(c.Context(), postID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	userID, authed := middleware.UserID(c)
	return c.JSON(h.postView(c, *post, userID, authed))
}

// CreatePost handles POST /api/v1/posts
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	userID, _ := middleware.UserID(c)

	var req createPostRequest
	if !h.validator.ParseAndValidate(c, &req) {
		return nil
	}

	post := models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Tags:        req.Tags,
		Status:      "published",
		UserID:      userID,
	}
	if err := h.db.Posts.Create(c.Context(), &post); err != nil {
		logger.Get().Error().Err(err).Msg("Error creating post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// ToggleLike handles POST /api/v1/posts/:id/like
func (h *Handlers) ToggleLike(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	userID, _ := middleware.UserID(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	liked, err := h.db.Likes.Toggle(c.Context(), userID, postID)
	if err != nil {
		logger.Get().Error().Err(err).Str("post_id", postID.String()).Msg("Error toggling like")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle like",
		})
	}

	likes, _, _, _ := h.db.Posts.Counts(c.Context(), postID)
	return c.JSON(fiber.Map{
		"success": true,
		"liked":   liked,
		"likes":   likes,
	})
}

// AddComment handles POST /api/v1/posts/:id/comment
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	userID, _ := middleware.UserID(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	var req commentRequest
	if !h.validator.ParseAndValidate(c, &req) {
		return nil
	}

	comment := models.Comment{
		Content:  req.Content,
		UserID:   userID,
		PostID:   postID,
		IsActive: true,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid parent comment ID"})
		}
		comment.ParentID = &parentID
	}

	if err := h.db.Comments.Add(c.Context(), &comment); err != nil {
		logger.Get().Error().Err(err).Str("post_id", postID.String()).Msg("Error adding comment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// ListComments handles GET /api/v1/posts/:id/comments
func (h *Handlers) ListComments(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	comments, err := h.db.Comments.Recent(c.Context(), postID, limit)
	if err != nil {
		logger.Get().Error().Err(err).Str("post_id", postID.String()).Msg("Error listing comments")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list comments",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"comments": comments,
	})
}

// SharePost handles POST /api/v1/posts/:id/share
func (h *Handlers) SharePost(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	userID, _ := middleware.UserID(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	var req shareRequest
	if !h.validator.ParseAndValidate(c, &req) {
		return nil
	}

	if err := h.db.Shares.Add(c.Context(), userID, postID, req.Platform); err != nil {
		logger.Get().Error().Err(err).Str("post_id", postID.String()).Msg("Error recording share")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record share",
		})
	}

	_, _, shares, _ := h.db.Posts.Counts(c.Context(), postID)
	return c.JSON(fiber.Map{
		"success": true,
		"shares":  shares,
	})
}

// PostStats handles GET /api/v1/posts/:id/stats
func (h *Handlers) PostStats(c *fiber.Ctx) error {
	if !h.requireDB(c) {
		return nil
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	likes, comments, shares, err := h.db.Posts.Counts(c.Context(), postID)
	if err != nil {
		logger.Get().Error().Err(err).Str("post_id", postID.String()).Msg("Error loading post stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load post stats",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"likes":    likes,
		"comments": comments,
		"shares":   shares,
	})
}

// SiteStats handles GET /api/v1/stats
func (h *Handlers) SiteStats(c *fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{"success": true, "stats": fiber.Map{}})
	}

	totals, err := h.db.Totals()
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error loading site stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   totals,
	})
}

// postView assembles one post item for list/detail responses.
func (h *Handlers) postView(c *fiber.Ctx, post models.Post, userID uuid.UUID, authed bool) fiber.Map {
	likes, commentCount, shares, err := h.db.Posts.Counts(c.Context(), post.ID)
	if err != nil {
		logger.Get().Warn().Err(err).Str("post_id", post.ID.String()).Msg("Error loading post counts")
	}

	recent, err := h.db.Comments.Recent(c.Context(), post.ID, recentCommentLimit)
	if err != nil {
		logger.Get().Warn().Err(err).Str("post_id", post.ID.String()).Msg("Error loading recent comments")
	}

	view := fiber.Map{
		"post":            post,
		"author":          post.Author.Username,
		"likes":           likes,
		"comments":        commentCount,
		"shares":          shares,
		"recent_comments": recent,
		"user_liked":      false,
	}

	if authed {
		if liked, err := h.db.Likes.Liked(c.Context(), userID, post.ID); err == nil {
			view["user_liked"] = liked
		}
	}
	return view
}
