package handler

import (
	"github.com/Kir-Mi/shareit/internal/application"
	"github.com/Kir-Mi/shareit/internal/middleware"
	"github.com/Kir-Mi/shareit/internal/response"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles HTTP requests for item and comment operations.
type ItemHandler struct {
	items    *application.ItemService
	comments *application.CommentService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *application.ItemService, comments *application.CommentService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.Use(middleware.RequireSharerID())
	{
		items.POST("", h.CreateItem)
		items.PATCH("/:itemId", h.UpdateItem)
		items.GET("/:itemId", h.GetItem)
		items.GET("", h.ListItemsOfOwner)
		items.GET("/search", h.SearchItems)
		items.POST("/:itemId/comment", h.CreateComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateItem handles PATCH /items/:itemId.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /items/:itemId.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.GetItemByID(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListItemsOfOwner handles GET /items?from=&size=.
func (h *ItemHandler) ListItemsOfOwner(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	from, size, err := parsePagination(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.GetItemsByOwner(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchItems handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	from, size, err := parsePagination(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateComment handles POST /items/:itemId/comment.
func (h *ItemHandler) CreateComment(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.comments.CreateComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
