package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/shoplist-app/shoplist/internal/middleware"
	"github.com/shoplist-app/shoplist/internal/service"
)

type ItemHandler struct {
	lists     *service.ListService
	validator *validator.Validate
}

func NewItemHandler(lists *service.ListService) *ItemHandler {
	return &ItemHandler{
		lists:     lists,
		validator: validator.New(),
	}
}

type addItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=32"`
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	items, err := h.lists.Items(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ItemHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.lists.AddItem(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveItem deletes an item. The caller presents the item version it last
// read in the version query parameter; a stale token is a 409.
func (h *ItemHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemVersion := c.Query("version")
	if itemVersion == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version query parameter required"})
		return
	}

	err := h.lists.RemoveItem(c.Request.Context(), userID, c.Param("id"), c.Param("itemID"), itemVersion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

func (h *ItemHandler) SetBought(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	item, err := h.lists.SetBought(c.Request.Context(), userID, c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) SetUnbought(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	item, err := h.lists.SetUnbought(c.Request.Context(), userID, c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
