package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplist-app/shoplist/internal/middleware"
	"github.com/shoplist-app/shoplist/internal/service"
)

type SharingHandler struct {
	sharing *service.SharingService
	users   *service.UserService
}

func NewSharingHandler(sharing *service.SharingService, users *service.UserService) *SharingHandler {
	return &SharingHandler{sharing: sharing, users: users}
}

// inviteRequest addresses the invitee either by id or by display name.
// Exactly one of the two must be set.
type inviteRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func (h *SharingHandler) Invite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if (req.UserID == "") == (req.Name == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of user_id or name required"})
		return
	}

	targetID := req.UserID
	if targetID == "" {
		target, err := h.users.ResolveName(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		targetID = target.ID
	}

	if err := h.sharing.Invite(c.Request.Context(), userID, targetID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent"})
}

func (h *SharingHandler) WithdrawInvitation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	err := h.sharing.WithdrawInvitation(c.Request.Context(), userID, c.Param("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation withdrawn"})
}

func (h *SharingHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if err := h.sharing.AcceptInvitation(c.Request.Context(), userID, c.Param("listID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
}

func (h *SharingHandler) RejectInvitation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if err := h.sharing.RejectInvitation(c.Request.Context(), userID, c.Param("listID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
}

// Leave ends the caller's own membership.
func (h *SharingHandler) Leave(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if err := h.sharing.Leave(c.Request.Context(), userID, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left list"})
}

// RemoveMember lets the owner remove another member.
func (h *SharingHandler) RemoveMember(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	err := h.sharing.Leave(c.Request.Context(), userID, c.Param("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func (h *SharingHandler) Members(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	members, err := h.sharing.Members(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Invitations lists a list's pending invitees. Owner-only.
func (h *SharingHandler) Invitations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	invitees, err := h.sharing.Invitations(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitees": invitees})
}

// MyInvitations lists the lists the caller is invited to.
func (h *SharingHandler) MyInvitations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	lists, err := h.sharing.InvitationsFor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}
