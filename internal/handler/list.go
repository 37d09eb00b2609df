package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kiroku/internal/auth"
	"kiroku/internal/repository"
	"kiroku/internal/service"
)

type ListHandler struct {
	Service *service.ListService
	Logger  *zap.Logger
}

// Register mounts the owner-scoped list routes. The router passed in must
// already carry the JWT middleware.
func (h *ListHandler) Register(r gin.IRouter) {
	group := r.Group("/user/anime")
	group.GET("", h.list)
	group.POST("", h.add)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}

// @Summary List tracked anime
// @Tags user
// @Produce json
// @Param status query string false "status filter"
// @Success 200 {array} repository.ListEntryView
// @Router /user/anime [get]
func (h *ListHandler) list(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "token required")
		return
	}
	items, err := h.Service.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("list entries failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to load anime list")
		return
	}
	if items == nil {
		items = []repository.ListEntryView{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Track an anime
// @Tags user
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Router /user/anime [post]
func (h *ListHandler) add(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "token required")
		return
	}
	var req struct {
		AnimeID        uint    `json:"anime_id"`
		Status         string  `json:"status"`
		CurrentEpisode int     `json:"current_episode"`
		Rating         float64 `json:"rating"`
		Notes          string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AnimeID == 0 {
		Error(c, http.StatusBadRequest, "anime_id required")
		return
	}

	entry, err := h.Service.Add(c.Request.Context(), userID, service.AddEntryParams{
		AnimeID:        req.AnimeID,
		Status:         req.Status,
		CurrentEpisode: req.CurrentEpisode,
		Rating:         req.Rating,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			Error(c, http.StatusBadRequest, "invalid status")
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "anime not found")
		case errors.Is(err, repository.ErrConflict):
			Error(c, http.StatusBadRequest, "anime already in your list")
		default:
			if h.Logger != nil {
				h.Logger.Error("add entry failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, "failed to add anime")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "message": "anime added to your list"})
}

// @Summary Update a tracked anime
// @Tags user
// @Accept json
// @Produce json
// @Param id path int true "list entry id"
// @Success 200 {object} map[string]any
// @Router /user/anime/{id} [put]
func (h *ListHandler) update(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "token required")
		return
	}
	entryID, ok := uintParam(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Status         string  `json:"status"`
		CurrentEpisode int     `json:"current_episode"`
		Rating         float64 `json:"rating"`
		Notes          string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.Service.Update(c.Request.Context(), userID, entryID, repository.ListEntryUpdate{
		Status:         req.Status,
		CurrentEpisode: req.CurrentEpisode,
		Rating:         req.Rating,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			Error(c, http.StatusBadRequest, "invalid status")
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "anime not found in your list")
		default:
			if h.Logger != nil {
				h.Logger.Error("update entry failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, "failed to update anime")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "anime updated"})
}

// @Summary Remove a tracked anime
// @Tags user
// @Produce json
// @Param id path int true "list entry id"
// @Success 200 {object} map[string]any
// @Router /user/anime/{id} [delete]
func (h *ListHandler) remove(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "token required")
		return
	}
	entryID, ok := uintParam(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.Remove(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "anime not found in your list")
			return
		}
		if h.Logger != nil {
			h.Logger.Error("remove entry failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to remove anime")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "anime removed from your list"})
}
