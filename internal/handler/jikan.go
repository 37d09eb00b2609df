package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kiroku/internal/client/jikan"
	"kiroku/internal/service"
)

// JikanHandler relays catalog browsing to the Jikan API and owns the one
// stateful gateway operation, import.
type JikanHandler struct {
	Client  *jikan.Client
	Catalog *service.CatalogService
	Logger  *zap.Logger
}

func (h *JikanHandler) Register(r gin.IRouter) {
	group := r.Group("/jikan")
	group.GET("/search", h.search)
	group.GET("/anime/:id", h.detail)
	group.GET("/top", h.top)
	group.GET("/season/now", h.seasonNow)
	group.POST("/import/:id", h.importAnime)
}

func (h *JikanHandler) upstreamError(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.Warn("jikan request failed", zap.String("op", op), zap.Error(err))
	}
	Error(c, http.StatusBadGateway, "failed to reach jikan API")
}

// @Summary Search the Jikan catalog
// @Tags jikan
// @Produce json
// @Param q query string false "title query"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Router /jikan/search [get]
func (h *JikanHandler) search(c *gin.Context) {
	q := c.Query("q")
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 25)
	body, err := h.Client.SearchRaw(c.Request.Context(), q, page, limit)
	if err != nil {
		h.upstreamError(c, "search", err)
		return
	}
	RawJSON(c, http.StatusOK, body)
}

// @Summary Full anime detail by MAL id
// @Tags jikan
// @Produce json
// @Param id path int true "MAL id"
// @Success 200 {object} map[string]any
// @Router /jikan/anime/{id} [get]
func (h *JikanHandler) detail(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	body, err := h.Client.AnimeFullRaw(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, "detail", err)
		return
	}
	RawJSON(c, http.StatusOK, body)
}

// @Summary Globally popular anime
// @Tags jikan
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Router /jikan/top [get]
func (h *JikanHandler) top(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 25)
	body, err := h.Client.TopRaw(c.Request.Context(), page, limit)
	if err != nil {
		h.upstreamError(c, "top", err)
		return
	}
	RawJSON(c, http.StatusOK, body)
}

// @Summary Current season anime
// @Tags jikan
// @Produce json
// @Param page query int false "page"
// @Success 200 {object} map[string]any
// @Router /jikan/season/now [get]
func (h *JikanHandler) seasonNow(c *gin.Context) {
	page := intQuery(c, "page", 1)
	body, err := h.Client.SeasonNowRaw(c.Request.Context(), page)
	if err != nil {
		h.upstreamError(c, "season_now", err)
		return
	}
	RawJSON(c, http.StatusOK, body)
}

// @Summary Import an anime into the local catalog
// @Tags jikan
// @Produce json
// @Param id path int true "MAL id"
// @Success 201 {object} map[string]any
// @Success 200 {object} map[string]any
// @Router /jikan/import/{id} [post]
func (h *JikanHandler) importAnime(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	result, err := h.Catalog.Import(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, jikan.ErrNotInCatalog) {
			Error(c, http.StatusNotFound, "anime not found in jikan")
			return
		}
		h.upstreamError(c, "import", err)
		return
	}
	if result.Created {
		c.JSON(http.StatusCreated, gin.H{
			"id":       result.ID,
			"jikan_id": result.JikanID,
			"message":  "anime imported",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       result.ID,
		"jikan_id": result.JikanID,
		"message":  "anime already in the catalog",
	})
}
