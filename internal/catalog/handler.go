package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cinehub/internal/imdb"
	"cinehub/internal/ingest"
)

type Handler struct {
	Repo     *Repo
	Ingester *ingest.Ingester
}

func NewHandler(repo *Repo, ing *ingest.Ingester) *Handler {
	return &Handler{Repo: repo, Ingester: ing}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies", h.listMovies)
	rg.GET("/movies/:id", h.getMovie)
	rg.PUT("/movies/:id", h.updateMovie)
	rg.DELETE("/movies/:id", h.deleteMovie)

	rg.GET("/actors", h.listActors)
	rg.GET("/actors/:id", h.getActor)
	rg.PUT("/actors/:id", h.updateActor)
	rg.DELETE("/actors/:id", h.deleteActor)

	// one endpoint for both kinds, routed by id prefix like the source site
	rg.POST("/catalog", h.add)
	rg.DELETE("/catalog/:id", h.deleteByID)
}

func (h *Handler) listMovies(c *gin.Context) {
	movies, err := h.Repo.ListMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(movies), "items": movies})
}

func (h *Handler) getMovie(c *gin.Context) {
	m, err := h.Repo.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) listActors(c *gin.Context) {
	actors, err := h.Repo.ListActors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(actors), "items": actors})
}

func (h *Handler) getActor(c *gin.Context) {
	a, err := h.Repo.GetActor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

type addReq struct {
	ID string `json:"id"` // bare tt/nm id or a full canonical URL
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	report, err := h.Ingester.Add(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(addStatus(err), gin.H{"error": "add failed"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// addStatus translates the ingest error taxonomy into HTTP statuses; the
// body stays generic either way.
func addStatus(err error) int {
	var (
		fetchErr    *imdb.FetchError
		pageErr     *imdb.MalformedPageError
		mapErr      *imdb.MappingError
		conflictErr *ingest.ConflictError
	)
	switch {
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &fetchErr), errors.As(err, &pageErr):
		return http.StatusBadGateway
	case errors.As(err, &mapErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) updateMovie(c *gin.Context) {
	var patch MoviePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ok, err := h.Repo.UpdateMovie(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "update failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) updateActor(c *gin.Context) {
	var patch ActorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ok, err := h.Repo.UpdateActor(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "update failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) deleteMovie(c *gin.Context) {
	h.delete(c, h.Repo.DeleteMovie)
}

func (h *Handler) deleteActor(c *gin.Context) {
	h.delete(c, h.Repo.DeleteActor)
}

func (h *Handler) deleteByID(c *gin.Context) {
	id := c.Param("id")
	switch {
	case strings.HasPrefix(id, "tt"):
		h.delete(c, h.Repo.DeleteMovie)
	case strings.HasPrefix(id, "nm"):
		h.delete(c, h.Repo.DeleteActor)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must start with tt or nm"})
	}
}

func (h *Handler) delete(c *gin.Context, fn func(ctx context.Context, id string) (bool, error)) {
	ok, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
