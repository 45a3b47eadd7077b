package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isimm-manager/db"
	"isimm-manager/listview"
	"isimm-manager/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// PageHandler serves the server-rendered niveau screens
type PageHandler struct {
	RedisService *db.RedisService
	log          *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(service *db.RedisService, logger *zap.Logger) *PageHandler {
	return &PageHandler{RedisService: service, log: logger}
}

// List handles GET /niveau. A request whose query is not the canonical sort
// query is redirected to it first, so the address bar always names the order
// being shown.
func (h *PageHandler) List(c *gin.Context) {
	spec := listview.InitialSortState(c.Request.URL.RawQuery)
	canonical := listview.CanonicalSearch(spec)
	if "?"+c.Request.URL.RawQuery != canonical {
		c.Redirect(http.StatusFound, c.Request.URL.Path+canonical)
		return
	}

	niveaus, err := h.RedisService.GetAllNiveaus(c.Request.Context(), spec)
	if err != nil {
		// The page still renders; the list is just empty
		h.log.Error("Error loading niveau list page", zap.Error(err))
		niveaus = nil
	}

	c.HTML(http.StatusOK, "niveau_list.html", gin.H{
		"Path":    c.Request.URL.Path,
		"Refresh": c.Request.URL.Path + canonical,
		"View":    listview.BuildView(niveaus, false, spec),
	})
}

// Detail handles GET /niveau/:id
func (h *PageHandler) Detail(c *gin.Context) {
	n, ok := h.load(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "niveau_detail.html", gin.H{"Niveau": n})
}

// ConfirmDelete handles GET /niveau/:id/delete
func (h *PageHandler) ConfirmDelete(c *gin.Context) {
	n, ok := h.load(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "niveau_delete.html", gin.H{"Niveau": n})
}

// Delete handles POST /niveau/:id/delete and returns to the list
func (h *PageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"ID": c.Param("id")})
		return
	}
	if err := h.RedisService.DeleteNiveau(c.Request.Context(), id); err != nil {
		h.log.Error("Error deleting niveau from page", zap.Int64("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to delete niveau")
		return
	}
	c.Redirect(http.StatusSeeOther, listview.ListPath)
}

func (h *PageHandler) load(c *gin.Context) (*models.Niveau, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"ID": c.Param("id")})
		return nil, false
	}
	n, err := h.RedisService.GetNiveauByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Error loading niveau page", zap.Int64("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load niveau")
		return nil, false
	}
	if n == nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"ID": id})
		return nil, false
	}
	return n, true
}
