package handlers

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isimm-manager/db"
	"isimm-manager/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// APIHandler holds the dependencies for API handlers, like the Redis service
type APIHandler struct {
	RedisService *db.RedisService
	Alerts       Alerts
	log          *zap.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(service *db.RedisService, appName string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		RedisService: service,
		Alerts:       Alerts{AppName: appName},
		log:          logger,
	}
}

// pathID parses :id, answering 400 when it is not a number
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Niveau ID must be a number"})
		return 0, false
	}
	return id, true
}

// sortQuery reads ?sort=, defaulting to id ascending
func sortQuery(c *gin.Context) (models.SortSpec, bool) {
	raw := c.Query("sort")
	if raw == "" {
		return models.DefaultSort, true
	}
	spec, err := models.ParseSort(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort parameter: " + err.Error()})
		return models.SortSpec{}, false
	}
	return spec, true
}

// checkTarget applies the id rules shared by PUT and PATCH
func (h *APIHandler) checkTarget(c *gin.Context, pathID, bodyID int64) bool {
	if bodyID == 0 {
		h.Alerts.BadRequest(c, "Invalid id", keyIDNull)
		return false
	}
	if pathID != bodyID {
		h.Alerts.BadRequest(c, "Invalid ID", keyIDInvalid)
		return false
	}
	exists, err := h.RedisService.NiveauExists(c.Request.Context(), pathID)
	if err != nil {
		h.log.Error("Error checking niveau existence", zap.Int64("id", pathID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify niveau"})
		return false
	}
	if !exists {
		h.Alerts.BadRequest(c, "Entity not found", keyIDNotFound)
		return false
	}
	return true
}

// --- Niveau Handlers ---

// CreateNiveau handles POST /api/niveaus
func (h *APIHandler) CreateNiveau(c *gin.Context) {
	var n models.Niveau
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	h.log.Debug("REST request to save Niveau", zap.Any("niveau", n))
	if n.ID != 0 {
		h.Alerts.BadRequest(c, "A new niveau cannot already have an ID", keyIDExists)
		return
	}

	created, err := h.RedisService.CreateNiveau(c.Request.Context(), n)
	if err != nil {
		h.log.Error("Error in CreateNiveau handler", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create niveau"})
		return
	}

	h.Alerts.Created(c, created.ID)
	c.Header("Location", fmt.Sprintf("/api/niveaus/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// UpdateNiveau handles PUT /api/niveaus/:id
func (h *APIHandler) UpdateNiveau(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var n models.Niveau
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	h.log.Debug("REST request to update Niveau", zap.Int64("id", id), zap.Any("niveau", n))
	if !h.checkTarget(c, id, n.ID) {
		return
	}

	saved, err := h.RedisService.SaveNiveau(c.Request.Context(), n)
	if err != nil {
		h.log.Error("Error in UpdateNiveau handler", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update niveau"})
		return
	}

	h.Alerts.Updated(c, saved.ID)
	c.JSON(http.StatusOK, saved)
}

// PartialUpdateNiveau handles PATCH /api/niveaus/:id
func (h *APIHandler) PartialUpdateNiveau(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil || (mediaType != "application/json" && mediaType != "application/merge-patch+json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Content-Type must be application/json or application/merge-patch+json"})
		return
	}
	var p models.NiveauPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	h.log.Debug("REST request to partial update Niveau", zap.Int64("id", id))
	if !h.checkTarget(c, id, p.ID) {
		return
	}

	patched, err := h.RedisService.PatchNiveau(c.Request.Context(), p)
	if err != nil {
		h.log.Error("Error in PartialUpdateNiveau handler", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update niveau"})
		return
	}
	if patched == nil {
		// Deleted between the existence check and the merge
		c.JSON(http.StatusNotFound, gin.H{"error": "Niveau not found"})
		return
	}

	h.Alerts.Updated(c, patched.ID)
	c.JSON(http.StatusOK, patched)
}

// GetAllNiveaus handles GET /api/niveaus
func (h *APIHandler) GetAllNiveaus(c *gin.Context) {
	spec, ok := sortQuery(c)
	if !ok {
		return
	}
	niveaus, err := h.RedisService.GetAllNiveaus(c.Request.Context(), spec)
	if err != nil {
		h.log.Error("Error in GetAllNiveaus handler", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve niveaus"})
		return
	}
	if niveaus == nil {
		// Return empty list instead of null for JSON consistency
		c.JSON(http.StatusOK, []models.Niveau{})
		return
	}
	c.JSON(http.StatusOK, niveaus)
}

// GetNiveau handles GET /api/niveaus/:id
func (h *APIHandler) GetNiveau(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.RedisService.GetNiveauByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Error in GetNiveau handler", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve niveau"})
		return
	}
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Niveau not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}

// DeleteNiveau handles DELETE /api/niveaus/:id
func (h *APIHandler) DeleteNiveau(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.RedisService.DeleteNiveau(c.Request.Context(), id); err != nil {
		h.log.Error("Error in DeleteNiveau handler", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete niveau"})
		return
	}
	h.Alerts.Deleted(c, id)
	c.Status(http.StatusNoContent)
}

// --- Import / Export Handlers ---

// ImportNiveaus handles POST /api/import/niveaus
func (h *APIHandler) ImportNiveaus(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	h.log.Info("Received niveau import", zap.String("file", header.Filename))

	imported, err := h.RedisService.ImportNiveausFromExcel(c.Request.Context(), file)
	if err != nil {
		h.log.Error("Error importing niveaus", zap.String("file", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to import niveaus: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": imported,
	})
}

// ExportNiveaus handles GET /api/export/niveaus
func (h *APIHandler) ExportNiveaus(c *gin.Context) {
	spec, ok := sortQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	count, err := h.RedisService.ExportNiveausToExcel(c.Request.Context(), &buf, spec)
	if err != nil {
		h.log.Error("Error exporting niveaus", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export niveaus"})
		return
	}
	h.log.Debug("Exported niveaus", zap.Int("count", count), zap.String("sort", spec.String()))
	c.Header("Content-Disposition", `attachment; filename="niveaus.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// --- Ping Handler ---

// Ping handles GET /api/ping
func (h *APIHandler) Ping(c *gin.Context) {
	if err := h.RedisService.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Redis unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
