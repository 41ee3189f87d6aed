package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/mirror"
	"github.com/xaysimo/xaysimo/internal/store"
)

type systemHandler struct {
	settingsService portssvc.SettingsSvcFacade
	auditService    portssvc.AuditSvcFacade
	backupService   portssvc.BackupSvcFacade
	store           *store.Store
	syncer          *mirror.Syncer
}

// registerSystemRoutes registers settings, audit, backup and sync routes.
func registerSystemRoutes(
	rg *gin.RouterGroup,
	settingsService portssvc.SettingsSvcFacade,
	auditService portssvc.AuditSvcFacade,
	backupService portssvc.BackupSvcFacade,
	documentStore *store.Store,
	syncer *mirror.Syncer,
) {
	h := &systemHandler{
		settingsService: settingsService,
		auditService:    auditService,
		backupService:   backupService,
		store:           documentStore,
		syncer:          syncer,
	}

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
	rg.GET("/audit-logs", h.listAuditLogs)

	backup := rg.Group("/backup")
	{
		backup.GET("", h.exportBackup)
		backup.POST("/restore", h.restoreBackup)
	}

	sync := rg.Group("/sync")
	{
		sync.GET("/status", h.syncStatus)
		sync.POST("/now", h.syncNow)
		sync.POST("/test", h.syncTest)
	}
}

func (h *systemHandler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.GetSettings(c.Request.Context()))
}

func (h *systemHandler) updateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Settings update failed")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *systemHandler) listAuditLogs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	c.JSON(http.StatusOK, h.auditService.ListAuditLogs(c.Request.Context(), limit))
}

func (h *systemHandler) exportBackup(c *gin.Context) {
	raw, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Backup export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="xaysimo-backup.json"`)
	c.Data(http.StatusOK, "application/json", raw)
}

// restoreBackup godoc
// @Summary Restore from backup
// @Description Replaces the whole document with an uploaded backup file
// @Tags backup
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Backup JSON"
// @Success 204
// @Failure 400 {object} map[string]string "Not a valid backup"
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *systemHandler) restoreBackup(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A backup file upload named 'file' is required"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to read backup upload",
			slog.String("file", header.Filename), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file"})
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), raw, actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Backup restore failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *systemHandler) syncStatus(c *gin.Context) {
	if h.syncer == nil {
		c.JSON(http.StatusOK, dto.SyncStatusResponse{State: "disabled"})
		return
	}
	status := h.syncer.Status()
	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		Mirror:       status.Mirror,
		State:        string(status.State),
		LastSyncedAt: status.LastSyncedAt,
		LastError:    status.LastError,
	})
}

// syncNow pushes the current snapshot immediately, bypassing the debounce.
func (h *systemHandler) syncNow(c *gin.Context) {
	if h.syncer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No remote mirror is configured"})
		return
	}
	if err := h.syncer.SyncNow(c.Request.Context(), h.store.Snapshot()); err != nil {
		h.respondMirrorError(c, err, "Manual sync failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

func (h *systemHandler) syncTest(c *gin.Context) {
	if h.syncer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No remote mirror is configured"})
		return
	}
	if err := h.syncer.Test(c.Request.Context()); err != nil {
		h.respondMirrorError(c, err, "Mirror test failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondMirrorError keeps the classified mirror failures user-readable.
func (h *systemHandler) respondMirrorError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn(logMsg, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, mirror.ErrTableMissing):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The remote storage table does not exist yet"})
	case errors.Is(err, mirror.ErrPermissionDenied):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The remote rejected the operation: permission denied"})
	case errors.Is(err, mirror.ErrBadCredentials):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The remote rejected the configured credentials"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No remote document found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sync failed: " + err.Error()})
	}
}
