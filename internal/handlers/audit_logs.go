package handlers

import (
	"strconv"

	"clinic-server/internal/models"
	"clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLogHandler exposes the audit trail to administrators.
type AuditLogHandler struct {
	DB *gorm.DB
}

// NewAuditLogHandler creates a new AuditLogHandler.
func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{DB: db}
}

// GetAuditLogs fetches audit log entries, newest first.
func (h *AuditLogHandler) GetAuditLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			utils.BadRequest(c, "limit must be an integer between 1 and 1000")
			return
		}
		limit = parsed
	}

	query := h.DB.Order("created_at desc").Limit(limit)
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch audit logs: "+err.Error())
		return
	}
	utils.Success(c, "Audit logs fetched successfully", logs)
}
