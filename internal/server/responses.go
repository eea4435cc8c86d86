package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

func respondCreated(c *gin.Context, message string, id snowflake.ID, data any) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "id": id, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// respondList never encodes a nil slice as null.
func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// recordWrite audits and counts a successful write.
func (s *Server) recordWrite(c *gin.Context, entity, op, id string, metadata map[string]any) {
	ctx := c.Request.Context()
	c.Set("entity", entity)
	s.obsMetrics.RecordWrite(ctx, entity, op)

	if s.auditSvc == nil {
		return
	}
	targetID := id
	if err := s.auditSvc.AuditLog(ctx, entity+"."+op, entity, &targetID, metadata); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("entity", entity),
			zap.String("operation", op),
			zap.Error(err),
		)
	}
}
