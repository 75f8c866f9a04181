// internal/middleware/logging.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
		} else if c.Writer.Status() >= 500 {
			entry.Error("Server error")
		} else {
			entry.Info("Request handled")
		}
	}
}

// auditedMethods lists HTTP methods that mutate state and get an audit row.
var auditedMethods = map[string]string{
	"POST":   "create",
	"PUT":    "update",
	"PATCH":  "update",
	"DELETE": "delete",
}

// AuditLogger records mutating requests into the audit_logs table. Writes
// happen on a goroutine so they never delay the response.
func AuditLogger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, audited := auditedMethods[c.Request.Method]
		if !audited || c.Writer.Status() >= 400 {
			return
		}

		log := models.AuditLog{
			Action:       action,
			ResourceType: resourceTypeFromPath(c.FullPath()),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}

		if actor, ok := GetActor(c); ok {
			userID := actor.ID
			businessID := actor.BusinessID
			log.UserID = &userID
			log.BusinessID = &businessID
		}

		if idParam := c.Param("id"); idParam != "" {
			if resourceID, err := uuid.Parse(idParam); err == nil {
				log.ResourceID = &resourceID
			}
		}

		go func() {
			if err := db.Create(&log).Error; err != nil {
				logrus.WithError(err).Warn("Failed to write audit log")
			}
		}()
	}
}

func resourceTypeFromPath(fullPath string) string {
	switch {
	case strings.Contains(fullPath, "/products"):
		return "product"
	case strings.Contains(fullPath, "/users"):
		return "user"
	case strings.Contains(fullPath, "/businesses"):
		return "business"
	case strings.Contains(fullPath, "/chat"):
		return "chat"
	case strings.Contains(fullPath, "/auth"):
		return "auth"
	default:
		return "unknown"
	}
}
