package utils

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
)

// LogAudit records a mutation on the audit trail. Marshalling problems are
// logged and skipped so auditing never blocks the caller's write.
func LogAudit(
	c *gin.Context,
	orgID uint,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
	repo repositories.AuditRepo,
) error {
	userID, _ := GetUserIDFromContext(c)

	var oldData, newData []byte
	var err error
	if before != nil {
		if oldData, err = json.Marshal(before); err != nil {
			log.Printf("Audit marshal oldData error: %v", err)
		}
	}
	if after != nil {
		if newData, err = json.Marshal(after); err != nil {
			log.Printf("Audit marshal newData error: %v", err)
		}
	}

	entry := &models.AuditLog{
		OrgID:        orgID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		Description:  description,
	}
	return repo.CreateAuditLog(entry)
}

// LogAuditWithConsole is LogAudit that only logs failures.
func LogAuditWithConsole(c *gin.Context, orgID uint, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repositories.AuditRepo) {
	if err := LogAudit(c, orgID, action, resourceType, resourceID, oldData, newData, msg, repo); err != nil {
		log.Printf("[LogAudit] error: %v", err)
	}
}
