package cron

import (
	"log"
	"time"

	"github.com/safetrack/ehs-platform/config"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/services"
)

// StartCleanupTasks runs the retention sweeps in the background: stale
// drafts and expired audit logs, once at startup and then daily.
func StartCleanupTasks(repos *repositories.Repos, auditService *services.AuditService) {
	go func() {
		log.Printf("Starting background cleanup task (drafts: %d days, audit: %d days)",
			config.DraftRetentionDays, config.AuditRetentionDays)

		runCleanup(repos, auditService)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			runCleanup(repos, auditService)
		}
	}()
}

func runCleanup(repos *repositories.Repos, auditService *services.AuditService) {
	draftCutoff := time.Now().AddDate(0, 0, -config.DraftRetentionDays)
	if n, err := repos.Draft.DeleteOlderThan(draftCutoff); err != nil {
		log.Printf("Failed to cleanup stale drafts: %v", err)
	} else if n > 0 {
		log.Printf("Removed %d stale draft(s)", n)
	}

	if n, err := auditService.CleanupOldLogs(config.AuditRetentionDays); err != nil {
		log.Printf("Failed to cleanup old audit logs: %v", err)
	} else if n > 0 {
		log.Printf("Removed %d expired audit log(s)", n)
	}
}
