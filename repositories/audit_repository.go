package repositories

import (
	"time"

	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type AuditQueryParams struct {
	OrgID        uint
	UserID       uint
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

type AuditRepo interface {
	CreateAuditLog(logEntry *models.AuditLog) error
	GetAuditLogs(params AuditQueryParams) ([]models.AuditLog, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{db: db}
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	return &DBAuditRepo{db: tx}
}

func (r *DBAuditRepo) CreateAuditLog(logEntry *models.AuditLog) error {
	return r.db.Create(logEntry).Error
}

func (r *DBAuditRepo) GetAuditLogs(params AuditQueryParams) ([]models.AuditLog, error) {
	q := r.db.Model(&models.AuditLog{})
	if params.OrgID != 0 {
		q = q.Where("org_id = ?", params.OrgID)
	}
	if params.UserID != 0 {
		q = q.Where("user_id = ?", params.UserID)
	}
	if params.Action != "" {
		q = q.Where("action = ?", params.Action)
	}
	if params.ResourceType != "" {
		q = q.Where("resource_type = ?", params.ResourceType)
	}
	if params.From != nil {
		q = q.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		q = q.Where("created_at < ?", *params.To)
	}

	page := params.Page
	limit := params.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 50
	}

	var logs []models.AuditLog
	err := q.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *DBAuditRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
