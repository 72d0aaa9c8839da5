package repositories

import (
	"time"

	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type SubmissionFilter struct {
	TemplateID string
	Status     models.SubmissionStatus
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type TemplateCount struct {
	TemplateID string `json:"template_id"`
	Count      int64  `json:"count"`
}

type StatusCount struct {
	Status models.SubmissionStatus `json:"status"`
	Count  int64                   `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type SubmissionRepo interface {
	GetByID(id string) (models.FormSubmission, error)
	GetOrgSubmission(orgID uint, id string) (models.FormSubmission, error)
	ListByOrg(orgID uint, filter SubmissionFilter) ([]models.FormSubmission, int64, error)
	ListByUser(orgID, userID uint) ([]models.FormSubmission, error)
	Create(s *models.FormSubmission) error
	Save(s *models.FormSubmission) error
	CountByOrg(orgID uint) (int64, error)
	CountByTemplate(orgID uint) ([]TemplateCount, error)
	CountByStatus(orgID uint) ([]StatusCount, error)
	CountByMonth(orgID uint) ([]MonthCount, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{db: db}
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	return &DBSubmissionRepo{db: tx}
}

func (r *DBSubmissionRepo) GetByID(id string) (models.FormSubmission, error) {
	var s models.FormSubmission
	err := r.db.Where("id = ?", id).First(&s).Error
	return s, err
}

func (r *DBSubmissionRepo) GetOrgSubmission(orgID uint, id string) (models.FormSubmission, error) {
	var s models.FormSubmission
	err := r.db.Where("id = ? AND org_id = ?", id, orgID).First(&s).Error
	return s, err
}

func (r *DBSubmissionRepo) ListByOrg(orgID uint, filter SubmissionFilter) ([]models.FormSubmission, int64, error) {
	q := r.db.Model(&models.FormSubmission{}).Where("org_id = ?", orgID)
	if filter.TemplateID != "" {
		q = q.Where("template_id = ?", filter.TemplateID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("submitted_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("submitted_at < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 20
	}

	var subs []models.FormSubmission
	err := q.Order("submitted_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subs).Error
	return subs, total, err
}

func (r *DBSubmissionRepo) ListByUser(orgID, userID uint) ([]models.FormSubmission, error) {
	var subs []models.FormSubmission
	err := r.db.Where("org_id = ? AND submitter_id = ?", orgID, userID).
		Order("submitted_at desc").Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) Create(s *models.FormSubmission) error {
	return r.db.Create(s).Error
}

func (r *DBSubmissionRepo) Save(s *models.FormSubmission) error {
	return r.db.Save(s).Error
}

func (r *DBSubmissionRepo) CountByOrg(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FormSubmission{}).Where("org_id = ?", orgID).Count(&count).Error
	return count, err
}

func (r *DBSubmissionRepo) CountByTemplate(orgID uint) ([]TemplateCount, error) {
	var rows []TemplateCount
	err := r.db.Model(&models.FormSubmission{}).
		Select("template_id, count(*) as count").
		Where("org_id = ?", orgID).
		Group("template_id").
		Scan(&rows).Error
	return rows, err
}

func (r *DBSubmissionRepo) CountByStatus(orgID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.Model(&models.FormSubmission{}).
		Select("status, count(*) as count").
		Where("org_id = ?", orgID).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *DBSubmissionRepo) CountByMonth(orgID uint) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.db.Model(&models.FormSubmission{}).
		Select("to_char(submitted_at, 'YYYY-MM') as month, count(*) as count").
		Where("org_id = ?", orgID).
		Group("month").
		Order("month").
		Scan(&rows).Error
	return rows, err
}
