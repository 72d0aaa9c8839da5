package repositories

import (
	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type TemplateFilter struct {
	Category   models.FormCategory
	ActiveOnly bool
}

type TemplateRepo interface {
	GetByID(id string) (models.FormTemplate, error)
	GetOrgTemplate(orgID uint, id string) (models.FormTemplate, error)
	ListByOrg(orgID uint, filter TemplateFilter) ([]models.FormTemplate, error)
	Create(t *models.FormTemplate) error
	Save(t *models.FormTemplate) error
	Delete(id string) error
	WithTx(tx *gorm.DB) TemplateRepo
}

type DBTemplateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) *DBTemplateRepo {
	return &DBTemplateRepo{db: db}
}

func (r *DBTemplateRepo) WithTx(tx *gorm.DB) TemplateRepo {
	return &DBTemplateRepo{db: tx}
}

func (r *DBTemplateRepo) GetByID(id string) (models.FormTemplate, error) {
	var t models.FormTemplate
	err := r.db.Where("id = ?", id).First(&t).Error
	return t, err
}

func (r *DBTemplateRepo) GetOrgTemplate(orgID uint, id string) (models.FormTemplate, error) {
	var t models.FormTemplate
	err := r.db.Where("id = ? AND org_id = ?", id, orgID).First(&t).Error
	return t, err
}

// ListByOrg returns the latest version of each template; superseded
// version rows are reachable only through the version chain.
func (r *DBTemplateRepo) ListByOrg(orgID uint, filter TemplateFilter) ([]models.FormTemplate, error) {
	q := r.db.Where("org_id = ? AND is_latest_version = ?", orgID, true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	var templates []models.FormTemplate
	err := q.Order("created_at desc").Find(&templates).Error
	return templates, err
}

func (r *DBTemplateRepo) Create(t *models.FormTemplate) error {
	return r.db.Create(t).Error
}

func (r *DBTemplateRepo) Save(t *models.FormTemplate) error {
	return r.db.Save(t).Error
}

func (r *DBTemplateRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.FormTemplate{}).Error
}
