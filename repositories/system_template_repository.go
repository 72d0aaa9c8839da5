package repositories

import (
	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type SystemTemplateFilter struct {
	Category   models.FormCategory
	Complexity models.ComplexityLevel
	Industry   string
}

type SystemTemplateRepo interface {
	List(filter SystemTemplateFilter) ([]models.SystemFormTemplate, error)
	GetByID(id string) (models.SystemFormTemplate, error)
	GetByName(name string) (models.SystemFormTemplate, error)
	Create(t *models.SystemFormTemplate) error
	Save(t *models.SystemFormTemplate) error
	IncrementUsage(id string) error
	WithTx(tx *gorm.DB) SystemTemplateRepo
}

type DBSystemTemplateRepo struct {
	db *gorm.DB
}

func NewSystemTemplateRepo(db *gorm.DB) *DBSystemTemplateRepo {
	return &DBSystemTemplateRepo{db: db}
}

func (r *DBSystemTemplateRepo) WithTx(tx *gorm.DB) SystemTemplateRepo {
	return &DBSystemTemplateRepo{db: tx}
}

func (r *DBSystemTemplateRepo) List(filter SystemTemplateFilter) ([]models.SystemFormTemplate, error) {
	q := r.db.Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Complexity != "" {
		q = q.Where("complexity = ?", filter.Complexity)
	}
	if filter.Industry != "" {
		q = q.Where("? = ANY(industry_tags)", filter.Industry)
	}
	var templates []models.SystemFormTemplate
	err := q.Order("usage_count desc, name").Find(&templates).Error
	return templates, err
}

func (r *DBSystemTemplateRepo) GetByID(id string) (models.SystemFormTemplate, error) {
	var t models.SystemFormTemplate
	err := r.db.Where("id = ?", id).First(&t).Error
	return t, err
}

func (r *DBSystemTemplateRepo) GetByName(name string) (models.SystemFormTemplate, error) {
	var t models.SystemFormTemplate
	err := r.db.Where("name = ?", name).First(&t).Error
	return t, err
}

func (r *DBSystemTemplateRepo) Create(t *models.SystemFormTemplate) error {
	return r.db.Create(t).Error
}

func (r *DBSystemTemplateRepo) Save(t *models.SystemFormTemplate) error {
	return r.db.Save(t).Error
}

func (r *DBSystemTemplateRepo) IncrementUsage(id string) error {
	return r.db.Model(&models.SystemFormTemplate{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
