package repositories

import (
	"time"

	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepo interface {
	GetByTemplateAndUser(templateID string, userID uint) (models.FormDraft, error)
	ListByUser(orgID, userID uint) ([]models.FormDraft, error)
	Upsert(d *models.FormDraft) error
	Delete(templateID string, userID uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	WithTx(tx *gorm.DB) DraftRepo
}

type DBDraftRepo struct {
	db *gorm.DB
}

func NewDraftRepo(db *gorm.DB) *DBDraftRepo {
	return &DBDraftRepo{db: db}
}

func (r *DBDraftRepo) WithTx(tx *gorm.DB) DraftRepo {
	return &DBDraftRepo{db: tx}
}

func (r *DBDraftRepo) GetByTemplateAndUser(templateID string, userID uint) (models.FormDraft, error) {
	var d models.FormDraft
	err := r.db.Where("template_id = ? AND user_id = ?", templateID, userID).First(&d).Error
	return d, err
}

func (r *DBDraftRepo) ListByUser(orgID, userID uint) ([]models.FormDraft, error) {
	var drafts []models.FormDraft
	err := r.db.Where("org_id = ? AND user_id = ?", orgID, userID).
		Order("updated_at desc").Find(&drafts).Error
	return drafts, err
}

// Upsert keeps one draft per (template, user); a second save overwrites the
// values and version of the first.
func (r *DBDraftRepo) Upsert(d *models.FormDraft) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "template_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"values", "template_version", "updated_at",
		}),
	}).Create(d).Error
}

func (r *DBDraftRepo) Delete(templateID string, userID uint) error {
	return r.db.Where("template_id = ? AND user_id = ?", templateID, userID).
		Delete(&models.FormDraft{}).Error
}

func (r *DBDraftRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("updated_at < ?", cutoff).Delete(&models.FormDraft{})
	return res.RowsAffected, res.Error
}
