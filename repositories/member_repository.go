package repositories

import (
	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type MemberRepo interface {
	GetMember(orgID, userID uint) (models.OrgMember, error)
	GetMembershipByUserID(userID uint) (models.OrgMember, error)
	ListMembers(orgID uint) ([]models.OrgMember, error)
	CountByRole(orgID uint, role models.MemberRole) (int64, error)
	Create(m *models.OrgMember) error
	Save(m *models.OrgMember) error
	Delete(orgID, userID uint) error
	WithTx(tx *gorm.DB) MemberRepo
}

type DBMemberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) *DBMemberRepo {
	return &DBMemberRepo{db: db}
}

func (r *DBMemberRepo) WithTx(tx *gorm.DB) MemberRepo {
	return &DBMemberRepo{db: tx}
}

func (r *DBMemberRepo) GetMember(orgID, userID uint) (models.OrgMember, error) {
	var m models.OrgMember
	err := r.db.Where("org_id = ? AND user_id = ?", orgID, userID).First(&m).Error
	return m, err
}

func (r *DBMemberRepo) GetMembershipByUserID(userID uint) (models.OrgMember, error) {
	var m models.OrgMember
	err := r.db.Where("user_id = ?", userID).First(&m).Error
	return m, err
}

func (r *DBMemberRepo) ListMembers(orgID uint) ([]models.OrgMember, error) {
	var members []models.OrgMember
	err := r.db.Where("org_id = ?", orgID).Preload("User").Order("joined_at").Find(&members).Error
	return members, err
}

func (r *DBMemberRepo) CountByRole(orgID uint, role models.MemberRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrgMember{}).
		Where("org_id = ? AND role = ?", orgID, role).
		Count(&count).Error
	return count, err
}

func (r *DBMemberRepo) Create(m *models.OrgMember) error {
	return r.db.Create(m).Error
}

func (r *DBMemberRepo) Save(m *models.OrgMember) error {
	return r.db.Save(m).Error
}

func (r *DBMemberRepo) Delete(orgID, userID uint) error {
	return r.db.Where("org_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrgMember{}).Error
}
