package repositories

import (
	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type OrganizationRepo interface {
	GetByID(id uint) (models.Organization, error)
	GetBySubscriptionID(subID string) (models.Organization, error)
	Create(org *models.Organization) error
	Save(org *models.Organization) error
	WithTx(tx *gorm.DB) OrganizationRepo
}

type DBOrganizationRepo struct {
	db *gorm.DB
}

func NewOrganizationRepo(db *gorm.DB) *DBOrganizationRepo {
	return &DBOrganizationRepo{db: db}
}

func (r *DBOrganizationRepo) WithTx(tx *gorm.DB) OrganizationRepo {
	return &DBOrganizationRepo{db: tx}
}

func (r *DBOrganizationRepo) GetByID(id uint) (models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, id).Error
	return org, err
}

func (r *DBOrganizationRepo) GetBySubscriptionID(subID string) (models.Organization, error) {
	var org models.Organization
	err := r.db.Where("subscription_id = ?", subID).First(&org).Error
	return org, err
}

func (r *DBOrganizationRepo) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *DBOrganizationRepo) Save(org *models.Organization) error {
	return r.db.Save(org).Error
}
