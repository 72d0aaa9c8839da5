package repositories

import (
	"github.com/safetrack/ehs-platform/models"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserByUsername(username string) (models.User, error)
	GetUserByID(id uint) (models.User, error)
	ListUsersByIDs(ids []uint) ([]models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(id uint) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	return &DBUserRepo{db: tx}
}

func (r *DBUserRepo) GetUserByUsername(username string) (models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	return u, err
}

func (r *DBUserRepo) GetUserByID(id uint) (models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	return u, err
}

func (r *DBUserRepo) ListUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("u_id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *DBUserRepo) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}
