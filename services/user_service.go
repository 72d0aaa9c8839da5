package services

import (
	"errors"
	"time"

	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/middleware"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoMembership        = errors.New("user does not belong to an organization")
)

type UserService struct {
	Repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{Repos: repos}
}

func (s *UserService) RegisterUser(input dto.RegisterInput) (*models.User, error) {
	_, err := s.Repos.User.GetUserByUsername(input.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashFailure
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Status:   models.UserStatusActive,
	}
	if err := s.Repos.User.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser checks credentials and issues a token carrying the user's
// membership (org + role). Users without a membership can still sign in,
// with zero-valued org claims; org-scoped routes will turn them away.
func (s *UserService) LoginUser(username, password string) (models.User, string, models.OrgMember, error) {
	var member models.OrgMember

	user, err := s.Repos.User.GetUserByUsername(username)
	if err != nil {
		return user, "", member, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return user, "", member, ErrInvalidCredentials
	}

	member, err = s.Repos.Member.GetMembershipByUserID(user.UID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, "", member, err
	}

	token, err := middleware.GenerateToken(user.UID, user.Username, member.OrgID, member.Role, 24*time.Hour)
	if err != nil {
		return user, "", member, err
	}
	return user, token, member, nil
}

func (s *UserService) FindUserByID(id uint) (models.User, error) {
	user, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateUser(id uint, input dto.UpdateUserInput) (models.User, error) {
	user, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return models.User{}, ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*input.OldPassword)); err != nil {
			return models.User{}, ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, ErrPasswordHashFailure
		}
		user.Password = string(hashed)
	}

	if input.Email != nil {
		user.Email = input.Email
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.Status != nil {
		user.Status = models.UserStatus(*input.Status)
	}

	if err := s.Repos.User.SaveUser(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) RemoveUser(id uint) error {
	return s.Repos.User.DeleteUser(id)
}
