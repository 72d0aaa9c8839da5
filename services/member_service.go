package services

import (
	"errors"
	"fmt"

	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/email"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrAlreadyMember    = errors.New("user is already a member of this organization")
	ErrNoSeatsAvailable = errors.New("no license seats available for this role")
	ErrOrgNotFound      = errors.New("organization not found")
)

type MemberService struct {
	Repos *repositories.Repos
	Email *email.Client
}

func NewMemberService(repos *repositories.Repos, mailer *email.Client) *MemberService {
	return &MemberService{Repos: repos, Email: mailer}
}

// CreateMemberResult reports how far the multi-step creation flow got.
// Completed steps are never rolled back: a user whose welcome mail failed
// still exists and can sign in.
type CreateMemberResult struct {
	User           *models.User      `json:"user,omitempty"`
	Member         *models.OrgMember `json:"member,omitempty"`
	CompletedSteps []string          `json:"completed_steps"`
	FailedStep     string            `json:"failed_step,omitempty"`
	Err            error             `json:"-"`
}

func (r CreateMemberResult) Partial() bool {
	return r.FailedStep != "" && len(r.CompletedSteps) > 0
}

// CreateMember runs the admin flow: seat check, user record, membership,
// welcome email. Seat limits are enforced before the first write.
func (s *MemberService) CreateMember(orgID uint, input dto.CreateMemberInput) CreateMemberResult {
	result := CreateMemberResult{}
	role := models.MemberRole(input.Role)

	org, err := s.Repos.Organization.GetByID(orgID)
	if err != nil {
		result.FailedStep = "organization"
		result.Err = ErrOrgNotFound
		return result
	}

	used, err := s.Repos.Member.CountByRole(orgID, role)
	if err != nil {
		result.FailedStep = "seat_check"
		result.Err = err
		return result
	}
	if used >= int64(org.SeatsFor(role)) {
		result.FailedStep = "seat_check"
		result.Err = fmt.Errorf("%w: %s", ErrNoSeatsAvailable, role)
		return result
	}

	if _, err := s.Repos.User.GetUserByUsername(input.Username); err == nil {
		result.FailedStep = "user"
		result.Err = ErrUsernameTaken
		return result
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		result.FailedStep = "user"
		result.Err = err
		return result
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		result.FailedStep = "user"
		result.Err = ErrPasswordHashFailure
		return result
	}
	user := &models.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    &input.Email,
		FullName: input.FullName,
		Status:   models.UserStatusActive,
	}
	if err := s.Repos.User.SaveUser(user); err != nil {
		result.FailedStep = "user"
		result.Err = err
		return result
	}
	result.User = user
	result.CompletedSteps = append(result.CompletedSteps, "user")

	member := &models.OrgMember{
		OrgID:  orgID,
		UserID: user.UID,
		Role:   role,
	}
	if err := s.Repos.Member.Create(member); err != nil {
		result.FailedStep = "membership"
		result.Err = err
		return result
	}
	result.Member = member
	result.CompletedSteps = append(result.CompletedSteps, "membership")

	if err := s.Email.SendWelcome(input.Email, org.Name, input.Username, input.Password); err != nil {
		result.FailedStep = "welcome_email"
		result.Err = err
		return result
	}
	result.CompletedSteps = append(result.CompletedSteps, "welcome_email")

	return result
}

func (s *MemberService) ListMembers(orgID uint) ([]models.OrgMember, error) {
	return s.Repos.Member.ListMembers(orgID)
}

// UpdateRole changes a member's role, re-checking the target role's seats.
func (s *MemberService) UpdateRole(orgID, userID uint, role models.MemberRole) (*models.OrgMember, error) {
	member, err := s.Repos.Member.GetMember(orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.Role == role {
		return &member, nil
	}

	org, err := s.Repos.Organization.GetByID(orgID)
	if err != nil {
		return nil, ErrOrgNotFound
	}
	used, err := s.Repos.Member.CountByRole(orgID, role)
	if err != nil {
		return nil, err
	}
	if used >= int64(org.SeatsFor(role)) {
		return nil, fmt.Errorf("%w: %s", ErrNoSeatsAvailable, role)
	}

	member.Role = role
	if err := s.Repos.Member.Save(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) RemoveMember(orgID, userID uint) error {
	if _, err := s.Repos.Member.GetMember(orgID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return s.Repos.Member.Delete(orgID, userID)
}
