package services

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/middleware"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserServiceMocks(t *testing.T) (*UserService, *mock_repositories.MockUserRepo, *mock_repositories.MockMemberRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock_repositories.NewMockUserRepo(ctrl)
	mockMember := mock_repositories.NewMockMemberRepo(ctrl)
	repos := &repositories.Repos{User: mockUser, Member: mockMember}
	return NewUserService(repos), mockUser, mockMember
}

func hashedUser(username, password string) models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return models.User{UID: 42, Username: username, Password: string(hashed), Status: models.UserStatusActive}
}

// ------------------------------ Register ------------------------------

func TestRegisterUser(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByUsername("alice").Return(models.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().SaveUser(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.UID = 7
		return nil
	})

	user, err := svc.RegisterUser(dto.RegisterInput{Username: "alice", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.UID)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123456")))
}

func TestRegisterUser_UsernameTaken(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByUsername("alice").Return(models.User{UID: 1}, nil)

	_, err := svc.RegisterUser(dto.RegisterInput{Username: "alice", Password: "123456"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// ------------------------------- Login --------------------------------

func TestLoginUser_TokenCarriesMembership(t *testing.T) {
	svc, mockUser, mockMember := setupUserServiceMocks(t)

	orig := middleware.GenerateToken
	t.Cleanup(func() { middleware.GenerateToken = orig })
	var gotOrg uint
	var gotRole models.MemberRole
	middleware.GenerateToken = func(userID uint, username string, orgID uint, role models.MemberRole, d time.Duration) (string, error) {
		gotOrg, gotRole = orgID, role
		return "tok", nil
	}

	mockUser.EXPECT().GetUserByUsername("alice").Return(hashedUser("alice", "123456"), nil)
	mockMember.EXPECT().GetMembershipByUserID(uint(42)).
		Return(models.OrgMember{OrgID: 9, UserID: 42, Role: models.RoleAnalyst}, nil)

	user, token, member, err := svc.LoginUser("alice", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, uint(42), user.UID)
	assert.Equal(t, uint(9), member.OrgID)
	assert.Equal(t, uint(9), gotOrg)
	assert.Equal(t, models.RoleAnalyst, gotRole)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByUsername("alice").Return(hashedUser("alice", "123456"), nil)

	_, _, _, err := svc.LoginUser("alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_NoMembershipStillSignsIn(t *testing.T) {
	svc, mockUser, mockMember := setupUserServiceMocks(t)

	orig := middleware.GenerateToken
	t.Cleanup(func() { middleware.GenerateToken = orig })
	middleware.GenerateToken = func(userID uint, username string, orgID uint, role models.MemberRole, d time.Duration) (string, error) {
		return "tok", nil
	}

	mockUser.EXPECT().GetUserByUsername("alice").Return(hashedUser("alice", "123456"), nil)
	mockMember.EXPECT().GetMembershipByUserID(uint(42)).
		Return(models.OrgMember{}, gorm.ErrRecordNotFound)

	_, token, member, err := svc.LoginUser("alice", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Zero(t, member.OrgID)
}

// ------------------------------- Update -------------------------------

func TestUpdateUser_PasswordNeedsOldPassword(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(uint(42)).Return(hashedUser("alice", "123456"), nil)

	newPass := "654321"
	_, err := svc.UpdateUser(42, dto.UpdateUserInput{Password: &newPass})
	assert.ErrorIs(t, err, ErrMissingOldPassword)
}

func TestUpdateUser_ChangesPassword(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(uint(42)).Return(hashedUser("alice", "123456"), nil)
	mockUser.EXPECT().SaveUser(gomock.Any()).Return(nil)

	oldPass, newPass := "123456", "654321"
	user, err := svc.UpdateUser(42, dto.UpdateUserInput{OldPassword: &oldPass, Password: &newPass})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPass)))
}
