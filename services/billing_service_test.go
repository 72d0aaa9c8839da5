package services

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type billingMocks struct {
	org    *mock_repositories.MockOrganizationRepo
	member *mock_repositories.MockMemberRepo
}

func setupBillingServiceMocks(t *testing.T) (*BillingService, billingMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := billingMocks{
		org:    mock_repositories.NewMockOrganizationRepo(ctrl),
		member: mock_repositories.NewMockMemberRepo(ctrl),
	}
	audit := mock_repositories.NewMockAuditRepo(ctrl)
	audit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil).AnyTimes()

	repos := &repositories.Repos{
		Organization: m.org,
		Member:       m.member,
		Audit:        audit,
	}
	return NewBillingService(repos), m
}

func billingEvent(eventType string, object string) dto.BillingEvent {
	var e dto.BillingEvent
	e.Type = eventType
	e.Data.Object = json.RawMessage(object)
	return e
}

// --------------------- checkout.session.completed ---------------------
func TestHandleEvent_CheckoutCompleted(t *testing.T) {
	svc, m := setupBillingServiceMocks(t)

	var createdOrg *models.Organization
	m.org.EXPECT().Create(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		org.OrgID = 7
		createdOrg = org
		return nil
	})
	m.member.EXPECT().Create(gomock.Any()).DoAndReturn(func(member *models.OrgMember) error {
		assert.Equal(t, uint(7), member.OrgID)
		assert.Equal(t, uint(42), member.UserID)
		assert.Equal(t, models.RoleAdmin, member.Role)
		return nil
	})

	err := svc.HandleEvent(billingEvent(dto.EventCheckoutCompleted, `{
		"subscription": "sub_123",
		"metadata": {
			"organizationName": "Acme Construction",
			"creatorUserId": "42",
			"adminLicenses": "2",
			"analystLicenses": "3",
			"userLicenses": "25",
			"billingCycle": "annual"
		}
	}`))
	assert.NoError(t, err)
	assert.Equal(t, "Acme Construction", createdOrg.Name)
	assert.Equal(t, "acme-construction", createdOrg.Slug)
	assert.Equal(t, 2, createdOrg.AdminSeats)
	assert.Equal(t, 25, createdOrg.UserSeats)
	assert.Equal(t, models.BillingAnnual, createdOrg.BillingCycle)
	assert.Equal(t, "sub_123", *createdOrg.SubscriptionID)
	assert.True(t, createdOrg.IsActive)
}

func TestHandleEvent_CheckoutMissingMetadata(t *testing.T) {
	svc, _ := setupBillingServiceMocks(t)

	err := svc.HandleEvent(billingEvent(dto.EventCheckoutCompleted, `{"subscription": "sub_123", "metadata": {}}`))
	assert.ErrorIs(t, err, ErrBadEventPayload)
}

func TestHandleEvent_CheckoutAdminSeatsFloorOfOne(t *testing.T) {
	svc, m := setupBillingServiceMocks(t)

	m.org.EXPECT().Create(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		assert.Equal(t, 1, org.AdminSeats)
		return nil
	})
	m.member.EXPECT().Create(gomock.Any()).Return(nil)

	err := svc.HandleEvent(billingEvent(dto.EventCheckoutCompleted, `{
		"subscription": "sub_99",
		"metadata": {"organizationName": "Solo Shop", "creatorUserId": "8"}
	}`))
	assert.NoError(t, err)
}

// --------------------- customer.subscription.updated ---------------------
func TestHandleEvent_SubscriptionUpdated(t *testing.T) {
	svc, m := setupBillingServiceMocks(t)

	m.org.EXPECT().GetBySubscriptionID("sub_123").
		Return(models.Organization{OrgID: 7, AdminSeats: 1, UserSeats: 10, SubscriptionStatus: models.SubscriptionActive}, nil)
	m.org.EXPECT().Save(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		assert.Equal(t, 20, org.UserSeats)
		assert.Equal(t, models.SubscriptionPastDue, org.SubscriptionStatus)
		return nil
	})

	err := svc.HandleEvent(billingEvent(dto.EventSubscriptionUpdated, `{
		"id": "sub_123",
		"status": "past_due",
		"metadata": {"userLicenses": "20"}
	}`))
	assert.NoError(t, err)
}

func TestHandleEvent_SubscriptionUpdatedUnknownAcked(t *testing.T) {
	svc, m := setupBillingServiceMocks(t)

	m.org.EXPECT().GetBySubscriptionID("sub_ghost").
		Return(models.Organization{}, gorm.ErrRecordNotFound)

	err := svc.HandleEvent(billingEvent(dto.EventSubscriptionUpdated, `{"id": "sub_ghost", "status": "active"}`))
	assert.NoError(t, err)
}

// --------------------- customer.subscription.deleted ---------------------
func TestHandleEvent_SubscriptionDeletedDeactivates(t *testing.T) {
	svc, m := setupBillingServiceMocks(t)

	m.org.EXPECT().GetBySubscriptionID("sub_123").
		Return(models.Organization{OrgID: 7, IsActive: true, SubscriptionStatus: models.SubscriptionActive}, nil)
	m.org.EXPECT().Save(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		assert.False(t, org.IsActive)
		assert.Equal(t, models.SubscriptionCanceled, org.SubscriptionStatus)
		return nil
	})

	err := svc.HandleEvent(billingEvent(dto.EventSubscriptionDeleted, `{"id": "sub_123"}`))
	assert.NoError(t, err)
}

// --------------------- unknown events ---------------------
func TestHandleEvent_UnknownType(t *testing.T) {
	svc, _ := setupBillingServiceMocks(t)

	err := svc.HandleEvent(billingEvent("invoice.paid", `{}`))
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-construction", slugify("Acme Construction"))
	assert.Equal(t, "big-co", slugify("  Big & Co!  "))
	assert.Equal(t, "a-b-c", slugify("a_b-c"))
}
