package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"gorm.io/gorm"
)

var (
	ErrUnknownEventType = errors.New("unhandled billing event type")
	ErrBadEventPayload  = errors.New("malformed billing event payload")
)

// BillingService applies the billing provider's webhook events to
// organization rows. Idempotency and ordering are whatever the provider
// guarantees; each branch is a single read-modify-write.
type BillingService struct {
	Repos *repositories.Repos
}

func NewBillingService(repos *repositories.Repos) *BillingService {
	return &BillingService{Repos: repos}
}

func (s *BillingService) HandleEvent(event dto.BillingEvent) error {
	var err error
	switch event.Type {
	case dto.EventCheckoutCompleted:
		err = s.handleCheckoutCompleted(event.Data.Object)
	case dto.EventSubscriptionUpdated:
		err = s.handleSubscriptionUpdated(event.Data.Object)
	case dto.EventSubscriptionDeleted:
		err = s.handleSubscriptionDeleted(event.Data.Object)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.Type)
	}
	if err != nil {
		return err
	}
	s.recordEvent(event)
	return nil
}

// recordEvent keeps the raw provider payload on the audit trail. Failures
// are logged; the webhook has already been applied.
func (s *BillingService) recordEvent(event dto.BillingEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		log.Printf("Billing audit marshal error: %v", err)
		return
	}
	entry := &models.AuditLog{
		Action:       event.Type,
		ResourceType: "billing_event",
		ResourceID:   event.ID,
		NewData:      raw,
		Description:  "billing webhook",
	}
	if err := s.Repos.Audit.CreateAuditLog(entry); err != nil {
		log.Printf("Billing audit write error: %v", err)
	}
}

// handleCheckoutCompleted provisions the organization named in the checkout
// metadata and makes the purchasing user its first admin member.
func (s *BillingService) handleCheckoutCompleted(raw json.RawMessage) error {
	var obj dto.CheckoutObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEventPayload, err)
	}
	meta := obj.Metadata
	if meta.OrganizationName == "" || meta.CreatorUserID == 0 {
		return fmt.Errorf("%w: missing organization metadata", ErrBadEventPayload)
	}

	cycle := models.BillingCycle(meta.BillingCycle)
	if cycle != models.BillingMonthly && cycle != models.BillingAnnual {
		cycle = models.BillingMonthly
	}

	org := &models.Organization{
		Name:               meta.OrganizationName,
		Slug:               slugify(meta.OrganizationName),
		OwnerID:            meta.CreatorUserID,
		AdminSeats:         max(meta.AdminSeats, 1),
		AnalystSeats:       meta.AnalystSeats,
		UserSeats:          meta.UserSeats,
		BillingCycle:       cycle,
		SubscriptionID:     &obj.Subscription,
		SubscriptionStatus: models.SubscriptionActive,
		IsActive:           true,
	}

	return s.Repos.ExecTx(func(tx *repositories.Repos) error {
		if err := tx.Organization.Create(org); err != nil {
			return err
		}
		return tx.Member.Create(&models.OrgMember{
			OrgID:  org.OrgID,
			UserID: meta.CreatorUserID,
			Role:   models.RoleAdmin,
		})
	})
}

func (s *BillingService) handleSubscriptionUpdated(raw json.RawMessage) error {
	var obj dto.SubscriptionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEventPayload, err)
	}

	org, err := s.Repos.Organization.GetBySubscriptionID(obj.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Subscription for an org we never provisioned; log and ack so
			// the provider stops retrying.
			log.Printf("Billing update for unknown subscription %s", obj.ID)
			return nil
		}
		return err
	}

	if obj.Metadata.AdminSeats > 0 {
		org.AdminSeats = obj.Metadata.AdminSeats
	}
	if obj.Metadata.AnalystSeats > 0 {
		org.AnalystSeats = obj.Metadata.AnalystSeats
	}
	if obj.Metadata.UserSeats > 0 {
		org.UserSeats = obj.Metadata.UserSeats
	}
	switch obj.Status {
	case "active":
		org.SubscriptionStatus = models.SubscriptionActive
	case "past_due":
		org.SubscriptionStatus = models.SubscriptionPastDue
	case "canceled":
		org.SubscriptionStatus = models.SubscriptionCanceled
	}

	return s.Repos.Organization.Save(&org)
}

func (s *BillingService) handleSubscriptionDeleted(raw json.RawMessage) error {
	var obj dto.SubscriptionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEventPayload, err)
	}

	org, err := s.Repos.Organization.GetBySubscriptionID(obj.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Billing delete for unknown subscription %s", obj.ID)
			return nil
		}
		return err
	}

	org.IsActive = false
	org.SubscriptionStatus = models.SubscriptionCanceled
	return s.Repos.Organization.Save(&org)
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
