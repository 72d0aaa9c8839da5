package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidCategory  = errors.New("invalid template category")
)

type TemplateService struct {
	Repos *repositories.Repos
}

func NewTemplateService(repos *repositories.Repos) *TemplateService {
	return &TemplateService{Repos: repos}
}

func (s *TemplateService) CreateTemplate(orgID, userID uint, input dto.CreateTemplateInput) (*models.FormTemplate, error) {
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	fields, err := input.Fields.Normalize()
	if err != nil {
		return nil, err
	}

	t := &models.FormTemplate{
		ID:              uuid.NewString(),
		OrgID:           orgID,
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Fields:          fields,
		IsActive:        true,
		Version:         1,
		IsLatestVersion: true,
		CreatedBy:       userID,
	}
	if err := s.Repos.Template.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTemplate saves the builder's current state as a new version row.
// The stored row keeps its id and loses is_latest_version; submissions stay
// pinned to the version they were validated against.
func (s *TemplateService) UpdateTemplate(orgID uint, id string, input dto.UpdateTemplateInput) (*models.FormTemplate, error) {
	prev, err := s.Repos.Template.GetOrgTemplate(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	prevID := prev.ID
	next := prev
	next.ID = uuid.NewString()
	next.Version = prev.Version + 1
	next.PreviousVersionID = &prevID
	next.IsLatestVersion = true
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}

	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		next.Category = *input.Category
	}
	if input.Fields != nil {
		fields, err := input.Fields.Normalize()
		if err != nil {
			return nil, err
		}
		next.Fields = fields
	}

	err = s.Repos.ExecTx(func(tx *repositories.Repos) error {
		prev.IsLatestVersion = false
		if err := tx.Template.Save(&prev); err != nil {
			return err
		}
		return tx.Template.Create(&next)
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// ToggleActive retires or revives a template. Fields and id are untouched;
// existing submissions are unaffected.
func (s *TemplateService) ToggleActive(orgID uint, id string, active bool) (*models.FormTemplate, error) {
	t, err := s.Repos.Template.GetOrgTemplate(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	t.IsActive = active
	if err := s.Repos.Template.Save(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TemplateService) GetTemplate(orgID uint, id string) (*models.FormTemplate, error) {
	t, err := s.Repos.Template.GetOrgTemplate(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TemplateService) ListTemplates(orgID uint, filter repositories.TemplateFilter) ([]models.FormTemplate, error) {
	return s.Repos.Template.ListByOrg(orgID, filter)
}

// DeleteTemplate removes the schema only. Submissions keep their stamped
// template id/version and survive the delete; there is no cascade.
func (s *TemplateService) DeleteTemplate(orgID uint, id string) error {
	if _, err := s.Repos.Template.GetOrgTemplate(orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return s.Repos.Template.Delete(id)
}

// ListVersionChain walks the previous-version pointers starting at id,
// newest first.
func (s *TemplateService) ListVersionChain(orgID uint, id string) ([]models.FormTemplate, error) {
	var chain []models.FormTemplate
	next := id
	for next != "" {
		t, err := s.Repos.Template.GetOrgTemplate(orgID, next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, t)
		if t.PreviousVersionID == nil {
			break
		}
		next = *t.PreviousVersionID
	}
	if len(chain) == 0 {
		return nil, ErrTemplateNotFound
	}
	return chain, nil
}
