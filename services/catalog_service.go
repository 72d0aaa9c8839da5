package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

var ErrSystemTemplateNotFound = errors.New("system template not found")

// CatalogService serves the shared system template catalog and copies
// entries into organizations.
type CatalogService struct {
	Repos *repositories.Repos
}

func NewCatalogService(repos *repositories.Repos) *CatalogService {
	return &CatalogService{Repos: repos}
}

func (s *CatalogService) ListSystemTemplates(filter repositories.SystemTemplateFilter) ([]models.SystemFormTemplate, error) {
	return s.Repos.SystemTemplate.List(filter)
}

func (s *CatalogService) GetSystemTemplate(id string) (*models.SystemFormTemplate, error) {
	t, err := s.Repos.SystemTemplate.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CopyIntoOrg deep-clones a catalog entry into an org template. The clone
// gets a fresh id and field ids; mutating the copy never touches the
// source. Usage count bumps in the same transaction.
func (s *CatalogService) CopyIntoOrg(orgID, userID uint, systemID string, input dto.CopySystemTemplateInput) (*models.FormTemplate, error) {
	src, err := s.Repos.SystemTemplate.GetByID(systemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemTemplateNotFound
		}
		return nil, err
	}

	name := src.Name
	if input.Name != nil && *input.Name != "" {
		name = *input.Name
	}

	copied := &models.FormTemplate{
		ID:                   uuid.NewString(),
		OrgID:                orgID,
		Name:                 name,
		Description:          src.Description,
		Category:             src.Category,
		Fields:               src.Fields.DeepCopy(),
		IsActive:             true,
		Version:              1,
		IsLatestVersion:      true,
		CopiedFromTemplateID: &src.ID,
		CreatedBy:            userID,
	}

	err = s.Repos.ExecTx(func(tx *repositories.Repos) error {
		if err := tx.Template.Create(copied); err != nil {
			return err
		}
		return tx.SystemTemplate.IncrementUsage(src.ID)
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// catalogEntry is the YAML shape of one seed file document.
type catalogEntry struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Category         string   `yaml:"category"`
	IndustryTags     []string `yaml:"industry_tags"`
	Complexity       string   `yaml:"complexity"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	Fields           []struct {
		Type     string `yaml:"type"`
		Label    string `yaml:"label"`
		Required bool   `yaml:"required"`
		Options  []struct {
			Label string `yaml:"label"`
			Value string `yaml:"value"`
		} `yaml:"options"`
		Rules []struct {
			Type    string `yaml:"type"`
			Value   string `yaml:"value"`
			Message string `yaml:"message"`
		} `yaml:"rules"`
	} `yaml:"fields"`
}

// SeedFromDir upserts system templates from *.yaml files, keyed by name.
// Existing entries keep their id and usage count.
func (s *CatalogService) SeedFromDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read catalog file %s: %w", path, err)
		}
		var entry catalogEntry
		if err := yaml.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("parse catalog file %s: %w", path, err)
		}
		if entry.Name == "" {
			log.Printf("Skipping catalog file without a name: %s", path)
			continue
		}
		if err := s.upsertEntry(entry); err != nil {
			return fmt.Errorf("seed catalog entry %q: %w", entry.Name, err)
		}
	}
	return nil
}

func (s *CatalogService) upsertEntry(entry catalogEntry) error {
	fields := make(models.FieldList, 0, len(entry.Fields))
	for i, f := range entry.Fields {
		field := models.FormField{
			ID:       uuid.NewString(),
			Type:     models.FieldType(f.Type),
			Label:    f.Label,
			Name:     models.DeriveFieldName(f.Label),
			Required: f.Required,
			Order:    i + 1,
		}
		for _, o := range f.Options {
			field.Options = append(field.Options, models.FieldOption{Label: o.Label, Value: o.Value})
		}
		for _, r := range f.Rules {
			field.Rules = append(field.Rules, models.ValidationRule{
				Type:    models.RuleType(r.Type),
				Value:   r.Value,
				Message: r.Message,
			})
		}
		fields = append(fields, field)
	}
	fields, err := fields.Normalize()
	if err != nil {
		return err
	}

	category := models.FormCategory(entry.Category)
	if !category.Valid() {
		category = models.CategoryOther
	}
	complexity := models.ComplexityLevel(entry.Complexity)
	if complexity == "" {
		complexity = models.ComplexityBasic
	}

	existing, err := s.Repos.SystemTemplate.GetByName(entry.Name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.Repos.SystemTemplate.Create(&models.SystemFormTemplate{
			ID:               uuid.NewString(),
			Name:             entry.Name,
			Description:      entry.Description,
			Category:         category,
			Fields:           fields,
			IndustryTags:     entry.IndustryTags,
			Complexity:       complexity,
			EstimatedMinutes: entry.EstimatedMinutes,
			IsActive:         true,
		})
	}

	existing.Description = entry.Description
	existing.Category = category
	existing.Fields = fields
	existing.IndustryTags = entry.IndustryTags
	existing.Complexity = complexity
	existing.EstimatedMinutes = entry.EstimatedMinutes
	return s.Repos.SystemTemplate.Save(&existing)
}
