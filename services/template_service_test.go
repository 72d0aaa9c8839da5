package services

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func ptrString(s string) *string { return &s }

// --------------------- Setup ---------------------
func setupTemplateServiceMocks(t *testing.T) (*TemplateService, *mock_repositories.MockTemplateRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockTemplate := mock_repositories.NewMockTemplateRepo(ctrl)
	repos := &repositories.Repos{
		Template: mockTemplate,
	}
	svc := NewTemplateService(repos)
	return svc, mockTemplate
}

// --------------------- CreateTemplate ---------------------
func TestCreateTemplate_Success(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	input := dto.CreateTemplateInput{
		Name:     "Incident Report",
		Category: models.CategoryIncident,
		Fields: models.FieldList{
			{Type: models.FieldTypeText, Label: "Incident Title", Required: true},
			{Type: models.FieldTypeDate, Label: "Incident Date", Required: true},
		},
	}

	mockTemplate.EXPECT().Create(gomock.Any()).Return(nil)

	tmpl, err := svc.CreateTemplate(7, 42, input)
	assert.NoError(t, err)
	assert.NotEmpty(t, tmpl.ID)
	assert.Equal(t, uint(7), tmpl.OrgID)
	assert.Equal(t, uint(42), tmpl.CreatedBy)
	assert.Equal(t, 1, tmpl.Version)
	assert.True(t, tmpl.IsActive)
	assert.Equal(t, "incident_title", tmpl.Fields[0].Name)
	assert.NotEmpty(t, tmpl.Fields[0].ID)
}

func TestCreateTemplate_InvalidCategory(t *testing.T) {
	svc, _ := setupTemplateServiceMocks(t)

	input := dto.CreateTemplateInput{
		Name:     "Bad",
		Category: "nonsense",
		Fields:   models.FieldList{{Type: models.FieldTypeText, Label: "X"}},
	}

	_, err := svc.CreateTemplate(7, 42, input)
	assert.Equal(t, ErrInvalidCategory, err)
}

func TestCreateTemplate_DuplicateFieldNames(t *testing.T) {
	svc, _ := setupTemplateServiceMocks(t)

	input := dto.CreateTemplateInput{
		Name:     "Dupes",
		Category: models.CategoryOther,
		Fields: models.FieldList{
			{Type: models.FieldTypeText, Label: "Location"},
			{Type: models.FieldTypeText, Label: "Location"},
		},
	}

	_, err := svc.CreateTemplate(7, 42, input)
	assert.ErrorIs(t, err, models.ErrDuplicateFieldName)
}

// --------------------- UpdateTemplate ---------------------
func TestUpdateTemplate_ForksNewVersion(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	existing := models.FormTemplate{
		ID:              "t-1",
		OrgID:           7,
		Name:            "Old Name",
		Category:        models.CategoryIncident,
		Version:         1,
		IsActive:        true,
		IsLatestVersion: true,
		Fields: models.FieldList{
			{ID: "f-1", Type: models.FieldTypeText, Label: "Old", Name: "old", Order: 1},
		},
	}
	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(existing, nil)
	mockTemplate.EXPECT().Save(gomock.Any()).DoAndReturn(func(old *models.FormTemplate) error {
		assert.Equal(t, "t-1", old.ID)
		assert.False(t, old.IsLatestVersion)
		return nil
	})
	mockTemplate.EXPECT().Create(gomock.Any()).Return(nil)

	input := dto.UpdateTemplateInput{
		Name: ptrString("New Name"),
		Fields: models.FieldList{
			{Type: models.FieldTypeText, Label: "Brand New"},
		},
	}

	updated, err := svc.UpdateTemplate(7, "t-1", input)
	assert.NoError(t, err)
	assert.NotEqual(t, "t-1", updated.ID)
	assert.Equal(t, 2, updated.Version)
	assert.True(t, updated.IsLatestVersion)
	if assert.NotNil(t, updated.PreviousVersionID) {
		assert.Equal(t, "t-1", *updated.PreviousVersionID)
	}
	assert.Equal(t, "New Name", updated.Name)
	assert.Len(t, updated.Fields, 1)
	assert.Equal(t, "brand_new", updated.Fields[0].Name)
}

func TestUpdateTemplate_KeepsUntouchedValues(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	existing := models.FormTemplate{
		ID:              "t-1",
		OrgID:           7,
		Name:            "Same Name",
		Category:        models.CategoryIncident,
		Version:         3,
		IsActive:        true,
		IsLatestVersion: true,
		Fields: models.FieldList{
			{ID: "f-1", Type: models.FieldTypeText, Label: "Title", Name: "title", Order: 1},
		},
	}
	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(existing, nil)
	mockTemplate.EXPECT().Save(gomock.Any()).Return(nil)
	mockTemplate.EXPECT().Create(gomock.Any()).Return(nil)

	updated, err := svc.UpdateTemplate(7, "t-1", dto.UpdateTemplateInput{
		Description: ptrString("now with a description"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Version)
	assert.Equal(t, "Same Name", updated.Name)
	assert.Equal(t, models.CategoryIncident, updated.Category)
	assert.Equal(t, "f-1", updated.Fields[0].ID)
}

func TestUpdateTemplate_NotFound(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "missing").
		Return(models.FormTemplate{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateTemplate(7, "missing", dto.UpdateTemplateInput{})
	assert.Equal(t, ErrTemplateNotFound, err)
}

// --------------------- ToggleActive ---------------------
func TestToggleActive_RetirePreservesFields(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	existing := models.FormTemplate{
		ID:       "t-1",
		OrgID:    7,
		IsActive: true,
		Fields: models.FieldList{
			{ID: "f-1", Name: "title", Type: models.FieldTypeText},
		},
	}
	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(existing, nil)
	mockTemplate.EXPECT().Save(gomock.Any()).Return(nil)

	retired, err := svc.ToggleActive(7, "t-1", false)
	assert.NoError(t, err)
	assert.False(t, retired.IsActive)
	assert.Equal(t, "t-1", retired.ID)
	assert.Len(t, retired.Fields, 1)
}

// --------------------- DeleteTemplate ---------------------
func TestDeleteTemplate_NotFound(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "missing").
		Return(models.FormTemplate{}, gorm.ErrRecordNotFound)

	err := svc.DeleteTemplate(7, "missing")
	assert.Equal(t, ErrTemplateNotFound, err)
}

// --------------------- ListVersionChain ---------------------
func TestListVersionChain_WalksPreviousPointers(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	prevID := "t-0"
	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "t-1").
		Return(models.FormTemplate{ID: "t-1", Version: 2, PreviousVersionID: &prevID}, nil)
	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "t-0").
		Return(models.FormTemplate{ID: "t-0", Version: 1}, nil)

	chain, err := svc.ListVersionChain(7, "t-1")
	assert.NoError(t, err)
	assert.Len(t, chain, 2)
	assert.Equal(t, "t-1", chain[0].ID)
	assert.Equal(t, "t-0", chain[1].ID)
}

func TestListVersionChain_MissingRoot(t *testing.T) {
	svc, mockTemplate := setupTemplateServiceMocks(t)

	mockTemplate.EXPECT().GetOrgTemplate(uint(7), "gone").
		Return(models.FormTemplate{}, gorm.ErrRecordNotFound)

	_, err := svc.ListVersionChain(7, "gone")
	assert.Equal(t, ErrTemplateNotFound, err)
}
