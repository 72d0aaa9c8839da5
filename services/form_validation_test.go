package services

import (
	"testing"

	"github.com/safetrack/ehs-platform/models"
	"github.com/stretchr/testify/assert"
)

func incidentFields() models.FieldList {
	return models.FieldList{
		{Name: "incident_title", Label: "Incident Title", Type: models.FieldTypeText, Required: true, Order: 1},
		{Name: "incident_date", Label: "Incident Date", Type: models.FieldTypeDate, Required: true, Order: 2},
	}
}

func TestValidateValues_AllRequiredPresent(t *testing.T) {
	errs := ValidateValues(incidentFields(), map[string]interface{}{
		"incident_title": "Forklift near miss",
		"incident_date":  "2026-08-12",
	})
	assert.Empty(t, errs)
}

func TestValidateValues_MissingRequiredField(t *testing.T) {
	errs := ValidateValues(incidentFields(), map[string]interface{}{
		"incident_title": "Forklift near miss",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "incident_date", errs[0].Field)
	assert.Equal(t, "Incident Date is required", errs[0].Message)
}

func TestValidateValues_EmptyStringCountsAsMissing(t *testing.T) {
	errs := ValidateValues(incidentFields(), map[string]interface{}{
		"incident_title": "",
		"incident_date":  "2026-08-12",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "incident_title", errs[0].Field)
}

func TestValidateValues_UnknownKeyRejected(t *testing.T) {
	errs := ValidateValues(incidentFields(), map[string]interface{}{
		"incident_title": "Forklift near miss",
		"incident_date":  "2026-08-12",
		"surprise":       "value",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "surprise", errs[0].Field)
	assert.Equal(t, "unknown field", errs[0].Message)
}

func TestValidateValues_HiddenRequiredFieldNotEnforced(t *testing.T) {
	fields := models.FieldList{
		{Name: "legacy", Label: "Legacy", Type: models.FieldTypeText, Required: true, Hidden: true},
		{Name: "title", Label: "Title", Type: models.FieldTypeText, Required: true},
	}
	errs := ValidateValues(fields, map[string]interface{}{"title": "ok"})
	assert.Empty(t, errs)

	// A hidden field's key still resolves when historical values carry it.
	errs = ValidateValues(fields, map[string]interface{}{"title": "ok", "legacy": "old"})
	assert.Empty(t, errs)
}

func TestValidateValues_NumberField(t *testing.T) {
	fields := models.FieldList{
		{Name: "count", Label: "Count", Type: models.FieldTypeNumber},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"count": float64(3)}))
	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"count": "42"}))

	errs := ValidateValues(fields, map[string]interface{}{"count": "not a number"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Count must be a number", errs[0].Message)
}

func TestValidateValues_DateFormats(t *testing.T) {
	fields := models.FieldList{
		{Name: "when", Label: "When", Type: models.FieldTypeDate},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"when": "2026-02-28"}))
	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"when": "2026-02-28T10:30:00Z"}))
	assert.Len(t, ValidateValues(fields, map[string]interface{}{"when": "28/02/2026"}), 1)
}

func TestValidateValues_SelectAcceptsDeprecatedOption(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "severity", Label: "Severity", Type: models.FieldTypeSelect,
			Options: []models.FieldOption{
				{Label: "Minor", Value: "minor"},
				{Label: "Legacy", Value: "legacy", Deprecated: true},
			},
		},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"severity": "minor"}))
	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"severity": "legacy"}))
	assert.Len(t, ValidateValues(fields, map[string]interface{}{"severity": "bogus"}), 1)
}

func TestValidateValues_MultiselectMembership(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "factors", Label: "Factors", Type: models.FieldTypeMultiselect,
			Options: []models.FieldOption{
				{Label: "Weather", Value: "weather"},
				{Label: "Training", Value: "training"},
			},
		},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{
		"factors": []interface{}{"weather", "training"},
	}))

	errs := ValidateValues(fields, map[string]interface{}{
		"factors": []interface{}{"weather", "ghosts"},
	})
	assert.Len(t, errs, 1)

	errs = ValidateValues(fields, map[string]interface{}{"factors": "weather"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Factors must be a list of options", errs[0].Message)
}

func TestValidateValues_MinMaxRules(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "people", Label: "People", Type: models.FieldTypeNumber,
			Rules: []models.ValidationRule{
				{Type: models.RuleMin, Value: "1"},
				{Type: models.RuleMax, Value: "100"},
			},
		},
		{
			Name: "title", Label: "Title", Type: models.FieldTypeText,
			Rules: []models.ValidationRule{
				{Type: models.RuleMin, Value: "5", Message: "Title must be at least 5 characters"},
			},
		},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{
		"people": float64(10),
		"title":  "Long enough",
	}))

	errs := ValidateValues(fields, map[string]interface{}{"people": float64(0)})
	assert.Len(t, errs, 1)
	assert.Equal(t, "People is below the minimum of 1", errs[0].Message)

	errs = ValidateValues(fields, map[string]interface{}{"title": "Hey"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Title must be at least 5 characters", errs[0].Message)
}

func TestValidateValues_PatternAndEmailRules(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "badge", Label: "Badge", Type: models.FieldTypeText,
			Rules: []models.ValidationRule{{Type: models.RulePattern, Value: `^EMP-\d{4}$`}},
		},
		{
			Name: "contact", Label: "Contact", Type: models.FieldTypeText,
			Rules: []models.ValidationRule{{Type: models.RuleEmail}},
		},
	}

	assert.Empty(t, ValidateValues(fields, map[string]interface{}{
		"badge":   "EMP-0042",
		"contact": "safety@example.com",
	}))

	errs := ValidateValues(fields, map[string]interface{}{"badge": "0042"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Badge has an invalid format", errs[0].Message)

	errs = ValidateValues(fields, map[string]interface{}{"contact": "not-an-email"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "Contact must be a valid email address", errs[0].Message)
}

func TestValidateValues_BrokenPatternRuleSkipped(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "code", Label: "Code", Type: models.FieldTypeText,
			Rules: []models.ValidationRule{{Type: models.RulePattern, Value: `([unclosed`}},
		},
	}
	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"code": "anything"}))
}

func TestValidateValues_CustomRuleIgnoredServerSide(t *testing.T) {
	fields := models.FieldList{
		{
			Name: "total", Label: "Total", Type: models.FieldTypeNumber,
			Rules: []models.ValidationRule{{Type: models.RuleCustom, Value: "total > people"}},
		},
	}
	assert.Empty(t, ValidateValues(fields, map[string]interface{}{"total": float64(1)}))
}
