package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/response"
)

var validate = validator.New()

// ValidateValues checks a submission's values map against a template's
// field list. Hidden and deprecated fields still resolve their keys (data
// preservation contract) but are not required; unknown keys are rejected.
func ValidateValues(fields models.FieldList, values map[string]interface{}) []response.FieldErrorItem {
	var errs []response.FieldErrorItem

	byName := make(map[string]models.FormField, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	for key := range values {
		if _, ok := byName[key]; !ok {
			errs = append(errs, response.FieldErrorItem{
				Field:   key,
				Message: "unknown field",
			})
		}
	}

	for _, f := range fields {
		value, present := values[f.Name]
		empty := isEmptyValue(value)

		if f.IsRequired() && !f.Hidden && !f.Deprecated && (!present || empty) {
			errs = append(errs, response.FieldErrorItem{
				Field:   f.Name,
				Message: requiredMessage(f),
			})
			continue
		}
		if !present || empty {
			continue
		}

		errs = append(errs, validateFieldValue(f, value)...)
	}

	return errs
}

func validateFieldValue(f models.FormField, value interface{}) []response.FieldErrorItem {
	var errs []response.FieldErrorItem
	fail := func(msg string) {
		errs = append(errs, response.FieldErrorItem{Field: f.Name, Message: msg})
	}

	switch f.Type {
	case models.FieldTypeNumber:
		if _, ok := asNumber(value); !ok {
			fail(fmt.Sprintf("%s must be a number", f.Label))
			return errs
		}
	case models.FieldTypeDate:
		s, ok := value.(string)
		if !ok || !isValidDate(s) {
			fail(fmt.Sprintf("%s must be a valid date", f.Label))
			return errs
		}
	case models.FieldTypeSelect, models.FieldTypeRadio:
		s, ok := value.(string)
		if !ok || !f.HasOptionValue(s) {
			fail(fmt.Sprintf("%s has an invalid option", f.Label))
			return errs
		}
	case models.FieldTypeMultiselect, models.FieldTypeCheckbox:
		items, ok := asStringList(value)
		if !ok {
			fail(fmt.Sprintf("%s must be a list of options", f.Label))
			return errs
		}
		for _, item := range items {
			if !f.HasOptionValue(item) {
				fail(fmt.Sprintf("%s has an invalid option: %s", f.Label, item))
			}
		}
		if len(errs) > 0 {
			return errs
		}
	}

	for _, rule := range f.Rules {
		if msg := applyRule(f, rule, value); msg != "" {
			fail(msg)
		}
	}
	return errs
}

func applyRule(f models.FormField, rule models.ValidationRule, value interface{}) string {
	message := func(fallback string) string {
		if rule.Message != "" {
			return rule.Message
		}
		return fallback
	}

	switch rule.Type {
	case models.RuleRequired:
		// Handled up front by IsRequired.
		return ""
	case models.RuleMin, models.RuleMax:
		bound, err := strconv.ParseFloat(rule.Value, 64)
		if err != nil {
			return ""
		}
		var actual float64
		if f.Type == models.FieldTypeNumber {
			n, ok := asNumber(value)
			if !ok {
				return ""
			}
			actual = n
		} else {
			s, ok := value.(string)
			if !ok {
				return ""
			}
			actual = float64(len([]rune(s)))
		}
		if rule.Type == models.RuleMin && actual < bound {
			return message(fmt.Sprintf("%s is below the minimum of %s", f.Label, rule.Value))
		}
		if rule.Type == models.RuleMax && actual > bound {
			return message(fmt.Sprintf("%s exceeds the maximum of %s", f.Label, rule.Value))
		}
	case models.RulePattern:
		s, ok := value.(string)
		if !ok {
			return message(fmt.Sprintf("%s has an invalid format", f.Label))
		}
		re, err := regexp.Compile(rule.Value)
		if err != nil {
			// Misconfigured rule; do not block the submitter.
			return ""
		}
		if !re.MatchString(s) {
			return message(fmt.Sprintf("%s has an invalid format", f.Label))
		}
	case models.RuleEmail:
		s, ok := value.(string)
		if !ok || validate.Var(s, "email") != nil {
			return message(fmt.Sprintf("%s must be a valid email address", f.Label))
		}
	case models.RuleCustom:
		// Custom rules are evaluated client side only; the server stores
		// them with the template but has no expression engine to run.
		return ""
	}
	return ""
}

func requiredMessage(f models.FormField) string {
	for _, r := range f.Rules {
		if r.Type == models.RuleRequired && r.Message != "" {
			return r.Message
		}
	}
	return fmt.Sprintf("%s is required", f.Label)
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// asNumber accepts float64 (JSON numbers), json.Number and numeric strings.
func asNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	}
	return 0, false
}

func asStringList(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func isValidDate(s string) bool {
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	return false
}
