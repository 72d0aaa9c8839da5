package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeFile        FieldType = "file"
)

type RuleType string

const (
	RuleRequired RuleType = "required"
	RuleMin      RuleType = "min"
	RuleMax      RuleType = "max"
	RulePattern  RuleType = "pattern"
	RuleEmail    RuleType = "email"
	RuleCustom   RuleType = "custom"
)

// FieldOption is one selectable choice of a select/multiselect/radio field.
// Deprecated options are hidden from new entries but stay valid when they
// appear in historical submission values.
type FieldOption struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type ValidationRule struct {
	Type    RuleType `json:"type"`
	Value   string   `json:"value,omitempty"`
	Message string   `json:"message,omitempty"`
}

// FormField is one input definition inside a template's field list.
// Fields are never deleted from a live template; they are retired via
// Hidden/Deprecated so historical submissions keep resolving their keys.
type FormField struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Name        string           `json:"name"`
	Required    bool             `json:"required,omitempty"`
	Order       int              `json:"order"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelpText    string           `json:"helpText,omitempty"`
	Options     []FieldOption    `json:"options,omitempty"`
	Rules       []ValidationRule `json:"rules,omitempty"`
	Hidden      bool             `json:"hidden,omitempty"`
	Deprecated  bool             `json:"deprecated,omitempty"`
}

// ActiveOptions filters out deprecated options (for rendering new entries).
func (f FormField) ActiveOptions() []FieldOption {
	out := make([]FieldOption, 0, len(f.Options))
	for _, o := range f.Options {
		if !o.Deprecated {
			out = append(out, o)
		}
	}
	return out
}

// HasOptionValue reports whether v is a known option value. Deprecated
// options count: historical submissions may still carry them.
func (f FormField) HasOptionValue(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// IsRequired is true when the required flag is set or a required rule exists.
func (f FormField) IsRequired() bool {
	if f.Required {
		return true
	}
	for _, r := range f.Rules {
		if r.Type == RuleRequired {
			return true
		}
	}
	return false
}

// FieldList is the JSON column type holding a template's ordered fields.
type FieldList []FormField

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldList{}
	}
	return json.Marshal(l)
}

func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = FieldList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported field list column type %T", value)
	}
	return json.Unmarshal(data, l)
}

// Visible returns the non-hidden fields sorted by render order.
func (l FieldList) Visible() []FormField {
	out := make([]FormField, 0, len(l))
	for _, f := range l {
		if !f.Hidden {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (l FieldList) ByName(name string) (FormField, bool) {
	for _, f := range l {
		if f.Name == name {
			return f, true
		}
	}
	return FormField{}, false
}

// DeepCopy clones the list with fresh field ids. Option and rule slices are
// copied so mutating the clone never touches the source.
func (l FieldList) DeepCopy() FieldList {
	out := make(FieldList, len(l))
	for i, f := range l {
		c := f
		c.ID = uuid.NewString()
		if f.Options != nil {
			c.Options = make([]FieldOption, len(f.Options))
			copy(c.Options, f.Options)
		}
		if f.Rules != nil {
			c.Rules = make([]ValidationRule, len(f.Rules))
			copy(c.Rules, f.Rules)
		}
		out[i] = c
	}
	return out
}

var ErrDuplicateFieldName = errors.New("duplicate field name in template")

// Normalize prepares a field list for persistence: assigns ids and derived
// names where missing, fills gaps in order, and rejects duplicate names
// (names key submission values, so they must be unique per template).
func (l FieldList) Normalize() (FieldList, error) {
	out := make(FieldList, len(l))
	seen := make(map[string]struct{}, len(l))
	for i, f := range l {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.Name == "" {
			f.Name = DeriveFieldName(f.Label)
		}
		if f.Order == 0 {
			f.Order = i + 1
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFieldName, f.Name)
		}
		seen[f.Name] = struct{}{}
		out[i] = f
	}
	return out, nil
}

// DeriveFieldName turns a human label into the snake_case key used for
// submission values, e.g. "Incident Title" -> "incident_title".
func DeriveFieldName(label string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
