// Package docgen fills document templates with form answers, captures
// signatures and renders the resulting document as a PDF.
package docgen

import (
	"time"

	"github.com/google/uuid"
)

// Languages supported by template bodies, in display order.
var Languages = []string{"pt", "en", "es", "zh", "it"}

// Field describes one entry of a template's dynamic form.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"` // text, email, tel, textarea, select, checkbox, file
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// Template is a named document skeleton with one body text per supported
// language. Bodies contain {{field_name}} tokens that refer to field names.
type Template struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Bodies    map[string]string `json:"bodies"`
	Fields    []Field           `json:"fields"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Body returns the body text for a language, falling back to English and
// then to any non-empty localization.
func (t Template) Body(lang string) string {
	if body := t.Bodies[lang]; body != "" {
		return body
	}
	if body := t.Bodies["en"]; body != "" {
		return body
	}
	for _, l := range Languages {
		if body := t.Bodies[l]; body != "" {
			return body
		}
	}
	return ""
}

// FormFields returns the fields to render for a template: its own field list
// when present, otherwise the generic company-identification set.
func (t Template) FormFields() []Field {
	if len(t.Fields) > 0 {
		return t.Fields
	}
	return DefaultFields()
}

// DefaultFields is the fallback form used by templates that carry no field
// list of their own.
func DefaultFields() []Field {
	return []Field{
		{Name: "company_name", Label: "Company Name", Type: "text", Required: true},
		{Name: "contact_name", Label: "Contact Name", Type: "text", Required: true},
		{Name: "email", Label: "Email", Type: "email", Required: true},
		{Name: "phone", Label: "Phone", Type: "tel"},
		{Name: "country", Label: "Country", Type: "text"},
		{Name: "company_address", Label: "Company Address", Type: "textarea"},
	}
}

var yesNo = map[string][2]string{
	"pt": {"Sim", "Não"},
	"en": {"Yes", "No"},
	"es": {"Sí", "No"},
	"zh": {"是", "否"},
	"it": {"Sì", "No"},
}

// YesNo returns the localized yes/no strings used when checkbox answers are
// folded into the value map at submit time. Unknown languages get English.
func YesNo(lang string, checked bool) string {
	pair, ok := yesNo[lang]
	if !ok {
		pair = yesNo["en"]
	}
	if checked {
		return pair[0]
	}
	return pair[1]
}
