package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		values   map[string]string
		expected string
	}{
		{
			name:     "replaces present values",
			body:     "Hello {{company_name}}, contact: {{email}}",
			values:   map[string]string{"company_name": "Acme", "email": "a@acme.com"},
			expected: "Hello Acme, contact: a@acme.com",
		},
		{
			name:     "absent value renders bracketed token",
			body:     "Hello {{company_name}}, contact: {{email}}",
			values:   map[string]string{"company_name": "Acme"},
			expected: "Hello Acme, contact: [email]",
		},
		{
			name:     "empty value renders bracketed token",
			body:     "Contact: {{email}}",
			values:   map[string]string{"email": ""},
			expected: "Contact: [email]",
		},
		{
			name:     "every occurrence is replaced",
			body:     "{{name}} and {{name}} and {{name}}",
			values:   map[string]string{"name": "x"},
			expected: "x and x and x",
		},
		{
			name:     "token with inner whitespace",
			body:     "Hello {{ company_name }}",
			values:   map[string]string{"company_name": "Acme"},
			expected: "Hello Acme",
		},
		{
			name:     "body without tokens passes through",
			body:     "plain text",
			values:   map[string]string{"email": "a@b.c"},
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Substitute(tt.body, tt.values))
		})
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	body := "Hello {{company_name}}, contact: {{email}}, volume: {{volume}}"
	values := map[string]string{"company_name": "Acme", "volume": "120t"}

	once := Substitute(body, values)
	twice := Substitute(once, values)
	assert.Equal(t, once, twice)
}

func TestMergeCheckboxValues(t *testing.T) {
	values := map[string]string{"company_name": "Acme"}
	checkboxes := map[string]bool{"accepts_terms": true, "wants_newsletter": false}

	tests := []struct {
		lang string
		yes  string
		no   string
	}{
		{"pt", "Sim", "Não"},
		{"en", "Yes", "No"},
		{"es", "Sí", "No"},
		{"zh", "是", "否"},
		{"it", "Sì", "No"},
		{"fr", "Yes", "No"}, // unknown language falls back to English
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			merged := MergeCheckboxValues(values, checkboxes, tt.lang)
			assert.Equal(t, "Acme", merged["company_name"])
			assert.Equal(t, tt.yes, merged["accepts_terms"])
			assert.Equal(t, tt.no, merged["wants_newsletter"])
		})
	}

	// Input map stays untouched.
	assert.NotContains(t, values, "accepts_terms")
}

func TestTemplate_FormFields(t *testing.T) {
	custom := Template{Fields: []Field{{Name: "volume", Label: "Volume", Type: "text"}}}
	assert.Equal(t, custom.Fields, custom.FormFields())

	empty := Template{}
	fields := empty.FormFields()
	assert.Len(t, fields, 6)
	assert.Equal(t, "company_name", fields[0].Name)
}

func TestTemplate_BodyFallback(t *testing.T) {
	tpl := Template{Bodies: map[string]string{"en": "english", "pt": "portuguese"}}
	assert.Equal(t, "portuguese", tpl.Body("pt"))
	assert.Equal(t, "english", tpl.Body("zh"))

	ptOnly := Template{Bodies: map[string]string{"pt": "portuguese"}}
	assert.Equal(t, "portuguese", ptOnly.Body("it"))

	assert.Equal(t, "", Template{}.Body("en"))
}
