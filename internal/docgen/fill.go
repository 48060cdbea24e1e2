package docgen

import (
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Substitute replaces every {{name}} token in body with the matching value.
// Tokens whose value is absent or empty render as the literal [name], which
// keeps unanswered fields visible in previews and generated documents.
//
// The transform is pure and idempotent: the replacement text never contains
// a placeholder token, so running it again is a no-op.
func Substitute(body string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		if v, ok := values[name]; ok && v != "" {
			return v
		}
		return "[" + name + "]"
	})
}

// MergeCheckboxValues folds checkbox answers into the value map as localized
// yes/no strings, the shape the submission record and the PDF expect. The
// input map is not modified.
func MergeCheckboxValues(values map[string]string, checkboxes map[string]bool, lang string) map[string]string {
	merged := make(map[string]string, len(values)+len(checkboxes))
	for k, v := range values {
		merged[k] = v
	}
	for name, checked := range checkboxes {
		merged[name] = YesNo(lang, checked)
	}
	return merged
}
