package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-itemform/pkg/model"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel removes any markup from a label and returns plain text.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := labelSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func sanitizeDescriptor(desc model.FieldDescriptor) model.FieldDescriptor {
	desc.Name = SanitizeLabel(desc.Name)
	for idx := range desc.AllowedValues {
		desc.AllowedValues[idx].Label = SanitizeLabel(desc.AllowedValues[idx].Label)
	}
	return desc
}
