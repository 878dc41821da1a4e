package engine

import (
	"fmt"
	"strings"
)

// FieldError describes one request field that failed validation
type FieldError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Rule    string   `json:"rule"`
	Allowed []string `json:"allowed,omitempty"`
}

func (f FieldError) String() string {
	if f.Rule == "required" {
		return fmt.Sprintf("%s is required", f.Field)
	}
	if len(f.Allowed) > 0 {
		return fmt.Sprintf("%s %q is not one of [%s]", f.Field, f.Value, strings.Join(f.Allowed, ", "))
	}
	return fmt.Sprintf("%s %q failed %s", f.Field, f.Value, f.Rule)
}

// ValidationError lists every invalid field of a content request
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid content request: " + strings.Join(parts, "; ")
}

// FieldNames returns the names of the invalid fields in report order
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// RegistryLookupError is returned when a template catalog does not cover the
// full platform x persuasion level matrix, or when a lookup misses.
type RegistryLookupError struct {
	Missing []Key
	Reason  string
}

func (e *RegistryLookupError) Error() string {
	keys := make([]string, 0, len(e.Missing))
	for _, k := range e.Missing {
		keys = append(keys, k.String())
	}
	msg := "template registry: no template for " + strings.Join(keys, ", ")
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}
