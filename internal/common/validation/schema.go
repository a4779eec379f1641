// internal/common/validation/schema.go

// Package validation checks job variables against the input schemas
// published in the activity registry.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/pkg/registry"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, e := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return messages
}

// Err returns nil for a valid result, otherwise an INVALID_MATCH_INPUT error.
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return errors.NewInvalidMatchInputError(strings.Join(vr.GetErrorMessages(), "; ")).
		WithMetadata("validationErrors", vr.Errors)
}

// Validator holds one compiled schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every activity input schema in reg. Activities
// without a schema accept any object.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// Validate checks raw JSON variables for taskType.
func (v *Validator) Validate(taskType string, variables []byte) *ValidationResult {
	schema, ok := v.schemas[taskType]
	if !ok {
		if json.Valid(variables) {
			return &ValidationResult{Valid: true}
		}
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: "variables are not valid JSON", Code: "INVALID_JSON"}}}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(variables))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_JSON"}}}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	out := &ValidationResult{Errors: make([]ValidationError, 0, len(result.Errors()))}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out
}

// Has reports whether a schema is registered for taskType.
func (v *Validator) Has(taskType string) bool {
	_, ok := v.schemas[taskType]
	return ok
}
