// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/pkg/registry"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(registry.Default())
	require.NoError(t, err)
	return v
}

func TestValidate_ScoreInput(t *testing.T) {
	v := newValidator(t)
	const taskType = "calculate-job-match-score"
	require.True(t, v.Has(taskType))

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"ids only", `{"candidateId":"c-1","jobId":"j-1"}`, true},
		{"inline profiles", `{"candidateProfile":{"skills":[{"name":"Go"}],"experienceYears":4},"jobRequirement":{"requiredSkills":["Go"],"location":"Remote"}}`, true},
		{"null experience", `{"candidateId":"c-1","jobRequirement":{"experienceMin":null}}`, true},
		{"missing job", `{"candidateId":"c-1"}`, false},
		{"empty candidate id", `{"candidateId":"","jobId":"j-1"}`, false},
		{"skill without name", `{"candidateProfile":{"skills":[{"proficiency":"Expert"}]},"jobId":"j-1"}`, false},
		{"unknown proficiency", `{"candidateProfile":{"skills":[{"name":"Go","proficiency":"Guru"}]},"jobId":"j-1"}`, false},
		{"negative salary", `{"candidateId":"c-1","jobRequirement":{"salaryRange":{"min":-1}}}`, false},
		{"not json", `{"candidateId":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(taskType, []byte(tt.input))
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.valid {
				assert.NoError(t, result.Err())
			} else {
				assert.NotEmpty(t, result.Errors)
				assert.True(t, errors.HasCode(result.Err(), errors.ErrCodeInvalidMatchInput))
			}
		})
	}
}

func TestValidate_RecordInput(t *testing.T) {
	v := newValidator(t)

	result := v.Validate("record-match-result", []byte(`{"applicationId":"a-1","overallScore":140}`))
	require.False(t, result.Valid)
	assert.Equal(t, "overallScore", result.Errors[0].Field)

	result = v.Validate("record-match-result", []byte(`{"applicationId":"a-1","overallScore":72,"matchedSkills":["Go"]}`))
	assert.True(t, result.Valid)
}

func TestValidate_UnknownTaskType(t *testing.T) {
	v := newValidator(t)
	assert.True(t, v.Validate("something-else", []byte(`{"a":1}`)).Valid)
	assert.False(t, v.Validate("something-else", []byte(`{`)).Valid)
}

func TestNewValidator_BadSchema(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{{
		TaskType:    "broken",
		InputSchema: map[string]interface{}{"type": 42},
	}}}
	_, err := NewValidator(reg)
	assert.Error(t, err)
}
