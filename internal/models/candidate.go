// internal/models/candidate.go
package models

// Proficiency levels a candidate can attach to a skill. Display only.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

type CandidateSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// CandidateProfile is the job seeker side of a match. Nil pointers mean
// the value was never provided.
type CandidateProfile struct {
	ID              string           `json:"id,omitempty"`
	Skills          []CandidateSkill `json:"skills"`
	ExperienceYears *int             `json:"experienceYears,omitempty"`
	Location        string           `json:"location,omitempty"`
	ExpectedSalary  *SalaryRange     `json:"expectedSalary,omitempty"`
}

// SkillNames returns the raw skill names in profile order.
func (c *CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return names
}

// SalaryRange is a numeric range. A single figure is stored with only one
// bound set or with Min == Max. Zero means the bound is not set.
type SalaryRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// IsEmpty reports whether neither bound carries information.
func (r *SalaryRange) IsEmpty() bool {
	return r == nil || (r.Min <= 0 && r.Max <= 0)
}

// Floor returns the lowest figure in the range.
func (r *SalaryRange) Floor() float64 {
	switch {
	case r.Min > 0 && r.Max > 0 && r.Max < r.Min:
		return r.Max
	case r.Min > 0:
		return r.Min
	default:
		return r.Max
	}
}

// IntPtr is a small helper for building optional integer fields.
func IntPtr(v int) *int {
	return &v
}
