// internal/models/job.go
package models

// LocationRemote voids the location constraint of a job.
const LocationRemote = "Remote"

// JobRequirement is the requisition side of a match.
type JobRequirement struct {
	ID             string       `json:"id,omitempty"`
	Title          string       `json:"title,omitempty"`
	RecruiterID    string       `json:"recruiterId,omitempty"`
	RequiredSkills []string     `json:"requiredSkills"`
	ExperienceMin  *int         `json:"experienceMin,omitempty"`
	ExperienceMax  *int         `json:"experienceMax,omitempty"`
	Location       string       `json:"location,omitempty"`
	SalaryRange    *SalaryRange `json:"salaryRange,omitempty"`
}
