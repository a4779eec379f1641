// internal/scoring/scorer.go

// Package scoring computes how well a candidate fits a job requisition.
//
// A Scorer is immutable after construction. Score is pure: it performs no
// I/O, never fails and may be called from any number of goroutines.
package scoring

import (
	"math"

	"jobmatch-workers/internal/models"
)

type Scorer struct {
	params Params
}

// New returns a Scorer for the given params.
func New(params Params) (*Scorer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{params: params}, nil
}

var defaultScorer = &Scorer{params: DefaultParams()}

// Default returns the Scorer built from DefaultParams.
func Default() *Scorer {
	return defaultScorer
}

// Score rates candidate against job with the default params.
func Score(candidate *models.CandidateProfile, job *models.JobRequirement) models.MatchResult {
	return defaultScorer.Score(candidate, job)
}

func (s *Scorer) Params() Params {
	return s.params
}

// Score rates candidate against job. Nil inputs are treated as records
// with every optional field absent.
func (s *Scorer) Score(candidate *models.CandidateProfile, job *models.JobRequirement) models.MatchResult {
	if candidate == nil {
		candidate = &models.CandidateProfile{}
	}
	if job == nil {
		job = &models.JobRequirement{}
	}

	skills := matchSkills(candidate.Skills, job.RequiredSkills)
	experience := s.experienceScore(candidate.ExperienceYears, job.ExperienceMin, job.ExperienceMax)
	location := s.locationScore(candidate.Location, job.Location)
	salary := s.salaryScore(candidate.ExpectedSalary, job.SalaryRange)

	result := models.MatchResult{
		SkillsMatch:     skills.score,
		ExperienceMatch: experience,
		LocationMatch:   location.score,
		SalaryMatch:     salary,
		MatchedSkills:   skills.matched,
		MissingSkills:   skills.missing,
	}
	result.OverallScore = s.overall(result)
	result.Notes = buildNotes(&result, candidate, job, skills.required, location.kind)

	return result
}

func (s *Scorer) overall(r models.MatchResult) int {
	w := s.params.Weights
	total := w.Skills*float64(r.SkillsMatch) +
		w.Experience*float64(r.ExperienceMatch) +
		w.Location*float64(r.LocationMatch) +
		w.Salary*float64(r.SalaryMatch)
	return clamp(int(math.Round(total)))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// degrade maps a penalty fraction to a score. Any positive fraction lands
// strictly below 100.
func degrade(fraction float64) int {
	if fraction <= 0 {
		return 100
	}
	return clamp(int(math.Floor(100 * (1 - fraction))))
}
