// internal/repository/jobs.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

// GetJob loads a job requirement, cache first.
func (r *Repository) GetJob(ctx context.Context, id string) (*models.JobRequirement, error) {
	key := jobKeyPrefix + id
	var cached models.JobRequirement
	if r.fromCache(ctx, "job", key, &cached) {
		return &cached, nil
	}

	var (
		j           models.JobRequirement
		recruiterID sql.NullString
		skills      []byte
		expMin      sql.NullInt64
		expMax      sql.NullInt64
		location    sql.NullString
		salaryMin   sql.NullFloat64
		salaryMax   sql.NullFloat64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, title, recruiter_id, required_skills, experience_min, experience_max,
		       location, salary_min, salary_max
		FROM jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Title, &recruiterID, &skills, &expMin, &expMax, &location, &salaryMin, &salaryMax)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewJobNotFoundError(id)
	}
	if err != nil {
		return nil, queryError(ctx, "job_lookup", err)
	}

	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &j.RequiredSkills); err != nil {
			return nil, queryError(ctx, "job_lookup", err)
		}
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	j.RecruiterID = recruiterID.String
	j.Location = location.String
	if expMin.Valid {
		j.ExperienceMin = models.IntPtr(int(expMin.Int64))
	}
	if expMax.Valid {
		j.ExperienceMax = models.IntPtr(int(expMax.Int64))
	}
	if salaryMin.Valid || salaryMax.Valid {
		j.SalaryRange = &models.SalaryRange{Min: salaryMin.Float64, Max: salaryMax.Float64}
	}

	r.toCache(ctx, key, &j)
	return &j, nil
}

// GetRecruiterContact returns the notification contact for a recruiter.
// An unknown recruiter yields a nil contact and no error. Contacts are
// not cached.
func (r *Repository) GetRecruiterContact(ctx context.Context, recruiterID string) (*models.RecruiterContact, error) {
	var (
		c     models.RecruiterContact
		phone sql.NullString
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone FROM recruiters WHERE id = $1`, recruiterID).
		Scan(&c.ID, &c.Name, &c.Email, &phone)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryError(ctx, "recruiter_lookup", err)
	}
	c.Phone = phone.String
	return &c, nil
}
