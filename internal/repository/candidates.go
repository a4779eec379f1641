// internal/repository/candidates.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/lib/pq"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

const candidateColumns = `id, skills, experience_years, location, expected_salary_min, expected_salary_max`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*models.CandidateProfile, error) {
	var (
		c          models.CandidateProfile
		skills     []byte
		years      sql.NullInt64
		location   sql.NullString
		salaryLow  sql.NullFloat64
		salaryHigh sql.NullFloat64
	)
	if err := row.Scan(&c.ID, &skills, &years, &location, &salaryLow, &salaryHigh); err != nil {
		return nil, err
	}

	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return nil, err
		}
	}
	if c.Skills == nil {
		c.Skills = []models.CandidateSkill{}
	}
	if years.Valid {
		c.ExperienceYears = models.IntPtr(int(years.Int64))
	}
	c.Location = location.String
	if salaryLow.Valid || salaryHigh.Valid {
		c.ExpectedSalary = &models.SalaryRange{Min: salaryLow.Float64, Max: salaryHigh.Float64}
	}
	return &c, nil
}

// GetCandidate loads one candidate profile, cache first.
func (r *Repository) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	key := candidateKeyPrefix + id
	var cached models.CandidateProfile
	if r.fromCache(ctx, "candidate", key, &cached) {
		return &cached, nil
	}

	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewCandidateNotFoundError(id)
	}
	if err != nil {
		return nil, queryError(ctx, "candidate_lookup", err)
	}

	r.toCache(ctx, key, c)
	return c, nil
}

// GetCandidates loads the given candidates in id order. Ids with no row
// are returned in missing rather than failing the whole batch.
func (r *Repository) GetCandidates(ctx context.Context, ids []string) (found []models.CandidateProfile, missing []string, err error) {
	byID := make(map[string]models.CandidateProfile, len(ids))
	var toLoad []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		var cached models.CandidateProfile
		if r.fromCache(ctx, "candidate", candidateKeyPrefix+id, &cached) {
			byID[id] = cached
			continue
		}
		toLoad = append(toLoad, id)
	}

	if len(toLoad) > 0 {
		rows, err := r.db.Query(ctx,
			`SELECT `+candidateColumns+` FROM candidates WHERE id = ANY($1)`, pq.Array(toLoad))
		if err != nil {
			return nil, nil, queryError(ctx, "candidate_batch", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCandidate(rows)
			if err != nil {
				return nil, nil, queryError(ctx, "candidate_batch", err)
			}
			byID[c.ID] = *c
			r.toCache(ctx, candidateKeyPrefix+c.ID, c)
		}
		if err := rows.Err(); err != nil {
			return nil, nil, queryError(ctx, "candidate_batch", err)
		}
	}

	found = make([]models.CandidateProfile, 0, len(byID))
	for _, id := range ids {
		if !seen[id] {
			continue
		}
		seen[id] = false
		if c, ok := byID[id]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}
