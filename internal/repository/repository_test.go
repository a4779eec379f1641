// internal/repository/repository_test.go
package repository

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/models"
)

var candidateCols = []string{"id", "skills", "experience_years", "location", "expected_salary_min", "expected_salary_max"}

func newMockRepo(t *testing.T, opts Options) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	opts.DB = database.NewPostgresFromDB(db)
	opts.Logger = logger.NewTestLogger(t)
	return New(opts), mock
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestGetCandidate_LoadsAndCaches(t *testing.T) {
	mr, cache := newMiniredis(t)
	repo, mock := newMockRepo(t, Options{Cache: cache, CacheTTL: time.Minute})

	mock.ExpectQuery(`SELECT .* FROM candidates WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow("c-1", []byte(`[{"name":"Go","proficiency":"Expert"},{"name":"SQL"}]`), 5, "Berlin", 70000.0, 90000.0))

	c, err := repo.GetCandidate(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, []string{"Go", "SQL"}, c.SkillNames())
	require.NotNil(t, c.ExperienceYears)
	assert.Equal(t, 5, *c.ExperienceYears)
	assert.Equal(t, "Berlin", c.Location)
	assert.Equal(t, &models.SalaryRange{Min: 70000, Max: 90000}, c.ExpectedSalary)

	assert.True(t, mr.Exists("candidate:profile:c-1"))
	assert.Equal(t, time.Minute, mr.TTL("candidate:profile:c-1"))

	// second read is served by the cache; no further query is expected
	again, err := repo.GetCandidate(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, again)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCandidate_NullColumns(t *testing.T) {
	repo, mock := newMockRepo(t, Options{})

	mock.ExpectQuery(`FROM candidates`).
		WithArgs("c-2").
		WillReturnRows(sqlmock.NewRows(candidateCols).AddRow("c-2", nil, nil, nil, nil, nil))

	c, err := repo.GetCandidate(context.Background(), "c-2")
	require.NoError(t, err)
	assert.NotNil(t, c.Skills)
	assert.Empty(t, c.Skills)
	assert.Nil(t, c.ExperienceYears)
	assert.Empty(t, c.Location)
	assert.Nil(t, c.ExpectedSalary)
}

func TestGetCandidate_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t, Options{})
		mock.ExpectQuery(`FROM candidates`).WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(candidateCols))

		_, err := repo.GetCandidate(context.Background(), "nope")
		assert.True(t, errors.HasCode(err, errors.ErrCodeCandidateNotFound))
	})

	t.Run("query failure", func(t *testing.T) {
		repo, mock := newMockRepo(t, Options{})
		mock.ExpectQuery(`FROM candidates`).WithArgs("c-1").
			WillReturnError(stderrors.New("connection reset"))

		_, err := repo.GetCandidate(context.Background(), "c-1")
		assert.True(t, errors.HasCode(err, errors.ErrCodeQueryExecutionFailed))
	})

	t.Run("deadline", func(t *testing.T) {
		repo, _ := newMockRepo(t, Options{})
		ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
		defer cancel()

		_, err := repo.GetCandidate(ctx, "c-1")
		assert.True(t, errors.HasCode(err, errors.ErrCodeQueryTimeout))
	})
}

func TestGetCandidates_OrderAndMissing(t *testing.T) {
	repo, mock := newMockRepo(t, Options{})

	mock.ExpectQuery(`FROM candidates WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow("c-3", []byte(`[]`), 1, "Oslo", nil, nil).
			AddRow("c-1", []byte(`[{"name":"Go"}]`), 4, "Berlin", nil, nil))

	found, missing, err := repo.GetCandidates(context.Background(), []string{"c-1", "c-2", "c-3", "c-1"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "c-1", found[0].ID)
	assert.Equal(t, "c-3", found[1].ID)
	assert.Equal(t, []string{"c-2"}, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCandidates_UsesCacheForHits(t *testing.T) {
	_, cache := newMiniredis(t)
	repo, mock := newMockRepo(t, Options{Cache: cache, CacheTTL: time.Minute})

	require.NoError(t, cache.SetJSON(context.Background(), "candidate:profile:c-1",
		models.CandidateProfile{ID: "c-1", Location: "Paris"}, time.Minute))

	mock.ExpectQuery(`ANY`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(candidateCols).AddRow("c-2", []byte(`[]`), nil, nil, nil, nil))

	found, missing, err := repo.GetCandidates(context.Background(), []string{"c-1", "c-2"})
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, found, 2)
	assert.Equal(t, "Paris", found[0].Location)
	assert.Equal(t, "c-2", found[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJob(t *testing.T) {
	repo, mock := newMockRepo(t, Options{})

	mock.ExpectQuery(`FROM jobs WHERE id = \$1`).
		WithArgs("j-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "recruiter_id", "required_skills", "experience_min", "experience_max",
			"location", "salary_min", "salary_max",
		}).AddRow("j-1", "Backend Engineer", "r-9", []byte(`["Go","Postgres"]`), 3, nil, "Remote", nil, 80000.0))

	j, err := repo.GetJob(context.Background(), "j-1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "r-9", j.RecruiterID)
	assert.Equal(t, []string{"Go", "Postgres"}, j.RequiredSkills)
	require.NotNil(t, j.ExperienceMin)
	assert.Equal(t, 3, *j.ExperienceMin)
	assert.Nil(t, j.ExperienceMax)
	assert.Equal(t, &models.SalaryRange{Max: 80000}, j.SalaryRange)
}

func TestGetJob_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t, Options{})
	mock.ExpectQuery(`FROM jobs`).WithArgs("j-x").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetJob(context.Background(), "j-x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
}

func TestGetJob_CacheErrorFallsBackToDatabase(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	repo, mock := newMockRepo(t, Options{Cache: database.NewRedisFromClient(rdb), CacheTTL: time.Minute})

	before := testutil.ToFloat64(metrics.ProfileCacheRequests.WithLabelValues("job", "error"))
	redisMock.ExpectGet("job:requirement:j-1").SetErr(stderrors.New("redis down"))

	mock.ExpectQuery(`FROM jobs`).WithArgs("j-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "recruiter_id", "required_skills", "experience_min", "experience_max",
			"location", "salary_min", "salary_max",
		}).AddRow("j-1", "SRE", nil, nil, nil, nil, nil, nil, nil))

	j, err := repo.GetJob(context.Background(), "j-1")
	require.NoError(t, err)
	assert.Equal(t, "SRE", j.Title)
	assert.Empty(t, j.RequiredSkills)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProfileCacheRequests.WithLabelValues("job", "error")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecruiterContact(t *testing.T) {
	repo, mock := newMockRepo(t, Options{})

	mock.ExpectQuery(`FROM recruiters`).WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow("r-1", "Ada", "ada@example.com", nil))
	mock.ExpectQuery(`FROM recruiters`).WithArgs("r-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}))

	c, err := repo.GetRecruiterContact(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Empty(t, c.Phone)

	c, err = repo.GetRecruiterContact(context.Background(), "r-2")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestInvalidate(t *testing.T) {
	mr, cache := newMiniredis(t)
	repo := New(Options{Cache: cache, CacheTTL: time.Minute})

	require.NoError(t, mr.Set("candidate:profile:c-1", "{}"))
	require.NoError(t, mr.Set("job:requirement:j-1", "{}"))

	require.NoError(t, repo.Invalidate(context.Background(), []string{"c-1"}, []string{"j-1"}))
	assert.False(t, mr.Exists("candidate:profile:c-1"))
	assert.False(t, mr.Exists("job:requirement:j-1"))
}

func TestBuildCandidateQuery(t *testing.T) {
	q := BuildCandidateQuery(&models.JobRequirement{
		RequiredSkills: []string{"Go", " ", "Kafka"},
		Location:       "Berlin",
	}, 50)
	assert.Equal(t, 50, q["size"])
	should := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["should"].([]interface{})
	assert.Len(t, should, 3)

	remote := BuildCandidateQuery(&models.JobRequirement{Location: "remote"}, 10)
	assert.Contains(t, remote["query"], "match_all")
}

func TestSearchCandidates(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":3},"hits":[
			{"_id":"c-1","_score":3.1,"_source":{"id":"c-1","skills":[{"name":"Go"}],"location":"Berlin"}},
			{"_id":"c-2","_score":2.0,"_source":{"skills":[{"name":"Kafka"}],"experienceYears":2}},
			{"_id":"c-3","_score":1.0,"_source":"broken"}
		]}}`))
	}))
	defer srv.Close()

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	repo := New(Options{Search: es, Index: "talent", SearchSize: 25, Logger: logger.NewTestLogger(t)})
	require.True(t, repo.SearchEnabled())

	found, err := repo.SearchCandidates(context.Background(), &models.JobRequirement{
		ID:             "j-1",
		RequiredSkills: []string{"Go", "Kafka"},
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "c-1", found[0].ID)
	assert.Equal(t, "c-2", found[1].ID)
	require.NotNil(t, found[1].ExperienceYears)
	assert.Contains(t, gotBody, "skills.name")
	assert.Contains(t, gotBody, `"size":25`)
}

func TestSearchCandidates_Failures(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		repo := New(Options{})
		assert.False(t, repo.SearchEnabled())
		_, err := repo.SearchCandidates(context.Background(), &models.JobRequirement{})
		assert.True(t, errors.HasCode(err, errors.ErrCodeSearchQueryFailed))
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}))
		defer srv.Close()

		es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
		require.NoError(t, err)
		repo := New(Options{Search: es})

		_, err = repo.SearchCandidates(context.Background(), &models.JobRequirement{})
		assert.True(t, errors.HasCode(err, errors.ErrCodeSearchQueryFailed))
	})
}
