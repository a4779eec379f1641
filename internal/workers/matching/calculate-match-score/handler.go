// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/internal/models"
	"jobmatch-workers/internal/scoring"
)

const TaskType = "calculate-job-match-score"

// ProfileStore loads the records a job refers to by id.
type ProfileStore interface {
	GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error)
	GetJob(ctx context.Context, id string) (*models.JobRequirement, error)
}

type Handler struct {
	config       *Config
	scorer       *scoring.Scorer
	store        ProfileStore
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

type HandlerOptions struct {
	Config    *Config
	Scorer    *scoring.Scorer
	Store     ProfileStore
	Validator *validation.Validator
	Logger    logger.Logger
}

func NewHandler(opts HandlerOptions) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = scoring.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       cfg,
		scorer:       scorer,
		store:        opts.Store,
		validator:    opts.Validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	var output *Output
	if err == nil {
		output, err = h.execute(ctx, input)
	}
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	if err := camunda.CompleteJob(context.Background(), client, job, output, camunda.DefaultRetryConfig); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return err
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":       job.Key,
		"candidateId":  output.CandidateID,
		"jobId":        output.JobID,
		"overallScore": output.OverallScore,
	})
	return nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.validator != nil {
		if err := h.validator.Validate(TaskType, []byte(job.Variables)).Err(); err != nil {
			return nil, err
		}
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidMatchInputError("parse variables: " + err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	candidate, err := h.candidate(ctx, input)
	if err != nil {
		return nil, err
	}
	job, err := h.job(ctx, input)
	if err != nil {
		return nil, err
	}

	result := h.scorer.Score(candidate, job)
	metrics.ObserveMatch(TaskType, result)

	h.logger.Info("match score calculated", map[string]interface{}{
		"candidateId":     candidate.ID,
		"jobId":           job.ID,
		"overallScore":    result.OverallScore,
		"skillsMatch":     result.SkillsMatch,
		"experienceMatch": result.ExperienceMatch,
		"locationMatch":   result.LocationMatch,
		"salaryMatch":     result.SalaryMatch,
	})

	return &Output{
		MatchResult:   result,
		Rating:        scoring.Rate(result.OverallScore),
		CandidateID:   candidate.ID,
		JobID:         job.ID,
		RecruiterID:   job.RecruiterID,
		ApplicationID: input.ApplicationID,
		ScoredAt:      h.now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) candidate(ctx context.Context, input *Input) (*models.CandidateProfile, error) {
	if input.CandidateProfile != nil {
		c := *input.CandidateProfile
		if c.ID == "" {
			c.ID = input.CandidateID
		}
		return &c, nil
	}
	if input.CandidateID == "" {
		return nil, errors.NewInvalidMatchInputError("candidateId or candidateProfile is required")
	}
	if h.store == nil {
		return nil, errors.NewInvalidMatchInputError("candidateProfile is required when no profile store is configured")
	}
	return h.store.GetCandidate(ctx, input.CandidateID)
}

func (h *Handler) job(ctx context.Context, input *Input) (*models.JobRequirement, error) {
	if input.JobRequirement != nil {
		j := *input.JobRequirement
		if j.ID == "" {
			j.ID = input.JobID
		}
		return &j, nil
	}
	if input.JobID == "" {
		return nil, errors.NewInvalidMatchInputError("jobId or jobRequirement is required")
	}
	if h.store == nil {
		return nil, errors.NewInvalidMatchInputError("jobRequirement is required when no profile store is configured")
	}
	return h.store.GetJob(ctx, input.JobID)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
