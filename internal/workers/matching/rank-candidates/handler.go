// internal/workers/matching/rank-candidates/handler.go
package rankcandidates

import (
	"context"
	"encoding/json"
	stderrors "errors"
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

const TaskType = "rank-job-candidates"

// CandidateStore supplies the job and the candidate pool.
type CandidateStore interface {
	GetJob(ctx context.Context, id string) (*models.JobRequirement, error)
	GetCandidates(ctx context.Context, ids []string) ([]models.CandidateProfile, []string, error)
	SearchCandidates(ctx context.Context, job *models.JobRequirement) ([]models.CandidateProfile, error)
}

type Handler struct {
	config       *Config
	scorer       *scoring.Scorer
	store        CandidateStore
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

type HandlerOptions struct {
	Config    *Config
	Scorer    *scoring.Scorer
	Store     CandidateStore
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
		"jobKey":      job.Key,
		"jobId":       output.JobID,
		"totalScored": output.TotalScored,
		"returned":    len(output.RankedCandidates),
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
	if input.Limit < 0 || input.MinScore < 0 || input.MinScore > 100 {
		return nil, errors.NewInvalidMatchInputError("limit must be positive and minScore within 0..100")
	}

	job, err := h.job(ctx, input)
	if err != nil {
		return nil, err
	}

	pool, source, missing, err := h.candidates(ctx, input, job)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = h.config.DefaultLimit
	}

	ranked, err := h.scorer.Rank(ctx, job, pool, scoring.RankOptions{
		Limit:       limit,
		MinScore:    input.MinScore,
		Concurrency: h.config.Concurrency,
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewQueryTimeoutError("candidate_rank")
		}
		return nil, errors.NewInternalError(err)
	}

	for _, rc := range ranked {
		metrics.ObserveMatch(TaskType, rc.Result)
	}

	if len(missing) > 0 {
		h.logger.Warn("some candidates were not found", map[string]interface{}{
			"jobId":   job.ID,
			"missing": missing,
		})
	}
	h.logger.Info("candidates ranked", map[string]interface{}{
		"jobId":    job.ID,
		"source":   source,
		"scored":   len(pool),
		"returned": len(ranked),
	})

	return &Output{
		JobID:               job.ID,
		RankedCandidates:    ranked,
		TotalScored:         len(pool),
		CandidateSource:     source,
		MissingCandidateIDs: missing,
		RankedAt:            h.now().UTC().Format(time.RFC3339),
	}, nil
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
		return nil, errors.NewInvalidMatchInputError("jobRequirement is required when no store is configured")
	}
	return h.store.GetJob(ctx, input.JobID)
}

func (h *Handler) candidates(ctx context.Context, input *Input, job *models.JobRequirement) ([]models.CandidateProfile, string, []string, error) {
	if len(input.Candidates) > 0 {
		return input.Candidates, SourceInline, nil, nil
	}
	if h.store == nil {
		return nil, "", nil, errors.NewInvalidMatchInputError("candidates are required when no store is configured")
	}
	if len(input.CandidateIDs) > 0 {
		found, missing, err := h.store.GetCandidates(ctx, input.CandidateIDs)
		return found, SourceIDs, missing, err
	}
	found, err := h.store.SearchCandidates(ctx, job)
	return found, SourceSearch, nil, err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
