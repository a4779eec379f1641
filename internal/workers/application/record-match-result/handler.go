// internal/workers/application/record-match-result/handler.go
package recordmatchresult

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/validation"
)

const TaskType = "record-match-result"

type Handler struct {
	config       *Config
	db           *database.PostgresClient
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

type HandlerOptions struct {
	Config    *Config
	DB        *database.PostgresClient
	Validator *validation.Validator
	Logger    logger.Logger
}

func NewHandler(opts HandlerOptions) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       cfg,
		db:           opts.DB,
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
	h.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
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
	if input.ApplicationID == "" {
		return nil, errors.NewInvalidMatchInputError("applicationId is required")
	}

	details := input.MatchResult
	if details.MatchedSkills == nil {
		details.MatchedSkills = []string{}
	}
	if details.MissingSkills == nil {
		details.MissingSkills = []string{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	recordedAt := h.now().UTC().Format(time.RFC3339)

	res, err := h.db.Exec(ctx, `
		UPDATE applications
		SET match_score = $1, matched_details = $2, updated_at = $3
		WHERE id = $4`,
		details.OverallScore, detailsJSON, recordedAt, input.ApplicationID)
	if err != nil {
		return nil, errors.NewDatabaseUpdateFailedError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.NewDatabaseUpdateFailedError(err)
	}
	if affected == 0 {
		return nil, errors.NewApplicationNotFoundError(input.ApplicationID)
	}

	h.writeAudit(ctx, input, recordedAt)

	h.logger.Info("match result recorded", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"overallScore":  details.OverallScore,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		MatchScore:    details.OverallScore,
		MatchRecorded: true,
		RecordedAt:    recordedAt,
	}, nil
}

// writeAudit records the update. Failures are logged and otherwise ignored.
func (h *Handler) writeAudit(ctx context.Context, input *Input, at string) {
	auditJSON, err := json.Marshal(map[string]interface{}{
		"candidateId":  input.CandidateID,
		"jobId":        input.JobID,
		"overallScore": input.OverallScore,
	})
	if err != nil {
		auditJSON = []byte("{}")
	}

	_, err = h.db.Exec(ctx, `
		INSERT INTO audit_log (id, event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), "match_result_recorded", "application", input.ApplicationID, auditJSON, at)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
