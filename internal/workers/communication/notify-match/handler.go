// internal/workers/communication/notify-match/handler.go
package notifymatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	awsclient "jobmatch-workers/internal/common/aws"
	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/internal/models"
	"jobmatch-workers/internal/scoring"
)

const TaskType = "notify-match"

// ContactStore resolves the recruiter behind a job.
type ContactStore interface {
	GetJob(ctx context.Context, id string) (*models.JobRequirement, error)
	GetRecruiterContact(ctx context.Context, recruiterID string) (*models.RecruiterContact, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg awsclient.Email) (string, error)
}

type SMSSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	store        ContactStore
	email        EmailSender
	sms          SMSSender
	templates    map[string]compiledTemplate
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
	newID        func() string
}

type HandlerOptions struct {
	Config *Config
	Store  ContactStore
	Email  EmailSender
	SMS    SMSSender
	// Templates replaces DefaultTemplates when set.
	Templates []models.NotificationTemplate
	Validator *validation.Validator
	Logger    logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	list := opts.Templates
	if len(list) == 0 {
		list = DefaultTemplates()
	}
	templates, err := compileTemplates(list)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       cfg,
		store:        opts.Store,
		email:        opts.Email,
		sms:          opts.SMS,
		templates:    templates,
		validator:    opts.Validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}, nil
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
		"jobKey": job.Key,
		"status": output.Status,
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
	out := &Output{
		NotificationID: h.newID(),
		Channels:       []string{},
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}

	wantEmail := h.config.EmailEnabled && h.email != nil
	wantSMS := h.config.SMSEnabled && h.sms != nil
	if !wantEmail && !wantSMS {
		out.Status = StatusDisabled
		h.count("", StatusDisabled)
		return out, nil
	}

	wantEmail = wantEmail && input.OverallScore >= h.config.EmailThreshold
	wantSMS = wantSMS && input.OverallScore >= h.config.SMSThreshold
	if !wantEmail && !wantSMS {
		out.Status = StatusSkipped
		h.count("", StatusSkipped)
		h.logger.Debug("score below notification thresholds", map[string]interface{}{
			"jobId":        input.JobID,
			"overallScore": input.OverallScore,
		})
		return out, nil
	}

	data, contact, err := h.resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		out.Status = StatusSkipped
		h.count("", StatusSkipped)
		h.logger.Warn("no recruiter contact for job", map[string]interface{}{"jobId": input.JobID})
		return out, nil
	}

	wantEmail = wantEmail && contact.Email != ""
	wantSMS = wantSMS && contact.Phone != ""

	var subject, emailBody, smsBody string
	if wantEmail {
		if subject, emailBody, err = h.render(TypeStrongMatch, data); err != nil {
			return nil, err
		}
	}
	if wantSMS {
		if _, smsBody, err = h.render(TypeStrongMatchSMS, data); err != nil {
			return nil, err
		}
	}

	var failures []error
	if wantEmail {
		if err := h.sendEmail(ctx, contact, subject, emailBody); err != nil {
			failures = append(failures, err)
		} else {
			out.Channels = append(out.Channels, ChannelEmail)
		}
	}
	if wantSMS {
		if err := h.sendSMS(ctx, contact, smsBody); err != nil {
			failures = append(failures, err)
		} else {
			out.Channels = append(out.Channels, ChannelSMS)
		}
	}

	switch {
	case len(out.Channels) > 0:
		out.Status = StatusSent
	case len(failures) > 0:
		if h.config.FailOnSendError {
			return nil, failures[0]
		}
		out.Status = StatusFailed
	default:
		out.Status = StatusSkipped
	}

	h.logger.Info("match notification processed", map[string]interface{}{
		"notificationId": out.NotificationID,
		"jobId":          input.JobID,
		"candidateId":    input.CandidateID,
		"status":         out.Status,
		"channels":       out.Channels,
	})
	return out, nil
}

// resolve loads the job title and recruiter contact. A nil contact means
// there is nobody to notify.
func (h *Handler) resolve(ctx context.Context, input *Input) (TemplateData, *models.RecruiterContact, error) {
	rating := input.Rating
	if rating == "" {
		rating = string(scoring.Rate(input.OverallScore))
	}
	data := TemplateData{
		CandidateID:   input.CandidateID,
		JobID:         input.JobID,
		ApplicationID: input.ApplicationID,
		OverallScore:  input.OverallScore,
		Rating:        rating,
		Notes:         input.Notes,
	}
	if h.store == nil {
		return data, nil, nil
	}

	recruiterID := input.RecruiterID
	job, err := h.store.GetJob(ctx, input.JobID)
	if err != nil {
		return data, nil, err
	}
	data.JobTitle = job.Title
	if recruiterID == "" {
		recruiterID = job.RecruiterID
	}
	if recruiterID == "" {
		return data, nil, nil
	}

	contact, err := h.store.GetRecruiterContact(ctx, recruiterID)
	if err != nil {
		return data, nil, err
	}
	if contact != nil {
		data.RecruiterName = contact.Name
	}
	return data, contact, nil
}

func (h *Handler) sendEmail(ctx context.Context, contact *models.RecruiterContact, subject, body string) error {
	messageID, err := h.email.Send(ctx, awsclient.Email{
		From:     h.config.FromEmail,
		To:       contact.Email,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		h.count(ChannelEmail, StatusFailed)
		h.logger.Error("email send failed", map[string]interface{}{
			"recruiterId": contact.ID,
			"error":       err,
		})
		return errors.NewNotificationSendFailedError(ChannelEmail, err)
	}
	h.count(ChannelEmail, StatusSent)
	h.logger.Debug("email sent", map[string]interface{}{"messageId": messageID})
	return nil
}

func (h *Handler) sendSMS(ctx context.Context, contact *models.RecruiterContact, body string) error {
	messageID, err := h.sms.Send(ctx, contact.Phone, body)
	if err != nil {
		h.count(ChannelSMS, StatusFailed)
		h.logger.Error("sms send failed", map[string]interface{}{
			"recruiterId": contact.ID,
			"error":       err,
		})
		return errors.NewNotificationSendFailedError(ChannelSMS, err)
	}
	h.count(ChannelSMS, StatusSent)
	h.logger.Debug("sms sent", map[string]interface{}{"messageId": messageID})
	return nil
}

func (h *Handler) count(channel, status string) {
	if channel == "" {
		channel = "none"
	}
	metrics.NotificationsSent.WithLabelValues(channel, status).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
