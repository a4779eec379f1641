// internal/workers/communication/notify-match/models.go
package notifymatch

type Input struct {
	CandidateID   string `json:"candidateId"`
	JobID         string `json:"jobId"`
	ApplicationID string `json:"applicationId,omitempty"`
	RecruiterID   string `json:"recruiterId,omitempty"`
	OverallScore  int    `json:"overallScore"`
	Rating        string `json:"rating,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // RFC 3339
}

// Notification types, also the keys of the template set.
const (
	TypeStrongMatch    = "strong_match"
	TypeStrongMatchSMS = "strong_match_sms"
)

const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
	StatusFailed   = "failed"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
