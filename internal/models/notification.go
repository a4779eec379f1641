// internal/models/notification.go
package models

// NotificationTemplate is a text/template pair rendered per notification.
type NotificationTemplate struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Version string `json:"version"`
}
