// internal/models/recruiter.go
package models

// RecruiterContact is where match notifications for a job are delivered.
type RecruiterContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
