package mailer

import (
	"errors"
	"strings"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue for every
// persisted notification. The worker sends Text as a plain-text email.
type NotificationJob struct {
	NotificationID string         `json:"notification_id"`
	UserID         string         `json:"user_id"`
	To             string         `json:"to"`
	Name           string         `json:"name,omitempty"`
	Type           string         `json:"type"`
	Subject        string         `json:"subject"`
	Text           string         `json:"text"`
	Link           string         `json:"link,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

var ErrInvalidJob = errors.New("invalid notification job")

func (j NotificationJob) Validate() error {
	if strings.TrimSpace(j.To) == "" || !strings.Contains(j.To, "@") {
		return errors.Join(ErrInvalidJob, errors.New("missing recipient"))
	}
	if strings.TrimSpace(j.Subject) == "" {
		return errors.Join(ErrInvalidJob, errors.New("missing subject"))
	}
	return nil
}

// Body returns the plain-text body: greeting, message and optional link.
func (j NotificationJob) Body() string {
	var b strings.Builder
	if j.Name != "" {
		b.WriteString("Bonjour " + j.Name + ",\n\n")
	} else {
		b.WriteString("Bonjour,\n\n")
	}
	b.WriteString(strings.TrimSpace(j.Text))
	b.WriteString("\n")
	if j.Link != "" {
		b.WriteString("\n" + j.Link + "\n")
	}
	b.WriteString("\n-- \nCareerBoost\n")
	return b.String()
}
