package mailer

import (
	"errors"
	"strings"
	"testing"
)

func TestNotificationJobValidate(t *testing.T) {
	tests := []struct {
		name string
		job  NotificationJob
		ok   bool
	}{
		{"ok", NotificationJob{To: "a@b.fr", Subject: "Hello"}, true},
		{"no recipient", NotificationJob{Subject: "Hello"}, false},
		{"bad recipient", NotificationJob{To: "nobody", Subject: "Hello"}, false},
		{"no subject", NotificationJob{To: "a@b.fr"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidJob) {
				t.Fatalf("expected ErrInvalidJob, got %v", err)
			}
		})
	}
}

func TestNotificationJobBody(t *testing.T) {
	body := NotificationJob{Name: "Ana", Text: "Votre candidature a été retenue.", Link: "http://app/x"}.Body()
	for _, want := range []string{"Bonjour Ana,", "retenue.", "http://app/x"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %q missing %q", body, want)
		}
	}
}
