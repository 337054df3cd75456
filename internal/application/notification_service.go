package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/pkg/mailer"
)

type NotificationService struct {
	Repo    repo.NotificationRepository
	Users   repo.UserRepository
	Pub     Publisher
	BaseURL string
	Logger  *logrus.Logger
}

func NewNotificationService(r repo.NotificationRepository, users repo.UserRepository, pub Publisher, baseURL string, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Users: users, Pub: pub, BaseURL: baseURL, Logger: logger}
}

// Notify persists a notification and enqueues the matching email job.
// Failures are logged so that the calling operation still succeeds.
func (s *NotificationService) Notify(ctx context.Context, n *entity.Notification, link string) {
	if s == nil || n == nil || n.UserID == "" {
		return
	}
	log := s.Logger.WithField("user_id", n.UserID).WithField("type", string(n.Type))
	if err := s.Repo.Create(ctx, n); err != nil {
		log.WithError(err).Warn("persist notification failed")
		return
	}
	if s.Pub == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		log.WithError(err).Warn("load notification recipient failed")
		return
	}
	job := mailer.NotificationJob{
		NotificationID: n.ID,
		UserID:         u.ID,
		To:             u.Email,
		Name:           u.FirstName,
		Type:           string(n.Type),
		Subject:        n.Title,
		Text:           n.Message,
		Data:           n.Data,
	}
	if link != "" {
		job.Link = s.BaseURL + link
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		log.WithError(err).Warn("publish notification job failed")
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, p repo.Page) ([]entity.Notification, int, error) {
	return s.Repo.List(ctx, userID, unreadOnly, p)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.Repo.MarkRead(ctx, userID, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}

func applicationStatusMessage(offerTitle string, status entity.ApplicationStatus) string {
	switch status {
	case entity.ApplicationReviewed:
		return fmt.Sprintf("Votre candidature pour « %s » a été consultée.", offerTitle)
	case entity.ApplicationShortlisted:
		return fmt.Sprintf("Votre candidature pour « %s » a été présélectionnée.", offerTitle)
	case entity.ApplicationInterview:
		return fmt.Sprintf("Le recruteur souhaite vous rencontrer pour « %s ».", offerTitle)
	case entity.ApplicationAccepted:
		return fmt.Sprintf("Félicitations, votre candidature pour « %s » a été acceptée.", offerTitle)
	case entity.ApplicationRejected:
		return fmt.Sprintf("Votre candidature pour « %s » n'a pas été retenue.", offerTitle)
	}
	return fmt.Sprintf("Le statut de votre candidature pour « %s » a changé.", offerTitle)
}
