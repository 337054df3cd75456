package entity

import "time"

type NotificationType string

const (
	NotifyApplicationReceived NotificationType = "APPLICATION_RECEIVED"
	NotifyApplicationStatus   NotificationType = "APPLICATION_STATUS_CHANGED"
	NotifyCompanyReviewed     NotificationType = "COMPANY_REVIEWED"
	NotifyOfferModerated      NotificationType = "OFFER_MODERATED"
)

type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]any
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
