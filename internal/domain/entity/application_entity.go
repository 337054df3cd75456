package entity

import "time"

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "PENDING"
	ApplicationReviewed    ApplicationStatus = "REVIEWED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// Terminal states have no outgoing transitions.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationReviewed, ApplicationShortlisted, ApplicationInterview, ApplicationRejected, ApplicationWithdrawn},
	ApplicationReviewed:    {ApplicationShortlisted, ApplicationInterview, ApplicationRejected, ApplicationWithdrawn},
	ApplicationShortlisted: {ApplicationInterview, ApplicationAccepted, ApplicationRejected},
	ApplicationInterview:   {ApplicationAccepted, ApplicationRejected},
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationInterview,
		ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Terminal() bool {
	return len(applicationTransitions[s]) == 0
}

type Application struct {
	ID          string
	OfferID     string
	CandidateID string
	Status      ApplicationStatus
	CoverLetter string
	MatchScore  int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Read-side joins
	OfferTitle     string
	CompanyName    string
	CandidateName  string
	CandidateEmail string
}

// ApplicationEvent records one status change.
type ApplicationEvent struct {
	ID            string
	ApplicationID string
	FromStatus    ApplicationStatus
	ToStatus      ApplicationStatus
	ActorID       string
	Note          string
	CreatedAt     time.Time
}
