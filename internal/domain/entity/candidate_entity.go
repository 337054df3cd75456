package entity

import "time"

// CandidateProfile is the 1:1 extension of a CANDIDATE user.
type CandidateProfile struct {
	UserID          string
	Headline        string
	DesiredTitle    string
	Bio             string
	City            string
	Latitude        *float64
	Longitude       *float64
	MaxDistanceKm   int
	ExperienceYears int
	ContractTypes   []ContractType
	RemoteOK        bool
	Skills          []string
	CVURL           string
	PhotoURL        string
	UpdatedAt       time.Time
}

func (p *CandidateProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
