// Package matching computes the 0-100 compatibility score between a
// candidate profile and a job offer.
package matching

import (
	"math"
	"sort"
	"time"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/skills"
)

const (
	RequiredWeight = 2.0
	OptionalWeight = 1.0

	neutralSkillScore = 50

	titleShare  = 0.60
	cityShare   = 0.25
	remoteShare = 0.15
)

// Filter reasons reported when a hard filter zeroes the score.
const (
	ReasonContractType = "contract_type"
	ReasonDistance     = "distance"
)

// Weights are α (skills), β (experience) and γ (bonus).
type Weights struct {
	Skills     float64
	Experience float64
	Bonus      float64
}

func DefaultWeights() Weights {
	return Weights{Skills: 0.6, Experience: 0.25, Bonus: 0.15}
}

// normalized rescales weights to sum to 1; invalid weights fall back to defaults.
func (w Weights) normalized() Weights {
	if w.Skills < 0 || w.Experience < 0 || w.Bonus < 0 {
		return DefaultWeights()
	}
	sum := w.Skills + w.Experience + w.Bonus
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{Skills: w.Skills / sum, Experience: w.Experience / sum, Bonus: w.Bonus / sum}
}

// Candidate is the matching view of a candidate profile.
type Candidate struct {
	Skills          []string
	ExperienceYears int
	ContractTypes   []entity.ContractType
	DesiredTitle    string
	City            string
	Latitude        *float64
	Longitude       *float64
	MaxDistanceKm   int
	RemoteOK        bool
}

// FromProfile adapts a stored profile.
func FromProfile(p *entity.CandidateProfile) Candidate {
	if p == nil {
		return Candidate{}
	}
	title := p.DesiredTitle
	if title == "" {
		title = p.Headline
	}
	return Candidate{
		Skills:          p.Skills,
		ExperienceYears: p.ExperienceYears,
		ContractTypes:   p.ContractTypes,
		DesiredTitle:    title,
		City:            p.City,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		MaxDistanceKm:   p.MaxDistanceKm,
		RemoteOK:        p.RemoteOK,
	}
}

// Result is a score with its breakdown.
type Result struct {
	OfferID         string   `json:"offer_id"`
	Score           int      `json:"score"`
	SkillsScore     int      `json:"skills_score"`
	ExperienceScore int      `json:"experience_score"`
	BonusScore      int      `json:"bonus_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Filtered        bool     `json:"filtered"`
	Reasons         []string `json:"reasons,omitempty"`

	publishedAt time.Time
}

// Score computes the compatibility of c with o.
func Score(c Candidate, o *entity.JobOffer, w Weights) Result {
	w = w.normalized()
	res := Result{OfferID: o.ID, MatchedSkills: []string{}, MissingSkills: []string{}}
	if o.PublishedAt != nil {
		res.publishedAt = *o.PublishedAt
	} else {
		res.publishedAt = o.CreatedAt
	}

	if len(c.ContractTypes) > 0 && o.ContractType != "" && !containsContract(c.ContractTypes, o.ContractType) {
		res.Filtered = true
		res.Reasons = append(res.Reasons, ReasonContractType)
	}
	if c.Latitude != nil && c.Longitude != nil && o.HasLocation() {
		d := math.Round(HaversineKm(*c.Latitude, *c.Longitude, *o.Latitude, *o.Longitude)*10) / 10
		res.DistanceKm = &d
		remoteAccepted := o.Remote && c.RemoteOK
		if c.MaxDistanceKm > 0 && d > float64(c.MaxDistanceKm) && !remoteAccepted {
			res.Filtered = true
			res.Reasons = append(res.Reasons, ReasonDistance)
		}
	}

	skillsScore, matched, missing := skillScore(c.Skills, o.Skills)
	res.MatchedSkills, res.MissingSkills = matched, missing
	res.SkillsScore = clamp(skillsScore)
	res.ExperienceScore = clamp(experienceScore(c.ExperienceYears, o.ExperienceMinYears))
	res.BonusScore = clamp(bonusScore(c, o))

	if res.Filtered {
		return res
	}
	total := w.Skills*skillsScore + w.Experience*experienceScore(c.ExperienceYears, o.ExperienceMinYears) + w.Bonus*bonusScore(c, o)
	res.Score = clamp(total)
	return res
}

// Rank scores every offer, drops filtered ones and returns the best first.
// limit <= 0 keeps everything.
func Rank(c Candidate, offers []entity.JobOffer, w Weights, limit int) []Result {
	out := make([]Result, 0, len(offers))
	for i := range offers {
		r := Score(c, &offers[i], w)
		if r.Filtered {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].publishedAt.After(out[j].publishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func skillScore(candidate []string, offer []entity.OfferSkill) (float64, []string, []string) {
	matched, missing := []string{}, []string{}
	if len(offer) == 0 {
		return neutralSkillScore, matched, missing
	}
	have := make(map[string]bool, len(candidate))
	p := skills.Default()
	for _, s := range candidate {
		have[skills.Slugify(s)] = true
		if e, ok := p.Canonical(s); ok {
			have[skills.Slugify(e.Name)] = true
		}
	}
	var total, got float64
	for _, s := range offer {
		weight := s.Weight
		if weight <= 0 {
			weight = OptionalWeight
			if s.IsRequired {
				weight = RequiredWeight
			}
		}
		total += weight
		slug := s.Slug
		if slug == "" {
			slug = skills.Slugify(s.Name)
		}
		if have[slug] {
			got += weight
			matched = append(matched, s.Name)
		} else {
			missing = append(missing, s.Name)
		}
	}
	if total == 0 {
		return neutralSkillScore, matched, missing
	}
	return 100 * got / total, matched, missing
}

func experienceScore(years, required int) float64 {
	if required <= 0 || years >= required {
		return 100
	}
	if years <= 0 {
		return 0
	}
	return 100 * float64(years) / float64(required)
}

func bonusScore(c Candidate, o *entity.JobOffer) float64 {
	var b float64
	if c.DesiredTitle != "" && o.Title != "" {
		b += titleShare * 100 * Similarity(c.DesiredTitle, o.Title)
	}
	if c.City != "" && o.City != "" && skills.Slugify(c.City) == skills.Slugify(o.City) {
		b += cityShare * 100
	}
	if o.Remote && c.RemoteOK {
		b += remoteShare * 100
	}
	return b
}

func containsContract(list []entity.ContractType, c entity.ContractType) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func clamp(v float64) int {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(math.Round(v))
}
