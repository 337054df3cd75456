package matching

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

var (
	paris = [2]float64{48.8566, 2.3522}
	lyon  = [2]float64{45.7640, 4.8357}
)

func goOffer() *entity.JobOffer {
	return &entity.JobOffer{
		ID:                 "offer-1",
		Title:              "Développeur Go (H/F)",
		City:               "Paris",
		ContractType:       entity.ContractCDI,
		ExperienceMinYears: 2,
		Latitude:           ptr(paris[0]),
		Longitude:          ptr(paris[1]),
		Skills: []entity.OfferSkill{
			{Name: "Go", Slug: "go", IsRequired: true},
			{Name: "PostgreSQL", Slug: "postgresql", IsRequired: true},
			{Name: "Docker", Slug: "docker"},
		},
	}
}

func goCandidate() Candidate {
	return Candidate{
		Skills:          []string{"golang", "Postgres"},
		ExperienceYears: 3,
		ContractTypes:   []entity.ContractType{entity.ContractCDI},
		DesiredTitle:    "Développeur Go",
		City:            "paris",
		Latitude:        ptr(paris[0]),
		Longitude:       ptr(paris[1]),
		MaxDistanceKm:   30,
	}
}

func TestScoreBreakdown(t *testing.T) {
	got := Score(goCandidate(), goOffer(), DefaultWeights())

	if got.Filtered {
		t.Fatalf("unexpected filter: %v", got.Reasons)
	}
	if got.SkillsScore != 80 {
		t.Errorf("SkillsScore = %d, want 80", got.SkillsScore)
	}
	if got.ExperienceScore != 100 {
		t.Errorf("ExperienceScore = %d, want 100", got.ExperienceScore)
	}
	if got.BonusScore != 85 {
		t.Errorf("BonusScore = %d, want 85", got.BonusScore)
	}
	// 0.6*80 + 0.25*100 + 0.15*85 = 85.75
	if got.Score != 86 {
		t.Errorf("Score = %d, want 86", got.Score)
	}
	if diff := cmp.Diff([]string{"Go", "PostgreSQL"}, got.MatchedSkills); diff != "" {
		t.Errorf("matched (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Docker"}, got.MissingSkills); diff != "" {
		t.Errorf("missing (-want +got):\n%s", diff)
	}
	if got.DistanceKm == nil || *got.DistanceKm != 0 {
		t.Errorf("DistanceKm = %v, want 0", got.DistanceKm)
	}
}

func TestHardFilters(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Candidate, o *entity.JobOffer)
		reasons []string
	}{
		{
			name: "contract type mismatch",
			mutate: func(c *Candidate, o *entity.JobOffer) {
				o.ContractType = entity.ContractStage
			},
			reasons: []string{ReasonContractType},
		},
		{
			name: "too far",
			mutate: func(c *Candidate, o *entity.JobOffer) {
				o.Latitude, o.Longitude = ptr(lyon[0]), ptr(lyon[1])
			},
			reasons: []string{ReasonDistance},
		},
		{
			name: "both",
			mutate: func(c *Candidate, o *entity.JobOffer) {
				o.ContractType = entity.ContractCDD
				o.Latitude, o.Longitude = ptr(lyon[0]), ptr(lyon[1])
			},
			reasons: []string{ReasonContractType, ReasonDistance},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, o := goCandidate(), goOffer()
			tt.mutate(&c, o)
			got := Score(c, o, DefaultWeights())
			if !got.Filtered || got.Score != 0 {
				t.Fatalf("expected filtered zero score, got %+v", got)
			}
			if diff := cmp.Diff(tt.reasons, got.Reasons); diff != "" {
				t.Errorf("reasons (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemoteBypassesDistance(t *testing.T) {
	c, o := goCandidate(), goOffer()
	o.Latitude, o.Longitude = ptr(lyon[0]), ptr(lyon[1])
	o.Remote = true
	c.RemoteOK = true
	got := Score(c, o, DefaultWeights())
	if got.Filtered {
		t.Fatalf("remote offer should not be distance filtered: %v", got.Reasons)
	}
	if got.DistanceKm == nil || math.Abs(*got.DistanceKm-392) > 5 {
		t.Errorf("DistanceKm = %v, want about 392", got.DistanceKm)
	}
}

func TestNoPreferencesNoFilter(t *testing.T) {
	o := goOffer()
	got := Score(Candidate{}, o, DefaultWeights())
	if got.Filtered {
		t.Fatal("empty candidate must not be filtered")
	}
	// skills 0, experience 0 (required 2, has 0), bonus 0
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	o.Skills = nil
	o.ExperienceMinYears = 0
	got = Score(Candidate{}, o, DefaultWeights())
	// neutral 50 skills, full experience: 0.6*50 + 0.25*100 = 55
	if got.Score != 55 {
		t.Errorf("Score = %d, want 55", got.Score)
	}
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		years, required int
		want            float64
	}{
		{0, 0, 100},
		{5, 3, 100},
		{1, 4, 25},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := experienceScore(tt.years, tt.required); got != tt.want {
			t.Errorf("experienceScore(%d,%d) = %v, want %v", tt.years, tt.required, got, tt.want)
		}
	}
}

func TestWeightsNormalized(t *testing.T) {
	got := Weights{Skills: 2, Experience: 1, Bonus: 1}.normalized()
	want := Weights{Skills: 0.5, Experience: 0.25, Bonus: 0.25}
	if got != want {
		t.Errorf("normalized = %+v, want %+v", got, want)
	}
	if (Weights{}).normalized() != DefaultWeights() {
		t.Error("zero weights should fall back to defaults")
	}
	if (Weights{Skills: -1, Experience: 1, Bonus: 1}).normalized() != DefaultWeights() {
		t.Error("negative weights should fall back to defaults")
	}
}

func TestRank(t *testing.T) {
	now := time.Now()
	strong := *goOffer()
	strong.ID = "strong"
	strong.PublishedAt = ptr(now.Add(-48 * time.Hour))

	weak := *goOffer()
	weak.ID = "weak"
	weak.Title = "Comptable"
	weak.Skills = []entity.OfferSkill{{Name: "Excel", Slug: "excel", IsRequired: true}}

	filtered := *goOffer()
	filtered.ID = "filtered"
	filtered.ContractType = entity.ContractInterim

	newer := *goOffer()
	newer.ID = "newer"
	newer.PublishedAt = ptr(now)

	got := Rank(goCandidate(), []entity.JobOffer{weak, strong, filtered, newer}, DefaultWeights(), 0)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.OfferID)
	}
	if diff := cmp.Diff([]string{"newer", "strong", "weak"}, ids); diff != "" {
		t.Errorf("rank order (-want +got):\n%s", diff)
	}

	limited := Rank(goCandidate(), []entity.JobOffer{weak, strong, newer}, DefaultWeights(), 1)
	if len(limited) != 1 || limited[0].OfferID != "newer" {
		t.Errorf("limit not applied: %+v", limited)
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("Développeur Go", "developpeur go (H/F)"); s != 1 {
		t.Errorf("identical titles similarity = %v, want 1", s)
	}
	if s := Similarity("Comptable", "Développeur Go"); s > 0.2 {
		t.Errorf("unrelated titles similarity = %v, want < 0.2", s)
	}
	if s := Similarity("", "x"); s != 0 {
		t.Errorf("empty similarity = %v", s)
	}
}

func TestHaversine(t *testing.T) {
	d := HaversineKm(paris[0], paris[1], lyon[0], lyon[1])
	if math.Abs(d-392) > 5 {
		t.Errorf("Paris-Lyon = %.1f km, want about 392", d)
	}
	if HaversineKm(1, 1, 1, 1) != 0 {
		t.Error("same point should be 0")
	}
}

func TestFromProfile(t *testing.T) {
	p := &entity.CandidateProfile{Headline: "Data analyst", ExperienceYears: 2, RemoteOK: true}
	c := FromProfile(p)
	if c.DesiredTitle != "Data analyst" || !c.RemoteOK || c.ExperienceYears != 2 {
		t.Errorf("FromProfile = %+v", c)
	}
	if got := FromProfile(nil); got.DesiredTitle != "" {
		t.Error("nil profile should give zero candidate")
	}
}
