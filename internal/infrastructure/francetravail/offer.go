package francetravail

import (
	"strconv"
	"strings"
	"time"
)

// Offer is the subset of a search result the aggregation job reads.
type Offer struct {
	ID                string       `json:"id"`
	Intitule          string       `json:"intitule"`
	Description       string       `json:"description"`
	DateCreation      time.Time    `json:"dateCreation"`
	DateActualisation time.Time    `json:"dateActualisation"`
	LieuTravail       Lieu         `json:"lieuTravail"`
	Entreprise        Entreprise   `json:"entreprise"`
	TypeContrat       string       `json:"typeContrat"`
	ExperienceExige   string       `json:"experienceExige"`
	ExperienceLibelle string       `json:"experienceLibelle"`
	Salaire           Salaire      `json:"salaire"`
	Alternance        bool         `json:"alternance"`
	Competences       []Competence `json:"competences"`
	OrigineOffre      Origine      `json:"origineOffre"`
}

type Lieu struct {
	Libelle    string  `json:"libelle"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CodePostal string  `json:"codePostal"`
	Commune    string  `json:"commune"`
}

type Entreprise struct {
	Nom string `json:"nom"`
}

type Salaire struct {
	Libelle string `json:"libelle"`
}

// Competence exigence is "E" (required) or "S" (nice to have).
type Competence struct {
	Code     string `json:"code"`
	Libelle  string `json:"libelle"`
	Exigence string `json:"exigence"`
}

type Origine struct {
	URLOrigine string `json:"urlOrigine"`
}

// City returns the commune label without its department prefix ("69 - Lyon 3e" → "Lyon 3e").
func (l Lieu) City() string {
	s := l.Libelle
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[i+3:]
	}
	return strings.TrimSpace(s)
}

func (l Lieu) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// ExperienceYears parses labels such as "3 An(s)" or "24 Mois"; "D" (débutant) yields 0.
func (o Offer) ExperienceYears() int {
	if o.ExperienceExige == "D" {
		return 0
	}
	fields := strings.Fields(o.ExperienceLibelle)
	if len(fields) < 2 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	unit := strings.ToLower(fields[1])
	switch {
	case strings.HasPrefix(unit, "an"):
		return n
	case strings.HasPrefix(unit, "mois"):
		return n / 12
	}
	return 0
}

// PublicURL falls back to the France Travail detail page.
func (o Offer) PublicURL() string {
	if o.OrigineOffre.URLOrigine != "" {
		return o.OrigineOffre.URLOrigine
	}
	return "https://candidat.francetravail.fr/offres/recherche/detail/" + o.ID
}

// Published returns the last update time, or creation time when absent.
func (o Offer) Published() time.Time {
	if !o.DateActualisation.IsZero() {
		return o.DateActualisation
	}
	return o.DateCreation
}
