package entity

// Skill is a row of the skills catalogue, seeded from the parsing dictionary.
type Skill struct {
	ID       string
	Name     string
	Slug     string
	Category string
	Aliases  []string
}

// OfferSkill is a skill attached to a job offer.
// Weight 0 means "use the default weight for Required".
type OfferSkill struct {
	SkillID    string
	Name       string
	Slug       string
	IsRequired bool
	Weight     float64
}
