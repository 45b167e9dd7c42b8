package models

import "time"

// InstitutionType buckets an institution by the kind of education it offers.
type InstitutionType string

const (
	TypeResearchUniversity InstitutionType = "research_university"
	TypeTeachingUniversity InstitutionType = "teaching_university"
	TypeCollegePolytechnic InstitutionType = "college_polytechnic"
	TypeAppliedUniversity  InstitutionType = "applied_university"
	TypeSpecialistSchool   InstitutionType = "specialist_school"
)

// DisplayName returns a human-readable label for the institution type.
func (t InstitutionType) DisplayName() string {
	switch t {
	case TypeResearchUniversity:
		return "Research University"
	case TypeTeachingUniversity:
		return "Teaching University"
	case TypeCollegePolytechnic:
		return "College / Polytechnic"
	case TypeAppliedUniversity:
		return "Applied University"
	case TypeSpecialistSchool:
		return "Specialist School"
	default:
		return string(t)
	}
}

// Tier is the letter band a composite score falls into.
type Tier string

const (
	TierAPlus Tier = "A+"
	TierA     Tier = "A"
	TierB     Tier = "B"
	TierCPlus Tier = "C+"
	TierC     Tier = "C"
	TierD     Tier = "D"
)

// RankingResult is the outcome of one ranking request. It is immutable once
// assembled; callers must not modify a returned result.
type RankingResult struct {
	ID          string            `json:"id" db:"id"`
	Institution string            `json:"institution" db:"institution"`
	Country     string            `json:"country" db:"country"`
	Type        InstitutionType   `json:"type" db:"institution_type"`
	Scores      ScoreVector       `json:"scores"`
	Composite   float64           `json:"composite" db:"composite"`
	Tier        Tier              `json:"tier" db:"tier"`
	ErrorMargin float64           `json:"error_margin" db:"error_margin"`
	Rationale   map[string]string `json:"rationale"`
	Sources     []string          `json:"sources"`
	Estimated   bool              `json:"estimated" db:"estimated"`
	RequesterID string            `json:"-" db:"requester_id"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}
