// ABOUTME: This file classifies composites into tiers and names into institution types
// ABOUTME: Tier bands partition [0,100] with inclusive lower bounds and no overlap
package service

import (
	"strings"

	"rank-estimator/models"
)

// ClassifyTier maps a composite score to its letter band. Thresholds are
// checked highest first; each band owns [threshold, next) so every composite
// lands in exactly one tier.
func ClassifyTier(composite float64) models.Tier {
	switch {
	case composite >= 85:
		return models.TierAPlus
	case composite >= 75:
		return models.TierA
	case composite >= 65:
		return models.TierB
	case composite >= 55:
		return models.TierCPlus
	case composite >= 45:
		return models.TierC
	default:
		return models.TierD
	}
}

// TierDescription returns the qualitative label shown next to a tier.
func TierDescription(tier models.Tier) string {
	switch tier {
	case models.TierAPlus:
		return "world-class"
	case models.TierA:
		return "excellent"
	case models.TierB:
		return "good"
	case models.TierCPlus:
		return "average"
	case models.TierC:
		return "below average"
	default:
		return "poor"
	}
}

var (
	specialistKeywords = []string{
		"business school", "medical school", "law school",
		"dental school", "nursing school", "art school",
	}
	vocationalCollegeKeywords = []string{
		"community college", "technical college",
		"vocational college", "career college",
	}
	collegeKeywords = []string{"college", "polytechnic", "institute of technology"}
	appliedKeywords = []string{"technical", "applied", "technology", "engineering"}
	researchMarkers = []string{
		"research", "institute", "tech", "polytechnic",
		"state", "national", "federal",
	}
)

// ClassifyInstitutionType buckets a name into one of the five institution
// types via ordered substring rules. The rule order is significant: the first
// matching bucket wins.
func ClassifyInstitutionType(name string) models.InstitutionType {
	lower := strings.ToLower(name)

	if containsAny(lower, specialistKeywords) {
		return models.TypeSpecialistSchool
	}
	if containsAny(lower, vocationalCollegeKeywords) {
		return models.TypeCollegePolytechnic
	}
	if containsAny(lower, collegeKeywords) {
		return models.TypeCollegePolytechnic
	}
	if containsAny(lower, appliedKeywords) {
		if strings.Contains(lower, "university") {
			return models.TypeAppliedUniversity
		}
		return models.TypeCollegePolytechnic
	}
	if strings.Contains(lower, "university") {
		if containsAny(lower, researchMarkers) {
			return models.TypeResearchUniversity
		}
		return models.TypeTeachingUniversity
	}
	return models.TypeTeachingUniversity
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
