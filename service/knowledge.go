// ABOUTME: This file holds the static knowledge base used by the estimator
// ABOUTME: Known institutions, QS/THE rank tables, country multipliers
package service

import (
	"strings"

	"rank-estimator/models"
)

// KnownInstitution is one verified knowledge-base entry. Scores and country
// are used verbatim when a name matches; the user-supplied country is
// overridden.
type KnownInstitution struct {
	Country string
	Type    models.InstitutionType
	Scores  models.ScoreVector
}

// knownInstitutions is keyed by exact lowercased name.
var knownInstitutions = map[string]KnownInstitution{
	"bryant university": {
		Country: "USA",
		Type:    models.TypeTeachingUniversity,
		Scores:  models.ScoreVector{Academic: 12, Graduate: 22, ROI: 16, FSR: 13, Transparency: 8, Visibility: 3},
	},
	"massachusetts institute of technology": {
		Country: "USA",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 25, Graduate: 24, ROI: 20, FSR: 14, Transparency: 9, Visibility: 5},
	},
	"harvard university": {
		Country: "USA",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 25, Graduate: 24, ROI: 20, FSR: 13, Transparency: 10, Visibility: 5},
	},
	"stanford university": {
		Country: "USA",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 24, Graduate: 23, ROI: 20, FSR: 14, Transparency: 9, Visibility: 5},
	},
	"university of toronto": {
		Country: "Canada",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 22, Graduate: 21, ROI: 18, FSR: 13, Transparency: 9, Visibility: 4},
	},
	"university of oxford": {
		Country: "UK",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 25, Graduate: 24, ROI: 19, FSR: 14, Transparency: 10, Visibility: 5},
	},
	"conestoga college": {
		Country: "Canada",
		Type:    models.TypeCollegePolytechnic,
		Scores:  models.ScoreVector{Academic: 4, Graduate: 20, ROI: 18, FSR: 13, Transparency: 7, Visibility: 4},
	},
	"algonquin college": {
		Country: "Canada",
		Type:    models.TypeCollegePolytechnic,
		Scores:  models.ScoreVector{Academic: 4, Graduate: 19, ROI: 17, FSR: 12, Transparency: 6, Visibility: 3},
	},
	"north dakota state university": {
		Country: "USA",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 16, Graduate: 15, ROI: 16, FSR: 11, Transparency: 9, Visibility: 4},
	},
	"university of tokyo": {
		Country: "Japan",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 23, Graduate: 21, ROI: 18, FSR: 13, Transparency: 8, Visibility: 4},
	},
	"university of sydney": {
		Country: "Australia",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 21, Graduate: 20, ROI: 17, FSR: 12, Transparency: 8, Visibility: 4},
	},
	"community college of philadelphia": {
		Country: "USA",
		Type:    models.TypeCollegePolytechnic,
		Scores:  models.ScoreVector{Academic: 3, Graduate: 16, ROI: 18, FSR: 11, Transparency: 5, Visibility: 2},
	},
	"california institute of technology": {
		Country: "USA",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 25, Graduate: 24, ROI: 20, FSR: 14, Transparency: 9, Visibility: 5},
	},
	"university of cape town": {
		Country: "South Africa",
		Type:    models.TypeResearchUniversity,
		Scores:  models.ScoreVector{Academic: 18, Graduate: 17, ROI: 15, FSR: 11, Transparency: 7, Visibility: 3},
	},
}

// LookupKnownInstitution matches an exact lowercased name against the
// knowledge base.
func LookupKnownInstitution(name string) (KnownInstitution, bool) {
	entry, ok := knownInstitutions[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}

// qsRankings is a static sample of QS World University Rankings positions,
// keyed by exact lowercased name.
var qsRankings = map[string]int{
	"massachusetts institute of technology": 1,
	"university of cambridge":               2,
	"university of oxford":                  3,
	"harvard university":                    4,
	"stanford university":                   5,
	"imperial college london":               6,
	"california institute of technology":    7,
	"university college london":             8,
	"eth zurich":                            9,
	"university of chicago":                 10,
}

// theRankings is a static sample of Times Higher Education positions.
var theRankings = map[string]int{
	"university of oxford":                  1,
	"harvard university":                    2,
	"university of cambridge":               3,
	"stanford university":                   4,
	"massachusetts institute of technology": 5,
	"california institute of technology":    6,
	"princeton university":                  7,
	"university of california berkeley":     8,
	"yale university":                       9,
	"imperial college london":               10,
}

// QSRank returns the static QS position for the name, zero when absent.
func QSRank(name string) int {
	return qsRankings[strings.ToLower(strings.TrimSpace(name))]
}

// THERank returns the static THE position for the name, zero when absent.
func THERank(name string) int {
	return theRankings[strings.ToLower(strings.TrimSpace(name))]
}

// countryMultipliers maps uppercased country names and ISO-style codes to a
// quality factor applied to the academic/graduate/roi/fsr fields.
var countryMultipliers = map[string]float64{
	"USA": 1.2, "UK": 1.15,

	"CANADA": 1.1, "CAN": 1.1, "AUSTRALIA": 1.1, "AUS": 1.1,
	"GERMANY": 1.1, "DEU": 1.1, "SWITZERLAND": 1.15, "CHE": 1.15,
	"SWEDEN": 1.05, "SWE": 1.05, "NETHERLANDS": 1.05, "NLD": 1.05,
	"DENMARK": 1.05, "DNK": 1.05, "FINLAND": 1.05, "FIN": 1.05,
	"NORWAY": 1.05, "NOR": 1.05,

	"FRANCE": 1.0, "FRA": 1.0, "ITALY": 0.95, "ITA": 0.95,
	"SPAIN": 0.95, "ESP": 0.95, "PORTUGAL": 0.9, "PRT": 0.9,
	"GREECE": 0.9, "GRC": 0.9,

	"JAPAN": 1.05, "JPN": 1.05, "SOUTH KOREA": 1.05, "KOR": 1.05,
	"SINGAPORE": 1.1, "SGP": 1.1, "HONG KONG": 1.1, "HKG": 1.1,

	"CHINA": 0.9, "CHN": 0.9, "INDIA": 0.85, "IND": 0.85,
	"BRAZIL": 0.85, "BRA": 0.85, "RUSSIA": 0.85, "RUS": 0.85,
	"SOUTH AFRICA": 0.85, "ZAF": 0.85, "MEXICO": 0.85, "MEX": 0.85,

	"IRELAND": 1.0, "IRL": 1.0, "NEW ZEALAND": 1.0, "NZL": 1.0,
	"NEWZEALAND": 1.0,

	"GLOBAL": 1.0,
}

// countryMultiplierKeys fixes the scan order for substring fallback matching
// so the result is stable across processes.
var countryMultiplierKeys = []string{
	"USA", "UK",
	"CANADA", "CAN", "AUSTRALIA", "AUS", "GERMANY", "DEU",
	"SWITZERLAND", "CHE", "SWEDEN", "SWE", "NETHERLANDS", "NLD",
	"DENMARK", "DNK", "FINLAND", "FIN", "NORWAY", "NOR",
	"FRANCE", "FRA", "ITALY", "ITA", "SPAIN", "ESP",
	"PORTUGAL", "PRT", "GREECE", "GRC",
	"JAPAN", "JPN", "SOUTH KOREA", "KOR", "SINGAPORE", "SGP",
	"HONG KONG", "HKG",
	"CHINA", "CHN", "INDIA", "IND", "BRAZIL", "BRA",
	"RUSSIA", "RUS", "SOUTH AFRICA", "ZAF", "MEXICO", "MEX",
	"IRELAND", "IRL", "NEW ZEALAND", "NZL", "NEWZEALAND",
	"GLOBAL",
}

// CountryMultiplier resolves a country string to its quality factor. Matching
// is exact first, then bidirectional substring over the table keys in stable
// order; unmatched countries get 1.0.
func CountryMultiplier(country string) float64 {
	upper := strings.ToUpper(strings.TrimSpace(country))
	if upper == "" {
		return 1.0
	}

	if mult, ok := countryMultipliers[upper]; ok {
		return mult
	}

	for _, key := range countryMultiplierKeys {
		if strings.Contains(key, upper) || strings.Contains(upper, key) {
			return countryMultipliers[key]
		}
	}

	return 1.0
}
