// ABOUTME: This file produces the six-dimension score vector for an institution
// ABOUTME: Three exclusive paths: real-data scoring, knowledge base, heuristic estimation
package service

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"rank-estimator/models"
)

// ScorePath labels which estimation path produced a result.
type ScorePath string

const (
	PathRealData  ScorePath = "real_data"
	PathKnowledge ScorePath = "knowledge_base"
	PathHeuristic ScorePath = "heuristic"
)

// EstimateOutcome is the estimator's full output for one institution.
type EstimateOutcome struct {
	Scores      models.ScoreVector
	Path        ScorePath
	Estimated   bool
	Country     string
	Type        models.InstitutionType
	ErrorMargin float64
	Citations   []string
}

var (
	researchWords   = []string{"research", "publication", "citation", "nobel", "faculty"}
	employmentWords = []string{"employment", "graduate", "career", "salary", "placement"}

	commonCitations = []string{
		"QS World University Rankings",
		"Times Higher Education (THE)",
		"Academic Ranking of World Universities (ARWU)",
		"Webometrics Ranking of World Universities",
	}
)

// realDataBaseline is the starting vector on the real-data path.
var realDataBaseline = models.ScoreVector{
	Academic: 12, Graduate: 15, ROI: 14, FSR: 11, Transparency: 7, Visibility: 3,
}

// typeBaselines are the starting vectors on the heuristic path.
var typeBaselines = map[models.InstitutionType]models.ScoreVector{
	models.TypeResearchUniversity: {Academic: 18, Graduate: 17, ROI: 15, FSR: 11, Transparency: 8, Visibility: 4},
	models.TypeTeachingUniversity: {Academic: 12, Graduate: 15, ROI: 14, FSR: 11, Transparency: 7, Visibility: 3},
	models.TypeCollegePolytechnic: {Academic: 6, Graduate: 16, ROI: 16, FSR: 10, Transparency: 6, Visibility: 2},
	models.TypeAppliedUniversity:  {Academic: 10, Graduate: 18, ROI: 17, FSR: 11, Transparency: 7, Visibility: 3},
	models.TypeSpecialistSchool:   {Academic: 14, Graduate: 19, ROI: 16, FSR: 11, Transparency: 7, Visibility: 3},
}

// Estimator turns aggregated payloads (or their absence) into score vectors.
type Estimator struct {
	logger *slog.Logger

	// uniform returns a random float in [min, max). Injectable so tests
	// can pin the error-margin noise.
	uniform func(min, max float64) float64
}

// NewEstimator creates a score estimator.
func NewEstimator(logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{
		logger:  logger,
		uniform: uniformRand,
	}
}

func uniformRand(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// Estimate scores the institution. Path priority: real data when at least
// one source contributed, then the static knowledge base, then heuristic
// estimation. The returned country is the resolved one (a knowledge-base
// entry's stored country overrides the caller's).
func (e *Estimator) Estimate(name, country string, payload *models.AggregatedPayload) EstimateOutcome {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	switch {
	case payload.HasData():
		return e.estimateFromRealData(name, nameLower, country, payload)
	default:
		if entry, ok := LookupKnownInstitution(nameLower); ok {
			return e.estimateFromKnowledge(name, entry)
		}
		return e.estimateHeuristically(name, nameLower, country)
	}
}

func (e *Estimator) estimateFromRealData(name, nameLower, country string, payload *models.AggregatedPayload) EstimateOutcome {
	scores := realDataBaseline

	applyQSBand(&scores, payload.QSRank)
	applyTHEBand(&scores, payload.THERank)

	if payload.Wikipedia != nil {
		applyTextIndicators(&scores, payload.Wikipedia.Summary)
	}

	applyCountryMultiplier(&scores, country)

	instType := ClassifyInstitutionType(name)
	switch instType {
	case models.TypeResearchUniversity:
		scores.Academic += 3
	case models.TypeCollegePolytechnic:
		scores.Graduate += 2
		scores.ROI += 2
	}

	scores.Clamp()
	scores.Round()

	outcome := EstimateOutcome{
		Scores:    scores,
		Path:      PathRealData,
		Estimated: false,
		Country:   country,
		Type:      instType,
		Citations: realDataCitations(payload),
	}
	outcome.ErrorMargin = e.errorMargin(nameLower, country, payload.SourcesUsed)

	e.logger.Info("scored from real data",
		"institution", name,
		"sources", payload.SourcesUsed,
		"composite", scores.Composite())
	return outcome
}

func (e *Estimator) estimateFromKnowledge(name string, entry KnownInstitution) EstimateOutcome {
	outcome := EstimateOutcome{
		Scores:    entry.Scores,
		Path:      PathKnowledge,
		Estimated: false,
		Country:   entry.Country,
		Type:      entry.Type,
		Citations: append([]string{
			"Verified institutional data",
			"Accreditation agency records",
		}, commonCitations...),
	}
	outcome.ErrorMargin = models.Round1(e.uniform(1.0, 3.0))

	e.logger.Info("scored from knowledge base",
		"institution", name,
		"composite", entry.Scores.Composite())
	return outcome
}

func (e *Estimator) estimateHeuristically(name, nameLower, country string) EstimateOutcome {
	instType := ClassifyInstitutionType(nameLower)
	scores, ok := typeBaselines[instType]
	if !ok {
		scores = typeBaselines[models.TypeTeachingUniversity]
	}

	applyCountryMultiplier(&scores, country)
	applyNamePatterns(&scores, nameLower)
	applyPerturbation(&scores, nameLower)

	scores.Clamp()
	scores.Round()

	outcome := EstimateOutcome{
		Scores:    scores,
		Path:      PathHeuristic,
		Estimated: true,
		Country:   country,
		Type:      instType,
		Citations: append([]string{
			"Pattern analysis of similar institutions",
			"Country education system benchmarks",
			"Institution type averages",
		}, commonCitations...),
	}
	outcome.ErrorMargin = e.errorMargin(nameLower, country, nil)

	e.logger.Info("scored heuristically",
		"institution", name,
		"type", instType,
		"composite", scores.Composite())
	return outcome
}

// applyQSBand raises academic/graduate/visibility to the band floors for a
// static QS position. Zero means no position.
func applyQSBand(scores *models.ScoreVector, rank int) {
	if rank <= 0 {
		return
	}

	var academic, graduate, visibility float64
	switch {
	case rank <= 10:
		academic, graduate, visibility = 25, 24, 5
	case rank <= 50:
		academic, graduate, visibility = 22, 21, 4.5
	case rank <= 100:
		academic, graduate, visibility = 20, 19, 4
	case rank <= 200:
		academic, graduate, visibility = 18, 17, 3.5
	default:
		return
	}

	scores.Academic = maxFloat(scores.Academic, academic)
	scores.Graduate = maxFloat(scores.Graduate, graduate)
	scores.Visibility = maxFloat(scores.Visibility, visibility)
}

// applyTHEBand applies the second, independent ranking adjustment. It only
// touches academic and transparency, and combines with the QS result via
// max() so the higher proposed floor wins.
func applyTHEBand(scores *models.ScoreVector, rank int) {
	if rank <= 0 {
		return
	}

	switch {
	case rank <= 10:
		scores.Academic = maxFloat(scores.Academic, 24)
		scores.Transparency = maxFloat(scores.Transparency, 9)
	case rank <= 100:
		scores.Academic = maxFloat(scores.Academic, scores.Academic*1.1)
	}
}

// applyTextIndicators mines the encyclopedia summary for research and
// employment vocabulary.
func applyTextIndicators(scores *models.ScoreVector, summary string) {
	lower := strings.ToLower(summary)

	if countWordHits(lower, researchWords) >= 3 {
		scores.Academic = minFloat(models.MaxAcademic, scores.Academic+3)
	}
	if countWordHits(lower, employmentWords) >= 2 {
		scores.Graduate = minFloat(models.MaxGraduate, scores.Graduate+2)
	}
}

func countWordHits(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}

// applyCountryMultiplier scales the four system-sensitive fields, capping
// each at its maximum.
func applyCountryMultiplier(scores *models.ScoreVector, country string) {
	mult := CountryMultiplier(country)
	scores.Academic = minFloat(models.MaxAcademic, scores.Academic*mult)
	scores.Graduate = minFloat(models.MaxGraduate, scores.Graduate*mult)
	scores.ROI = minFloat(models.MaxROI, scores.ROI*mult)
	scores.FSR = minFloat(models.MaxFSR, scores.FSR*mult)
}

var (
	eliteNames = []string{
		"harvard", "stanford", "mit", "massachusetts institute",
		"oxford", "cambridge", "caltech", "princeton", "yale",
	}
	secondTierNames = []string{
		"columbia", "cornell", "dartmouth", "brown", "upenn",
		"imperial college", "university college london", "eth zurich",
	}
	topPublicNames = []string{
		"university of california", "ucla", "uc berkeley", "umich",
		"university of michigan", "university of texas", "ut austin",
	}
	globalMarkers = []string{"international", "global", "world"}
)

// applyNamePatterns applies the override chain; only the first matching rule
// fires. Elite tiers assign fixed vectors (above-cap values are clamped
// later); the generic rules are additive bumps.
func applyNamePatterns(scores *models.ScoreVector, nameLower string) {
	switch {
	case containsAny(nameLower, eliteNames):
		*scores = models.ScoreVector{Academic: 25, Graduate: 24, ROI: 22, FSR: 14, Transparency: 10, Visibility: 5}
	case containsAny(nameLower, secondTierNames):
		*scores = models.ScoreVector{Academic: 24, Graduate: 23, ROI: 21, FSR: 13, Transparency: 9, Visibility: 5}
	case containsAny(nameLower, topPublicNames):
		*scores = models.ScoreVector{Academic: 22, Graduate: 21, ROI: 19, FSR: 12, Transparency: 8, Visibility: 4}
	case strings.Contains(nameLower, "state university") || strings.Contains(nameLower, "state uni"):
		scores.Academic += 3
		scores.ROI += 2
		scores.Transparency += 1
		scores.Visibility += 1
	case strings.Contains(nameLower, "university") && !strings.Contains(nameLower, "state"):
		scores.Academic += 2
		scores.Visibility += 1
	case strings.Contains(nameLower, "college") && !strings.Contains(nameLower, "university"):
		scores.Graduate += 3
		scores.ROI += 2
		scores.FSR += 2
	case containsAny(nameLower, globalMarkers):
		scores.Visibility += 1
		scores.Transparency += 1
	}
}

// applyPerturbation adds the deterministic hash-derived offset so two
// different unknown institutions of the same type still differ, while the
// same name always scores identically.
func applyPerturbation(scores *models.ScoreVector, nameLower string) {
	sum := md5.Sum([]byte(nameLower))
	hashInt, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		return
	}

	for i, field := range models.ScoreFields {
		nibble := (hashInt >> (i * 4)) & 0xF
		variation := (float64(nibble)/15.0)*6.0 - 3.0

		switch field {
		case models.FieldAcademic, models.FieldGraduate:
			variation *= 1.5
		case models.FieldTransparency, models.FieldVisibility:
			variation *= 0.5
		}

		scores.SetField(field, scores.Field(field)+variation)
	}
}

// errorMargin estimates how far off the composite might be. Known entries
// get a tight margin; otherwise the margin reflects how much data backed the
// score. The result is always within [1.0, 15.0].
func (e *Estimator) errorMargin(nameLower, country string, sourcesUsed []models.SourceType) float64 {
	if _, known := LookupKnownInstitution(nameLower); known {
		margin := e.uniform(1.0, 3.0)
		if len(sourcesUsed) > 0 {
			margin = maxFloat(1.0, margin*0.7)
		}
		return models.Round1(margin)
	}

	base := 10.0
	for _, source := range sourcesUsed {
		if source == models.SourceWikipedia {
			base = 5.0
			break
		}
	}

	if len(sourcesUsed) >= 2 {
		base *= 0.7
	}

	base /= CountryMultiplier(country)

	if strings.Contains(nameLower, "university") {
		base *= 0.9
	} else if strings.Contains(nameLower, "college") {
		base *= 1.1
	}

	base += e.uniform(-2.0, 2.0)
	base = minFloat(15.0, maxFloat(3.0, base))

	if len(sourcesUsed) > 0 {
		base = maxFloat(1.0, base*0.7)
	}

	return models.Round1(base)
}

func realDataCitations(payload *models.AggregatedPayload) []string {
	var citations []string
	for _, source := range payload.SourcesUsed {
		switch source {
		case models.SourceWikipedia:
			citations = append(citations, "Wikipedia academic database")
		case models.SourceSearch:
			citations = append(citations, "Web search results for rankings")
		case models.SourceWebometrics:
			citations = append(citations, "Webometrics ranking system")
		}
	}
	if payload.QSRank > 0 {
		citations = append(citations, "QS World University Rankings table")
	}
	if payload.THERank > 0 {
		citations = append(citations, "Times Higher Education rankings table")
	}
	return append(citations, commonCitations...)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
