package models

import "math"

// Score field maxima. The six maxima always sum to 100, so the composite
// score is bounded to [0, 100] whenever every field respects its cap.
const (
	MaxAcademic     = 25.0
	MaxGraduate     = 25.0
	MaxROI          = 20.0
	MaxFSR          = 15.0
	MaxTransparency = 10.0
	MaxVisibility   = 5.0
)

// ScoreVector holds the six quality dimensions of an institution.
type ScoreVector struct {
	Academic     float64 `json:"academic"`
	Graduate     float64 `json:"graduate"`
	ROI          float64 `json:"roi"`
	FSR          float64 `json:"fsr"`
	Transparency float64 `json:"transparency"`
	Visibility   float64 `json:"visibility"`
}

// ScoreField identifies one dimension of a ScoreVector.
type ScoreField string

const (
	FieldAcademic     ScoreField = "academic"
	FieldGraduate     ScoreField = "graduate"
	FieldROI          ScoreField = "roi"
	FieldFSR          ScoreField = "fsr"
	FieldTransparency ScoreField = "transparency"
	FieldVisibility   ScoreField = "visibility"
)

// ScoreFields lists the fields in canonical order. The order matters for the
// deterministic perturbation applied on the estimation path.
var ScoreFields = []ScoreField{
	FieldAcademic,
	FieldGraduate,
	FieldROI,
	FieldFSR,
	FieldTransparency,
	FieldVisibility,
}

// FieldMax returns the maximum value of a score field.
func FieldMax(field ScoreField) float64 {
	switch field {
	case FieldAcademic:
		return MaxAcademic
	case FieldGraduate:
		return MaxGraduate
	case FieldROI:
		return MaxROI
	case FieldFSR:
		return MaxFSR
	case FieldTransparency:
		return MaxTransparency
	case FieldVisibility:
		return MaxVisibility
	default:
		return 0
	}
}

// Field returns the value of the named field.
func (s ScoreVector) Field(field ScoreField) float64 {
	switch field {
	case FieldAcademic:
		return s.Academic
	case FieldGraduate:
		return s.Graduate
	case FieldROI:
		return s.ROI
	case FieldFSR:
		return s.FSR
	case FieldTransparency:
		return s.Transparency
	case FieldVisibility:
		return s.Visibility
	default:
		return 0
	}
}

// SetField sets the value of the named field.
func (s *ScoreVector) SetField(field ScoreField, value float64) {
	switch field {
	case FieldAcademic:
		s.Academic = value
	case FieldGraduate:
		s.Graduate = value
	case FieldROI:
		s.ROI = value
	case FieldFSR:
		s.FSR = value
	case FieldTransparency:
		s.Transparency = value
	case FieldVisibility:
		s.Visibility = value
	}
}

// Composite returns the sum of all six fields rounded to one decimal.
func (s ScoreVector) Composite() float64 {
	return Round1(s.Academic + s.Graduate + s.ROI + s.FSR + s.Transparency + s.Visibility)
}

// Clamp bounds every field to [0, its maximum].
func (s *ScoreVector) Clamp() {
	for _, f := range ScoreFields {
		v := s.Field(f)
		if v < 0 {
			v = 0
		}
		if max := FieldMax(f); v > max {
			v = max
		}
		s.SetField(f, v)
	}
}

// Round rounds every field to one decimal.
func (s *ScoreVector) Round() {
	for _, f := range ScoreFields {
		s.SetField(f, Round1(s.Field(f)))
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
