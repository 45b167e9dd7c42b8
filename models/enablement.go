package models

import "time"

// SourceEnablement records which primary sources a requester has switched on.
// The zero value is not valid; use DefaultEnablement.
type SourceEnablement struct {
	Wikipedia   bool      `json:"wikipedia"`
	Search      bool      `json:"search"`
	Webometrics bool      `json:"webometrics"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultEnablement returns the configuration applied when a requester is
// seen for the first time: the low-cost primary source on, the rest off.
func DefaultEnablement() SourceEnablement {
	return SourceEnablement{
		Wikipedia:   true,
		Search:      false,
		Webometrics: false,
		UpdatedAt:   time.Now(),
	}
}

// Enabled reports whether the given source is switched on. Sources without a
// toggle (static tables, reserved sources) are never "enabled" here; the
// aggregator merges static tables unconditionally.
func (e SourceEnablement) Enabled(source SourceType) bool {
	switch source {
	case SourceWikipedia:
		return e.Wikipedia
	case SourceSearch:
		return e.Search
	case SourceWebometrics:
		return e.Webometrics
	default:
		return false
	}
}
