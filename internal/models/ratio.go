package models

import "strconv"

// Ratio is a demographic ratio in [0,1] or an explicit unknown marker.
// Unknown is never interchangeable with 0.0: arithmetic over a Ratio must
// check Known first.
type Ratio struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// KnownRatio returns a ratio carrying a value.
func KnownRatio(v float64) Ratio {
	return Ratio{Value: v, Known: true}
}

// UnknownRatio returns the explicit unknown marker.
func UnknownRatio() Ratio {
	return Ratio{}
}

// String renders the ratio for tabular output, "unknown" on a miss.
func (r Ratio) String() string {
	if !r.Known {
		return "unknown"
	}

	return strconv.FormatFloat(r.Value, 'f', 4, 64)
}

// Score is an optional numeric score. Records whose ratio (or, for public
// schools, enrollment) is unknown stay unscored rather than defaulting to a
// number.
type Score struct {
	Value  float64 `json:"value"`
	Scored bool    `json:"scored"`
}

// NewScore returns a scored value.
func NewScore(v float64) Score {
	return Score{Value: v, Scored: true}
}

// Unscored returns the explicit unscored marker.
func Unscored() Score {
	return Score{}
}

// String renders the score for tabular output, "unscored" when absent.
func (s Score) String() string {
	if !s.Scored {
		return "unscored"
	}

	return strconv.FormatFloat(s.Value, 'f', 4, 64)
}
