package binning

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type PredicateKind string

const (
	PredicateEquals PredicateKind = "equals"
	PredicateRange  PredicateKind = "range"
)

// Predicate selects the table cells a style applies to.
type Predicate struct {
	Column string
	Kind   PredicateKind

	// Equals
	Value float64

	// Range: Low <= v < High, or Low <= v <= High when ClosedTop.
	Low       float64
	High      float64
	ClosedTop bool
}

func Equals(column string, v float64) Predicate {
	return Predicate{Column: column, Kind: PredicateEquals, Value: v}
}

func Range(column string, lo, hi float64, closedTop bool) Predicate {
	return Predicate{Column: column, Kind: PredicateRange, Low: lo, High: hi, ClosedTop: closedTop}
}

func (p Predicate) Matches(v float64) bool {
	switch p.Kind {
	case PredicateEquals:
		return v == p.Value
	case PredicateRange:
		if v < p.Low {
			return false
		}
		if p.ClosedTop {
			return v <= p.High
		}
		return v < p.High
	default:
		return false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Query renders the predicate in the table filter-query syntax.
func (p Predicate) Query() string {
	col := "{" + p.Column + "}"
	switch p.Kind {
	case PredicateEquals:
		return fmt.Sprintf("%s = %s", col, formatNumber(p.Value))
	case PredicateRange:
		op := "<"
		if p.ClosedTop {
			op = "<="
		}
		return fmt.Sprintf("%s >= %s && %s %s %s", col, formatNumber(p.Low), col, op, formatNumber(p.High))
	default:
		return ""
	}
}

func (p Predicate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FilterQuery string `json:"filter_query"`
		ColumnID    string `json:"column_id"`
	}{p.Query(), p.Column})
}

// StyleRule pairs a predicate with the visual style of matching cells.
type StyleRule struct {
	If              Predicate `json:"if"`
	Background      string    `json:"background,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	Color           string    `json:"color,omitempty"`
	PaddingTop      int       `json:"paddingTop,omitempty"`
	PaddingBottom   int       `json:"paddingBottom,omitempty"`
}

// Match returns the first rule whose predicate accepts v.
func Match(rules []StyleRule, v float64) (StyleRule, bool) {
	for _, r := range rules {
		if r.If.Matches(v) {
			return r, true
		}
	}
	return StyleRule{}, false
}
