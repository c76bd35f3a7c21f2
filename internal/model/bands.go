package model

import (
	"math"
	"strconv"
	"strings"
)

// RedactedSentinel is the literal value the source uses for values
// withheld for privacy.
const RedactedSentinel = "REDACTED"

// StemOccupationsValue marks rows in STEM occupational series.
const StemOccupationsValue = "STEM OCCUPATIONS"

// Band is one contiguous pay range. Upper is the exclusive upper bound;
// the final band uses +Inf.
type Band struct {
	Label string
	Upper float64
}

// BandSet is an ordered partition of the pay domain plus a bucket for
// missing values. Bands must be listed in ascending Upper order.
type BandSet struct {
	Bands        []Band
	MissingLabel string
}

// DetailPayBands is the band set used by the tabular export.
func DetailPayBands() BandSet {
	return BandSet{
		Bands: []Band{
			{"< $40K", 40000},
			{"$40K-$60K", 60000},
			{"$60K-$80K", 80000},
			{"$80K-$100K", 100000},
			{"$100K-$150K", 150000},
			{"$150K-$200K", 200000},
			{"$200K+", math.Inf(1)},
		},
		MissingLabel: "Unknown/Redacted",
	}
}

// DashboardPayBands is the band set used by the embedded export.
func DashboardPayBands() BandSet {
	return BandSet{
		Bands: []Band{
			{"Under $50K", 50000},
			{"$50K-$75K", 75000},
			{"$75K-$100K", 100000},
			{"$100K-$125K", 125000},
			{"$125K-$150K", 150000},
			{"$150K-$200K", 200000},
			{"$200K+", math.Inf(1)},
		},
		MissingLabel: "Redacted",
	}
}

// Label maps a pay value to its band. NaN maps to the missing bucket.
func (b BandSet) Label(pay float64) string {
	if math.IsNaN(pay) {
		return b.MissingLabel
	}
	for _, band := range b.Bands {
		if pay < band.Upper {
			return band.Label
		}
	}
	// Unreachable while the last band is unbounded.
	return b.Bands[len(b.Bands)-1].Label
}

// Order returns the domain rank of every band label, missing bucket
// last. Used to sort distribution tables.
func (b BandSet) Order() map[string]int {
	order := make(map[string]int, len(b.Bands)+1)
	for i, band := range b.Bands {
		order[band.Label] = i
	}
	order[b.MissingLabel] = len(b.Bands)
	return order
}

// TenureUnknown is the bucket for rows with no length-of-service value.
const TenureUnknown = "Unknown"

// tenureBands partition years of service.
var tenureBands = []Band{
	{"< 1 year", 1},
	{"1-5 years", 5},
	{"5-10 years", 10},
	{"10-20 years", 20},
	{"20-30 years", 30},
	{"30+ years", math.Inf(1)},
}

// TenureCategory maps years of service to its band, NaN to Unknown.
func TenureCategory(years float64) string {
	if math.IsNaN(years) {
		return TenureUnknown
	}
	for _, band := range tenureBands {
		if years < band.Upper {
			return band.Label
		}
	}
	return tenureBands[len(tenureBands)-1].Label
}

// AgeBracketOrder is the fixed display order of age brackets.
// Unrecognised brackets sort after every listed one.
var AgeBracketOrder = []string{
	"LESS THAN 20",
	"20-24",
	"25-29",
	"30-34",
	"35-39",
	"40-44",
	"45-49",
	"50-54",
	"55-59",
	"60-64",
	"65 OR MORE",
}

// Rank builds a label→position lookup from an ordered label list.
// Labels absent from the list rank after all listed ones.
func Rank(order []string) func(string) int {
	idx := make(map[string]int, len(order))
	for i, label := range order {
		idx[label] = i
	}
	n := len(order)
	return func(label string) int {
		if i, ok := idx[label]; ok {
			return i
		}
		return n
	}
}

// Derive fills the record's computed fields. Unparsable pay or grade
// values become NaN rather than errors; the redaction flag is set only
// on an exact sentinel match.
func Derive(r *Record, bands BandSet) {
	r.PayNumeric = parseFloat(r.PayRaw)
	r.IsRedacted = r.PayRaw == RedactedSentinel
	r.GradeNumeric = parseFloat(r.GradeRaw)
	r.TenureCategory = TenureCategory(r.ServiceYears)
	r.PayBand = bands.Label(r.PayNumeric)
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	// ParseFloat accepts "inf" and "nan" spellings; a measure that is
	// not a finite number is a missing value.
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return math.NaN()
	}
	return v
}
