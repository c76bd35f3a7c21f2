// Package summary turns derived snapshot records into the aggregate
// tables and overall statistics the exports consume. Grouping is over
// observed key combinations only; the full cross-product of category
// levels is never materialised.
package summary

import (
	"math"
	"strings"

	"github.com/chippeters/fedscope/internal/model"
	"github.com/chippeters/fedscope/internal/stats"
)

// keySep joins composite key parts inside the accumulator map. The
// unit separator cannot appear in source values.
const keySep = "\x1f"

// group accumulates one observed grouping-key combination.
type group struct {
	key       []string
	employees int64
	redacted  int64 // source rows flagged redacted, not weighted by count

	// Per-row samples of the non-missing measures. Medians are exact,
	// so samples are retained; group cardinality stays small enough
	// that this is cheap relative to the row set.
	pay    []float64
	tenure []float64
	grade  []float64
}

func (g *group) add(r *model.Record) {
	g.employees += int64(r.Count)
	if r.IsRedacted {
		g.redacted++
	}
	if r.HasPay() {
		g.pay = append(g.pay, r.PayNumeric)
	}
	if r.HasServiceYears() {
		g.tenure = append(g.tenure, r.ServiceYears)
	}
	if r.HasGrade() {
		g.grade = append(g.grade, r.GradeNumeric)
	}
}

// groupBy accumulates records under the composite key keyFn produces.
// Groups come back in first-observation order; callers apply their own
// sort. Groups whose summed count is zero or negative are dropped.
func groupBy(records []model.Record, keyFn func(*model.Record) []string) []*group {
	byKey := make(map[string]*group)
	var order []*group

	for i := range records {
		r := &records[i]
		key := keyFn(r)
		joined := strings.Join(key, keySep)

		g, ok := byKey[joined]
		if !ok {
			g = &group{key: key}
			byKey[joined] = g
			order = append(order, g)
		}
		g.add(r)
	}

	kept := order[:0]
	for _, g := range order {
		if g.employees > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}

// meanOf, medianOf, and stdOf round to the given places and return nil
// for empty samples, which exports render as empty CSV cells or JSON
// nulls.
func meanOf(xs []float64, places int) *float64 {
	return finite(stats.Round(stats.Mean(xs), places))
}

func medianOf(xs []float64, places int) *float64 {
	return finite(stats.Round(stats.Median(xs), places))
}

func stdOf(xs []float64, places int) *float64 {
	return finite(stats.Round(stats.StdDev(xs), places))
}

// finite drops non-finite aggregates; Inf would make json.Marshal fail
// the whole export.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
