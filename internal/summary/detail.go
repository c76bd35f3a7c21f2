package summary

import (
	"sort"

	"github.com/chippeters/fedscope/internal/model"
	"github.com/chippeters/fedscope/internal/stats"
)

// Detail holds the tabular-mode summary tables and overall statistics.
type Detail struct {
	Agencies     []AgencyRow
	States       []StateRow
	Occupations  []OccupationRow
	Demographics []DemographicsRow
	PayBands     []PayDistributionRow
	Appointments []AppointmentRow
	Overall      OverallStats
}

// AgencyRow summarises one (agency, agency_code) combination.
type AgencyRow struct {
	Agency       string
	AgencyCode   string
	Employees    int64
	AvgPay       *float64
	MedianPay    *float64
	StdPay       *float64
	AvgTenure    *float64
	MedianTenure *float64
	AvgGrade     *float64
	RedactedRows int64
}

// StateRow summarises one duty station state.
type StateRow struct {
	State     string
	StateAbbr string
	Employees int64
	AvgPay    *float64
	MedianPay *float64
	AvgTenure *float64
}

// OccupationRow summarises one occupational series within a group.
type OccupationRow struct {
	OccGroup       string
	OccSeries      string
	StemOccupation string
	Employees      int64
	AvgPay         *float64
	MedianPay      *float64
	AvgTenure      *float64
	AvgGrade       *float64
}

// DemographicsRow summarises one age/education/tenure combination.
type DemographicsRow struct {
	AgeBracket     string
	EducationLevel string
	TenureCategory string
	Employees      int64
	AvgPay         *float64
}

// PayDistributionRow is an employee count for one band within an agency.
type PayDistributionRow struct {
	PayBand   string
	Agency    string
	Employees int64
}

// AppointmentRow summarises one appointment type within an agency.
type AppointmentRow struct {
	AppointmentType string
	Agency          string
	Employees       int64
	AvgPay          *float64
	AvgTenure       *float64
}

// OverallStats is the scalar record written to overall_stats.json.
type OverallStats struct {
	TotalEmployees int64    `json:"total_employees"`
	TotalAgencies  int      `json:"total_agencies"`
	TotalStates    int      `json:"total_states"`
	AvgSalary      *float64 `json:"avg_salary"`
	MedianSalary   *float64 `json:"median_salary"`
	AvgTenure      *float64 `json:"avg_tenure"`
	PctRedacted    *float64 `json:"pct_redacted"`
	SnapshotDate   int32    `json:"snapshot_date"`
}

// BuildDetail computes every tabular-mode table from derived records.
// Records must have been derived under DetailPayBands.
func BuildDetail(records []model.Record) *Detail {
	return &Detail{
		Agencies:     agencySummary(records),
		States:       stateSummary(records),
		Occupations:  occupationSummary(records),
		Demographics: demographicsSummary(records),
		PayBands:     payDistribution(records),
		Appointments: appointmentSummary(records),
		Overall:      overallStats(records),
	}
}

func agencySummary(records []model.Record) []AgencyRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.Agency, r.AgencyCode}
	})

	rows := make([]AgencyRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, AgencyRow{
			Agency:       g.key[0],
			AgencyCode:   g.key[1],
			Employees:    g.employees,
			AvgPay:       meanOf(g.pay, 2),
			MedianPay:    medianOf(g.pay, 2),
			StdPay:       stdOf(g.pay, 2),
			AvgTenure:    meanOf(g.tenure, 2),
			MedianTenure: medianOf(g.tenure, 2),
			AvgGrade:     meanOf(g.grade, 2),
			RedactedRows: g.redacted,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func stateSummary(records []model.Record) []StateRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.State, r.StateAbbr}
	})

	rows := make([]StateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, StateRow{
			State:     g.key[0],
			StateAbbr: g.key[1],
			Employees: g.employees,
			AvgPay:    meanOf(g.pay, 2),
			MedianPay: medianOf(g.pay, 2),
			AvgTenure: meanOf(g.tenure, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func occupationSummary(records []model.Record) []OccupationRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.OccGroup, r.OccSeries, r.StemOccupation}
	})

	rows := make([]OccupationRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, OccupationRow{
			OccGroup:       g.key[0],
			OccSeries:      g.key[1],
			StemOccupation: g.key[2],
			Employees:      g.employees,
			AvgPay:         meanOf(g.pay, 2),
			MedianPay:      medianOf(g.pay, 2),
			AvgTenure:      meanOf(g.tenure, 2),
			AvgGrade:       meanOf(g.grade, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func demographicsSummary(records []model.Record) []DemographicsRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.AgeBracket, r.EducationLevel, r.TenureCategory}
	})

	rows := make([]DemographicsRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DemographicsRow{
			AgeBracket:     g.key[0],
			EducationLevel: g.key[1],
			TenureCategory: g.key[2],
			Employees:      g.employees,
			AvgPay:         meanOf(g.pay, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func payDistribution(records []model.Record) []PayDistributionRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.PayBand, r.Agency}
	})

	rows := make([]PayDistributionRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, PayDistributionRow{
			PayBand:   g.key[0],
			Agency:    g.key[1],
			Employees: g.employees,
		})
	}

	rank := model.DetailPayBands().Order()
	bandRank := func(label string) int {
		if i, ok := rank[label]; ok {
			return i
		}
		return len(rank)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := bandRank(rows[i].PayBand), bandRank(rows[j].PayBand)
		if ri != rj {
			return ri < rj
		}
		return rows[i].Agency < rows[j].Agency
	})
	return rows
}

func appointmentSummary(records []model.Record) []AppointmentRow {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.AppointmentType, r.Agency}
	})

	rows := make([]AppointmentRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, AppointmentRow{
			AppointmentType: g.key[0],
			Agency:          g.key[1],
			Employees:       g.employees,
			AvgPay:          meanOf(g.pay, 2),
			AvgTenure:       meanOf(g.tenure, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func overallStats(records []model.Record) OverallStats {
	var (
		total    int64
		redacted int64
		pay      []float64
		tenure   []float64
		agencies = map[string]struct{}{}
		states   = map[string]struct{}{}
		snapshot int32
	)

	for i := range records {
		r := &records[i]
		total += int64(r.Count)
		if r.IsRedacted {
			redacted++
		}
		if r.HasPay() {
			pay = append(pay, r.PayNumeric)
		}
		if r.HasServiceYears() {
			tenure = append(tenure, r.ServiceYears)
		}
		agencies[r.Agency] = struct{}{}
		states[r.State] = struct{}{}
		if snapshot == 0 {
			snapshot = r.Snapshot
		}
	}

	var pctRedacted *float64
	if len(records) > 0 {
		pctRedacted = finite(stats.Round(float64(redacted)/float64(len(records))*100, 2))
	}

	return OverallStats{
		TotalEmployees: total,
		TotalAgencies:  len(agencies),
		TotalStates:    len(states),
		AvgSalary:      meanOf(pay, 2),
		MedianSalary:   medianOf(pay, 2),
		AvgTenure:      meanOf(tenure, 2),
		PctRedacted:    pctRedacted,
		SnapshotDate:   snapshot,
	}
}
