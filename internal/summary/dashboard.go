package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/chippeters/fedscope/internal/model"
	"github.com/chippeters/fedscope/internal/stats"
)

// Dashboard is the embedded payload serialised into data.js. Field
// order here fixes the key order of the emitted JSON object.
type Dashboard struct {
	Overall         DashboardOverall       `json:"overall"`
	Agencies        []DashboardAgency      `json:"agencies"`
	AllAgencies     []DashboardAgency      `json:"allAgencies"`
	States          []DashboardState       `json:"states"`
	PayDistribution []DashboardBand        `json:"payDistribution"`
	Education       []DashboardEducation   `json:"education"`
	Appointments    []DashboardAppointment `json:"appointments"`
	AgeBrackets     []DashboardAge         `json:"ageBrackets"`
	Stem            []DashboardStem        `json:"stem"`
	Supervisory     []DashboardSupervisory `json:"supervisory"`
}

// topAgencies is how many agency rows the fast-render table keeps.
const topAgencies = 50

// DashboardOverall is the headline statistics card.
type DashboardOverall struct {
	TotalEmployees int64    `json:"total_employees"`
	TotalAgencies  int      `json:"total_agencies"`
	TotalStates    int      `json:"total_states"`
	AvgSalary      *float64 `json:"avg_salary"`
	MedianSalary   *float64 `json:"median_salary"`
	AvgTenure      *float64 `json:"avg_tenure"`
	PctStem        *float64 `json:"pct_stem"`
	Snapshot       string   `json:"snapshot"`
}

// DashboardAgency is one agency row of the embedded payload.
type DashboardAgency struct {
	Agency    string   `json:"agency"`
	Employees int64    `json:"employees"`
	AvgPay    *float64 `json:"avg_pay"`
	MedianPay *float64 `json:"median_pay"`
	AvgTenure *float64 `json:"avg_tenure"`
	AvgGrade  *float64 `json:"avg_grade"`
}

// DashboardState is one duty-station state row.
type DashboardState struct {
	State     string   `json:"duty_station_state"`
	StateAbbr string   `json:"duty_station_state_abbreviation"`
	Employees int64    `json:"employees"`
	AvgPay    *float64 `json:"avg_pay"`
	MedianPay *float64 `json:"median_pay"`
	AvgTenure *float64 `json:"avg_tenure"`
}

// DashboardBand is one pay band of the distribution chart.
type DashboardBand struct {
	Band      string `json:"band"`
	Employees int64  `json:"employees"`
}

// DashboardEducation is one education level row.
type DashboardEducation struct {
	EducationLevel string   `json:"education_level"`
	Employees      int64    `json:"employees"`
	AvgPay         *float64 `json:"avg_pay"`
}

// DashboardAppointment is one appointment type row.
type DashboardAppointment struct {
	AppointmentType string   `json:"appointment_type"`
	Employees       int64    `json:"employees"`
	AvgPay          *float64 `json:"avg_pay"`
	AvgTenure       *float64 `json:"avg_tenure"`
}

// DashboardAge is one age bracket row.
type DashboardAge struct {
	AgeBracket string   `json:"age_bracket"`
	Employees  int64    `json:"employees"`
	AvgPay     *float64 `json:"avg_pay"`
	AvgTenure  *float64 `json:"avg_tenure"`
}

// DashboardStem is the STEM versus non-STEM comparison row.
type DashboardStem struct {
	StemOccupation string   `json:"stem_occupation"`
	Employees      int64    `json:"employees"`
	AvgPay         *float64 `json:"avg_pay"`
	AvgTenure      *float64 `json:"avg_tenure"`
}

// DashboardSupervisory is one supervisory status row.
type DashboardSupervisory struct {
	SupervisoryStatus string   `json:"supervisory_status"`
	Employees         int64    `json:"employees"`
	AvgPay            *float64 `json:"avg_pay"`
}

// BuildDashboard computes the embedded payload from derived records.
// Records must have been derived under DashboardPayBands.
func BuildDashboard(records []model.Record) *Dashboard {
	agencies := dashboardAgencies(records)
	states := dashboardStates(records)

	top := agencies
	if len(top) > topAgencies {
		top = top[:topAgencies]
	}

	return &Dashboard{
		Overall:         dashboardOverall(records, agencies, states),
		Agencies:        top,
		AllAgencies:     agencies,
		States:          states,
		PayDistribution: dashboardPayDistribution(records),
		Education:       dashboardEducation(records),
		Appointments:    dashboardAppointments(records),
		AgeBrackets:     dashboardAgeBrackets(records),
		Stem:            dashboardStem(records),
		Supervisory:     dashboardSupervisory(records),
	}
}

func dashboardAgencies(records []model.Record) []DashboardAgency {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.Agency} })

	rows := make([]DashboardAgency, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardAgency{
			Agency:    g.key[0],
			Employees: g.employees,
			AvgPay:    meanOf(g.pay, 2),
			MedianPay: medianOf(g.pay, 2),
			AvgTenure: meanOf(g.tenure, 2),
			AvgGrade:  meanOf(g.grade, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func dashboardStates(records []model.Record) []DashboardState {
	groups := groupBy(records, func(r *model.Record) []string {
		return []string{r.State, r.StateAbbr}
	})

	rows := make([]DashboardState, 0, len(groups))
	for _, g := range groups {
		// A withheld duty station is noise on a map view.
		if g.key[0] == model.RedactedSentinel {
			continue
		}
		rows = append(rows, DashboardState{
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

func dashboardPayDistribution(records []model.Record) []DashboardBand {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.PayBand} })

	rows := make([]DashboardBand, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardBand{Band: g.key[0], Employees: g.employees})
	}

	rank := model.DashboardPayBands().Order()
	bandRank := func(label string) int {
		if i, ok := rank[label]; ok {
			return i
		}
		return len(rank)
	}
	sort.SliceStable(rows, func(i, j int) bool { return bandRank(rows[i].Band) < bandRank(rows[j].Band) })
	return rows
}

func dashboardEducation(records []model.Record) []DashboardEducation {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.EducationLevel} })

	rows := make([]DashboardEducation, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardEducation{
			EducationLevel: g.key[0],
			Employees:      g.employees,
			AvgPay:         meanOf(g.pay, 2),
		})
	}
	// Highest-paying levels first; levels with no pay data last.
	sort.SliceStable(rows, func(i, j int) bool {
		switch {
		case rows[i].AvgPay == nil:
			return false
		case rows[j].AvgPay == nil:
			return true
		default:
			return *rows[i].AvgPay > *rows[j].AvgPay
		}
	})
	return rows
}

func dashboardAppointments(records []model.Record) []DashboardAppointment {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.AppointmentType} })

	rows := make([]DashboardAppointment, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardAppointment{
			AppointmentType: g.key[0],
			Employees:       g.employees,
			AvgPay:          meanOf(g.pay, 2),
			AvgTenure:       meanOf(g.tenure, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func dashboardAgeBrackets(records []model.Record) []DashboardAge {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.AgeBracket} })

	rows := make([]DashboardAge, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardAge{
			AgeBracket: g.key[0],
			Employees:  g.employees,
			AvgPay:     meanOf(g.pay, 2),
			AvgTenure:  meanOf(g.tenure, 2),
		})
	}

	rank := model.Rank(model.AgeBracketOrder)
	sort.SliceStable(rows, func(i, j int) bool { return rank(rows[i].AgeBracket) < rank(rows[j].AgeBracket) })
	return rows
}

func dashboardStem(records []model.Record) []DashboardStem {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.StemOccupation} })

	rows := make([]DashboardStem, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardStem{
			StemOccupation: g.key[0],
			Employees:      g.employees,
			AvgPay:         meanOf(g.pay, 2),
			AvgTenure:      meanOf(g.tenure, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func dashboardSupervisory(records []model.Record) []DashboardSupervisory {
	groups := groupBy(records, func(r *model.Record) []string { return []string{r.SupervisoryStatus} })

	rows := make([]DashboardSupervisory, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, DashboardSupervisory{
			SupervisoryStatus: g.key[0],
			Employees:         g.employees,
			AvgPay:            meanOf(g.pay, 2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Employees > rows[j].Employees })
	return rows
}

func dashboardOverall(records []model.Record, agencies []DashboardAgency, states []DashboardState) DashboardOverall {
	var (
		total    int64
		stem     int64
		pay      []float64
		tenure   []float64
		snapshot int32
	)

	for i := range records {
		r := &records[i]
		total += int64(r.Count)
		if r.StemOccupation == model.StemOccupationsValue {
			stem += int64(r.Count)
		}
		if r.HasPay() {
			pay = append(pay, r.PayNumeric)
		}
		if r.HasServiceYears() {
			tenure = append(tenure, r.ServiceYears)
		}
		if snapshot == 0 {
			snapshot = r.Snapshot
		}
	}

	var pctStem *float64
	if total > 0 {
		pctStem = finite(stats.Round(float64(stem)/float64(total)*100, 1))
	}

	return DashboardOverall{
		TotalEmployees: total,
		TotalAgencies:  len(agencies),
		TotalStates:    len(states),
		AvgSalary:      meanOf(pay, 0),
		MedianSalary:   medianOf(pay, 0),
		AvgTenure:      meanOf(tenure, 1),
		PctStem:        pctStem,
		Snapshot:       SnapshotLabel(snapshot),
	}
}

// SnapshotLabel renders a yyyymm snapshot as a human label, e.g.
// 202511 → "November 2025". Out-of-range values render empty.
func SnapshotLabel(yyyymm int32) string {
	year := int(yyyymm) / 100
	month := int(yyyymm) % 100
	if year < 1900 || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
