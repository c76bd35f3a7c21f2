package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chippeters/fedscope/internal/summary"
)

// Tabular-mode output file names.
const (
	AgencyFile       = "agency_summary.csv"
	StateFile        = "state_summary.csv"
	OccupationFile   = "occupation_summary.csv"
	DemographicsFile = "demographics_summary.csv"
	PayBandFile      = "pay_distribution.csv"
	AppointmentFile  = "appointment_summary.csv"
	OverallFile      = "overall_stats.json"
)

// WriteDetail writes every tabular summary table plus the overall
// statistics into dir, creating it if needed.
func WriteDetail(d *summary.Detail, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create output dir %s", dir)
	}

	log := zap.L()

	if err := writeAgencies(d.Agencies, filepath.Join(dir, AgencyFile)); err != nil {
		return err
	}
	log.Info("wrote agency summary", zap.Int("rows", len(d.Agencies)))

	if err := writeStates(d.States, filepath.Join(dir, StateFile)); err != nil {
		return err
	}
	log.Info("wrote state summary", zap.Int("rows", len(d.States)))

	if err := writeOccupations(d.Occupations, filepath.Join(dir, OccupationFile)); err != nil {
		return err
	}
	log.Info("wrote occupation summary", zap.Int("rows", len(d.Occupations)))

	if err := writeDemographics(d.Demographics, filepath.Join(dir, DemographicsFile)); err != nil {
		return err
	}
	log.Info("wrote demographics summary", zap.Int("rows", len(d.Demographics)))

	if err := writePayBands(d.PayBands, filepath.Join(dir, PayBandFile)); err != nil {
		return err
	}
	log.Info("wrote pay distribution", zap.Int("rows", len(d.PayBands)))

	if err := writeAppointments(d.Appointments, filepath.Join(dir, AppointmentFile)); err != nil {
		return err
	}
	log.Info("wrote appointment summary", zap.Int("rows", len(d.Appointments)))

	if err := writeOverall(d.Overall, filepath.Join(dir, OverallFile)); err != nil {
		return err
	}
	log.Info("wrote overall stats", zap.String("path", filepath.Join(dir, OverallFile)))

	return nil
}

func writeAgencies(rows []summary.AgencyRow, path string) error {
	header := []string{
		"agency", "agency_code", "count_sum",
		"pay_numeric_mean", "pay_numeric_median", "pay_numeric_std",
		"length_of_service_years_mean", "length_of_service_years_median",
		"grade_numeric_mean", "is_redacted_sum",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Agency, r.AgencyCode, intCell(r.Employees),
			numCell(r.AvgPay), numCell(r.MedianPay), numCell(r.StdPay),
			numCell(r.AvgTenure), numCell(r.MedianTenure),
			numCell(r.AvgGrade), intCell(r.RedactedRows),
		})
	}
	return writeCSV(path, header, out)
}

func writeStates(rows []summary.StateRow, path string) error {
	header := []string{
		"duty_station_state", "duty_station_state_abbreviation", "count_sum",
		"pay_numeric_mean", "pay_numeric_median", "length_of_service_years_mean",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.State, r.StateAbbr, intCell(r.Employees),
			numCell(r.AvgPay), numCell(r.MedianPay), numCell(r.AvgTenure),
		})
	}
	return writeCSV(path, header, out)
}

func writeOccupations(rows []summary.OccupationRow, path string) error {
	header := []string{
		"occupational_group", "occupational_series", "stem_occupation", "count_sum",
		"pay_numeric_mean", "pay_numeric_median",
		"length_of_service_years_mean", "grade_numeric_mean",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.OccGroup, r.OccSeries, r.StemOccupation, intCell(r.Employees),
			numCell(r.AvgPay), numCell(r.MedianPay),
			numCell(r.AvgTenure), numCell(r.AvgGrade),
		})
	}
	return writeCSV(path, header, out)
}

func writeDemographics(rows []summary.DemographicsRow, path string) error {
	header := []string{"age_bracket", "education_level", "tenure_category", "employee_count", "avg_pay"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.AgeBracket, r.EducationLevel, r.TenureCategory,
			intCell(r.Employees), numCell(r.AvgPay),
		})
	}
	return writeCSV(path, header, out)
}

func writePayBands(rows []summary.PayDistributionRow, path string) error {
	header := []string{"pay_band", "agency", "count"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.PayBand, r.Agency, intCell(r.Employees)})
	}
	return writeCSV(path, header, out)
}

func writeAppointments(rows []summary.AppointmentRow, path string) error {
	header := []string{"appointment_type", "agency", "employee_count", "avg_pay", "avg_tenure"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.AppointmentType, r.Agency, intCell(r.Employees),
			numCell(r.AvgPay), numCell(r.AvgTenure),
		})
	}
	return writeCSV(path, header, out)
}

func writeOverall(stats summary.OverallStats, path string) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal overall stats")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
