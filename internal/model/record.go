// Package model defines the employment snapshot record, the source
// schema, and the categorical band definitions derived from it.
package model

import "math"

// ColumnType is the semantic type of a source column.
type ColumnType string

const (
	// Categorical columns are low-cardinality strings, interned on load.
	Categorical ColumnType = "categorical"
	// Int columns are whole-number measures (employee counts, snapshot).
	Int ColumnType = "int"
	// Float columns are continuous measures; empty or malformed values
	// load as NaN.
	Float ColumnType = "float"
	// Raw columns are kept verbatim (pay and grade carry sentinel
	// strings that must survive until derivation).
	Raw ColumnType = "raw"
)

// Source column names as they appear in the snapshot header.
const (
	ColAgeBracket           = "age_bracket"
	ColAgency               = "agency"
	ColAgencyCode           = "agency_code"
	ColAgencySubelement     = "agency_subelement"
	ColAgencySubelementCode = "agency_subelement_code"
	ColPay                  = "annualized_adjusted_basic_pay"
	ColAppointmentType      = "appointment_type"
	ColAppointmentTypeCode  = "appointment_type_code"
	ColCount                = "count"
	ColCountry              = "duty_station_country"
	ColCountryCode          = "duty_station_country_code"
	ColState                = "duty_station_state"
	ColStateAbbr            = "duty_station_state_abbreviation"
	ColStateCode            = "duty_station_state_code"
	ColEducationLevel       = "education_level"
	ColEducationLevelCode   = "education_level_code"
	ColGrade                = "grade"
	ColServiceYears         = "length_of_service_years"
	ColOccGroup             = "occupational_group"
	ColOccGroupCode         = "occupational_group_code"
	ColOccSeries            = "occupational_series"
	ColOccSeriesCode        = "occupational_series_code"
	ColPayPlan              = "pay_plan"
	ColPayPlanCode          = "pay_plan_code"
	ColSnapshot             = "snapshot_yyyymm"
	ColStemOccupation       = "stem_occupation"
	ColStemOccupationType   = "stem_occupation_type"
	ColSupervisoryStatus    = "supervisory_status"
	ColSupervisoryCode      = "supervisory_status_code"
	ColWorkSchedule         = "work_schedule"
	ColWorkScheduleCode     = "work_schedule_code"
)

// Column pairs a source column name with its semantic type.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered set of columns a load must resolve. Columns not
// listed are ignored; listed columns missing from the header are fatal.
type Schema []Column

// Names returns the schema's column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// FullSchema covers every column the tabular export consumes.
func FullSchema() Schema {
	return Schema{
		{ColAgeBracket, Categorical},
		{ColAgency, Categorical},
		{ColAgencyCode, Categorical},
		{ColAgencySubelement, Categorical},
		{ColAgencySubelementCode, Categorical},
		{ColPay, Raw},
		{ColAppointmentType, Categorical},
		{ColAppointmentTypeCode, Categorical},
		{ColCount, Int},
		{ColCountry, Categorical},
		{ColCountryCode, Categorical},
		{ColState, Categorical},
		{ColStateAbbr, Categorical},
		{ColStateCode, Categorical},
		{ColEducationLevel, Categorical},
		{ColEducationLevelCode, Categorical},
		{ColGrade, Raw},
		{ColServiceYears, Float},
		{ColOccGroup, Categorical},
		{ColOccGroupCode, Categorical},
		{ColOccSeries, Categorical},
		{ColOccSeriesCode, Categorical},
		{ColPayPlan, Categorical},
		{ColPayPlanCode, Categorical},
		{ColSnapshot, Int},
		{ColStemOccupation, Categorical},
		{ColStemOccupationType, Categorical},
		{ColSupervisoryStatus, Categorical},
		{ColSupervisoryCode, Categorical},
		{ColWorkSchedule, Categorical},
		{ColWorkScheduleCode, Categorical},
	}
}

// DashboardSchema is the subset the embedded export needs.
func DashboardSchema() Schema {
	return Schema{
		{ColAgeBracket, Categorical},
		{ColAgency, Categorical},
		{ColAgencyCode, Categorical},
		{ColAgencySubelement, Categorical},
		{ColPay, Raw},
		{ColAppointmentType, Categorical},
		{ColCount, Int},
		{ColState, Categorical},
		{ColStateAbbr, Categorical},
		{ColEducationLevel, Categorical},
		{ColGrade, Raw},
		{ColServiceYears, Float},
		{ColOccGroup, Categorical},
		{ColOccSeries, Categorical},
		{ColPayPlan, Categorical},
		{ColSnapshot, Int},
		{ColStemOccupation, Categorical},
		{ColSupervisoryStatus, Categorical},
		{ColWorkSchedule, Categorical},
	}
}

// Record is one pre-aggregated bucket of employees sharing a
// combination of categorical attributes. Count is the number of
// employees the row represents, not 1.
type Record struct {
	AgeBracket           string
	Agency               string
	AgencyCode           string
	AgencySubelement     string
	AgencySubelementCode string
	PayRaw               string
	AppointmentType      string
	AppointmentTypeCode  string
	Count                int32
	Country              string
	CountryCode          string
	State                string
	StateAbbr            string
	StateCode            string
	EducationLevel       string
	EducationLevelCode   string
	GradeRaw             string
	ServiceYears         float64 // NaN when missing
	OccGroup             string
	OccGroupCode         string
	OccSeries            string
	OccSeriesCode        string
	PayPlan              string
	PayPlanCode          string
	Snapshot             int32
	StemOccupation       string
	StemOccupationType   string
	SupervisoryStatus    string
	SupervisoryCode      string
	WorkSchedule         string
	WorkScheduleCode     string

	// Derived.
	PayNumeric     float64 // NaN when missing or redacted
	GradeNumeric   float64 // NaN when missing or non-numeric
	IsRedacted     bool
	PayBand        string
	TenureCategory string
}

// HasPay reports whether the row carries a parsed pay value.
func (r *Record) HasPay() bool { return !math.IsNaN(r.PayNumeric) }

// HasGrade reports whether the row carries a parsed numeric grade.
func (r *Record) HasGrade() bool { return !math.IsNaN(r.GradeNumeric) }

// HasServiceYears reports whether length of service is present.
func (r *Record) HasServiceYears() bool { return !math.IsNaN(r.ServiceYears) }
