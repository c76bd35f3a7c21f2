// Package loader reads the pipe-delimited employment snapshot into
// memory, enforcing a declared schema and interning categorical values
// to keep multi-million-row files affordable.
package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chippeters/fedscope/internal/model"
)

const progressEvery = 1_000_000

// Load reads the snapshot at path, resolves the schema against the
// header row, and returns one derived Record per data row. A missing
// file or a schema column absent from the header is fatal; malformed
// numeric cells degrade to missing values and never abort the load.
func Load(ctx context.Context, path string, schema model.Schema, bands model.BandSet) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := read(ctx, f, schema, bands)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read %s", path)
	}
	return records, nil
}

func read(ctx context.Context, r io.Reader, schema model.Schema, bands model.BandSet) ([]model.Record, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 1<<20))
	reader.Comma = '|'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("loader: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "loader: read header")
	}

	binds, err := bind(schema, header)
	if err != nil {
		return nil, err
	}

	log := zap.L()
	var records []model.Record
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "loader: context cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "loader: read row")
		}

		var rec model.Record
		for _, b := range binds {
			if b.index < len(row) {
				b.set(&rec, row[b.index])
			} else {
				b.set(&rec, "")
			}
		}
		model.Derive(&rec, bands)
		records = append(records, rec)

		if len(records)%progressEvery == 0 {
			log.Info("loading snapshot", zap.Int("rows", len(records)))
		}
	}

	log.Info("snapshot loaded", zap.Int("rows", len(records)), zap.Int("columns", len(schema)))
	return records, nil
}

// binding ties a header position to a Record field setter.
type binding struct {
	index int
	set   func(*model.Record, string)
}

// intern maps each distinct value of one categorical column to a single
// canonical string.
type intern map[string]string

func (in intern) get(v string) string {
	if s, ok := in[v]; ok {
		return s
	}
	in[v] = v
	return v
}

func bind(schema model.Schema, header []string) ([]binding, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}

	binds := make([]binding, 0, len(schema))
	for _, col := range schema {
		idx, ok := pos[col.Name]
		if !ok {
			return nil, eris.Errorf("loader: required column %q not in header", col.Name)
		}
		set, err := setter(col)
		if err != nil {
			return nil, err
		}
		binds = append(binds, binding{index: idx, set: set})
	}
	return binds, nil
}

func setter(col model.Column) (func(*model.Record, string), error) {
	field, ok := fields[col.Name]
	if !ok {
		return nil, eris.Errorf("loader: no record field for column %q", col.Name)
	}

	switch col.Type {
	case model.Categorical:
		in := make(intern)
		return func(r *model.Record, v string) { *field.str(r) = in.get(v) }, nil
	case model.Raw:
		return func(r *model.Record, v string) { *field.str(r) = v }, nil
	case model.Int:
		return func(r *model.Record, v string) { *field.i32(r) = parseInt32(v) }, nil
	case model.Float:
		return func(r *model.Record, v string) { *field.f64(r) = parseFloat(v) }, nil
	default:
		return nil, eris.Errorf("loader: unknown column type %q", col.Type)
	}
}

// accessor exposes the Record field backing one source column.
type accessor struct {
	str func(*model.Record) *string
	i32 func(*model.Record) *int32
	f64 func(*model.Record) *float64
}

var fields = map[string]accessor{
	model.ColAgeBracket:           {str: func(r *model.Record) *string { return &r.AgeBracket }},
	model.ColAgency:               {str: func(r *model.Record) *string { return &r.Agency }},
	model.ColAgencyCode:           {str: func(r *model.Record) *string { return &r.AgencyCode }},
	model.ColAgencySubelement:     {str: func(r *model.Record) *string { return &r.AgencySubelement }},
	model.ColAgencySubelementCode: {str: func(r *model.Record) *string { return &r.AgencySubelementCode }},
	model.ColPay:                  {str: func(r *model.Record) *string { return &r.PayRaw }},
	model.ColAppointmentType:      {str: func(r *model.Record) *string { return &r.AppointmentType }},
	model.ColAppointmentTypeCode:  {str: func(r *model.Record) *string { return &r.AppointmentTypeCode }},
	model.ColCount:                {i32: func(r *model.Record) *int32 { return &r.Count }},
	model.ColCountry:              {str: func(r *model.Record) *string { return &r.Country }},
	model.ColCountryCode:          {str: func(r *model.Record) *string { return &r.CountryCode }},
	model.ColState:                {str: func(r *model.Record) *string { return &r.State }},
	model.ColStateAbbr:            {str: func(r *model.Record) *string { return &r.StateAbbr }},
	model.ColStateCode:            {str: func(r *model.Record) *string { return &r.StateCode }},
	model.ColEducationLevel:       {str: func(r *model.Record) *string { return &r.EducationLevel }},
	model.ColEducationLevelCode:   {str: func(r *model.Record) *string { return &r.EducationLevelCode }},
	model.ColGrade:                {str: func(r *model.Record) *string { return &r.GradeRaw }},
	model.ColServiceYears:         {f64: func(r *model.Record) *float64 { return &r.ServiceYears }},
	model.ColOccGroup:             {str: func(r *model.Record) *string { return &r.OccGroup }},
	model.ColOccGroupCode:         {str: func(r *model.Record) *string { return &r.OccGroupCode }},
	model.ColOccSeries:            {str: func(r *model.Record) *string { return &r.OccSeries }},
	model.ColOccSeriesCode:        {str: func(r *model.Record) *string { return &r.OccSeriesCode }},
	model.ColPayPlan:              {str: func(r *model.Record) *string { return &r.PayPlan }},
	model.ColPayPlanCode:          {str: func(r *model.Record) *string { return &r.PayPlanCode }},
	model.ColSnapshot:             {i32: func(r *model.Record) *int32 { return &r.Snapshot }},
	model.ColStemOccupation:       {str: func(r *model.Record) *string { return &r.StemOccupation }},
	model.ColStemOccupationType:   {str: func(r *model.Record) *string { return &r.StemOccupationType }},
	model.ColSupervisoryStatus:    {str: func(r *model.Record) *string { return &r.SupervisoryStatus }},
	model.ColSupervisoryCode:      {str: func(r *model.Record) *string { return &r.SupervisoryCode }},
	model.ColWorkSchedule:         {str: func(r *model.Record) *string { return &r.WorkSchedule }},
	model.ColWorkScheduleCode:     {str: func(r *model.Record) *string { return &r.WorkScheduleCode }},
}

func parseInt32(s string) int32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
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
