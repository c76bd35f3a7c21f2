package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemasIncludeRequiredColumns(t *testing.T) {
	t.Parallel()

	full := FullSchema().Names()
	dash := DashboardSchema().Names()

	// Columns the aggregations cannot run without.
	required := []string{
		ColAgency, ColCount, ColPay, ColServiceYears,
		ColState, ColStateAbbr, ColEducationLevel, ColAgeBracket,
		ColAppointmentType, ColStemOccupation, ColSnapshot, ColGrade,
	}
	for _, name := range required {
		assert.Contains(t, full, name)
		assert.Contains(t, dash, name)
	}

	// The dashboard load is a strict subset of the full load.
	fullSet := make(map[string]struct{}, len(full))
	for _, name := range full {
		fullSet[name] = struct{}{}
	}
	for _, name := range dash {
		_, ok := fullSet[name]
		assert.True(t, ok, "dashboard column %s missing from full schema", name)
	}
	assert.Less(t, len(dash), len(full))
}

func TestSchemaTypes(t *testing.T) {
	t.Parallel()

	for _, col := range FullSchema() {
		switch col.Name {
		case ColCount, ColSnapshot:
			assert.Equal(t, Int, col.Type, col.Name)
		case ColServiceYears:
			assert.Equal(t, Float, col.Type, col.Name)
		case ColPay, ColGrade:
			// Pay and grade carry sentinel strings; they must load raw.
			assert.Equal(t, Raw, col.Type, col.Name)
		default:
			assert.Equal(t, Categorical, col.Type, col.Name)
		}
	}
}
