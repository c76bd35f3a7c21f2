package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chippeters/fedscope/internal/model"
)

// miniSchema keeps fixture files small.
func miniSchema() model.Schema {
	return model.Schema{
		{Name: model.ColAgency, Type: model.Categorical},
		{Name: model.ColPay, Type: model.Raw},
		{Name: model.ColCount, Type: model.Int},
		{Name: model.ColServiceYears, Type: model.Float},
	}
}

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employment.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, ""+
		"agency|annualized_adjusted_basic_pay|count|length_of_service_years\n"+
		"AGENCY A|50000|10|4.5\n"+
		"AGENCY A|REDACTED|20|12\n"+
		"AGENCY B|123456.78|7|\n")

	records, err := Load(context.Background(), path, miniSchema(), model.DashboardPayBands())
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "AGENCY A", first.Agency)
	assert.Equal(t, int32(10), first.Count)
	assert.InDelta(t, 50000, first.PayNumeric, 0.001)
	assert.InDelta(t, 4.5, first.ServiceYears, 0.001)
	assert.False(t, first.IsRedacted)
	assert.Equal(t, "$50K-$75K", first.PayBand)
	assert.Equal(t, "1-5 years", first.TenureCategory)

	second := records[1]
	assert.True(t, second.IsRedacted)
	assert.False(t, second.HasPay())
	assert.Equal(t, "Redacted", second.PayBand)
	assert.Equal(t, "10-20 years", second.TenureCategory)

	third := records[2]
	assert.Equal(t, "AGENCY B", third.Agency)
	assert.False(t, third.HasServiceYears())
	assert.Equal(t, "Unknown", third.TenureCategory)
	assert.Equal(t, "$100K-$125K", third.PayBand)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), miniSchema(), model.DetailPayBands())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.txt")
}

func TestLoadMissingColumn(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "agency|count\nAGENCY A|10\n")

	_, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annualized_adjusted_basic_pay")
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "")

	_, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestLoadMalformedNumericCells(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, ""+
		"agency|annualized_adjusted_basic_pay|count|length_of_service_years\n"+
		"AGENCY A|oops|bad|not-a-number\n")

	records, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.NoError(t, err, "malformed cells degrade, they never abort the run")
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, int32(0), r.Count)
	assert.False(t, r.HasPay())
	assert.False(t, r.HasServiceYears())
	assert.False(t, r.IsRedacted)
}

func TestLoadNonFiniteCells(t *testing.T) {
	t.Parallel()

	// strconv.ParseFloat accepts "inf"; such cells must load as
	// missing, not as values that later break JSON serialisation.
	path := writeSnapshot(t, ""+
		"agency|annualized_adjusted_basic_pay|count|length_of_service_years\n"+
		"AGENCY A|inf|10|-inf\n")

	records, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.False(t, r.HasPay())
	assert.False(t, r.HasServiceYears())
	assert.Equal(t, "Unknown/Redacted", r.PayBand)
	assert.Equal(t, "Unknown", r.TenureCategory)
}

func TestLoadShortRow(t *testing.T) {
	t.Parallel()

	// Rows with fewer fields than the header load with trailing columns
	// empty rather than failing the file.
	path := writeSnapshot(t, ""+
		"agency|annualized_adjusted_basic_pay|count|length_of_service_years\n"+
		"AGENCY A|50000\n")

	records, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int32(0), records[0].Count)
	assert.False(t, records[0].HasServiceYears())
}

func TestLoadHeaderOrderIndependent(t *testing.T) {
	t.Parallel()

	// Columns resolve by name, not position.
	path := writeSnapshot(t, ""+
		"count|length_of_service_years|agency|annualized_adjusted_basic_pay\n"+
		"3|1.5|AGENCY C|80000\n")

	records, err := Load(context.Background(), path, miniSchema(), model.DetailPayBands())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AGENCY C", records[0].Agency)
	assert.Equal(t, int32(3), records[0].Count)
	assert.InDelta(t, 80000, records[0].PayNumeric, 0.001)
}

func TestLoadCancelledContext(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, ""+
		"agency|annualized_adjusted_basic_pay|count|length_of_service_years\n"+
		"AGENCY A|50000|10|4.5\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, path, miniSchema(), model.DetailPayBands())
	assert.Error(t, err)
}

func TestInternReusesValues(t *testing.T) {
	t.Parallel()

	in := make(intern)
	a := in.get("AGENCY A")
	b := in.get("AGENCY A")
	assert.Equal(t, a, b)
	assert.Len(t, in, 1)

	in.get("AGENCY B")
	assert.Len(t, in, 2)
}
