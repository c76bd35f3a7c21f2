//go:build !integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chippeters/fedscope/internal/config"
)

const fixtureSnapshot = "" +
	"age_bracket|agency|agency_code|agency_subelement|agency_subelement_code|annualized_adjusted_basic_pay|appointment_type|appointment_type_code|count|duty_station_country|duty_station_country_code|duty_station_state|duty_station_state_abbreviation|duty_station_state_code|education_level|education_level_code|grade|length_of_service_years|occupational_group|occupational_group_code|occupational_series|occupational_series_code|pay_plan|pay_plan_code|snapshot_yyyymm|stem_occupation|stem_occupation_type|supervisory_status|supervisory_status_code|work_schedule|work_schedule_code\n" +
	"25-29|AGENCY A|AA00|SUB A|SA00|50000|COMPETITIVE|10|10|UNITED STATES|US|TEXAS|TX|48|BACHELORS|13|09|4.5|WHITE COLLAR|01|IT MANAGEMENT|2210|GENERAL SCHEDULE|GS|202511|STEM OCCUPATIONS|T|NON-SUPERVISOR|8|FULL-TIME|F\n" +
	"30-34|AGENCY A|AA00|SUB A|SA00|70000|COMPETITIVE|10|20|UNITED STATES|US|TEXAS|TX|48|MASTERS|17|12|9.1|WHITE COLLAR|01|IT MANAGEMENT|2210|GENERAL SCHEDULE|GS|202511|STEM OCCUPATIONS|T|SUPERVISOR|2|FULL-TIME|F\n" +
	"45-49|AGENCY B|BB00|SUB B|SB00|REDACTED|EXCEPTED|30|5|UNITED STATES|US|OHIO|OH|39|HIGH SCHOOL|04|ES||BLUE COLLAR|02|MAINTENANCE|4749|FEDERAL WAGE SYSTEM|WG|202511|ALL OTHER OCCUPATIONS|N|NON-SUPERVISOR|8|PART-TIME|P\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employment.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixtureSnapshot), 0644))
	return path
}

func TestProcessCmd_Metadata(t *testing.T) {
	assert.Equal(t, "process", processCmd.Use)
	assert.NotEmpty(t, processCmd.Short)

	require.NotNil(t, processCmd.Flags().Lookup("input"))
	require.NotNil(t, processCmd.Flags().Lookup("out"))
}

func TestProcessCmd_MissingInput(t *testing.T) {
	cfg = &config.Config{}
	processCmd.SetContext(context.Background())

	oldInput, oldOut := processInput, processOut
	defer func() { processInput, processOut = oldInput, oldOut }()
	processInput = "/nonexistent/employment.txt"
	processOut = t.TempDir()

	err := processCmd.RunE(processCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employment.txt")
}

func TestProcessCmd_WritesTables(t *testing.T) {
	cfg = &config.Config{}
	processCmd.SetContext(context.Background())

	outDir := filepath.Join(t.TempDir(), "processed")
	oldInput, oldOut := processInput, processOut
	defer func() { processInput, processOut = oldInput, oldOut }()
	processInput = writeFixture(t)
	processOut = outDir

	require.NoError(t, processCmd.RunE(processCmd, nil))

	for _, name := range []string{
		"agency_summary.csv", "state_summary.csv", "occupation_summary.csv",
		"demographics_summary.csv", "pay_distribution.csv",
		"appointment_summary.csv", "overall_stats.json",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "overall_stats.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"total_employees\": 35")
	assert.Contains(t, string(data), "\"snapshot_date\": 202511")
}
