//go:build !integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chippeters/fedscope/internal/config"
)

func TestDashboardCmd_Metadata(t *testing.T) {
	assert.Equal(t, "dashboard", dashboardCmd.Use)
	assert.NotEmpty(t, dashboardCmd.Short)

	require.NotNil(t, dashboardCmd.Flags().Lookup("input"))
	require.NotNil(t, dashboardCmd.Flags().Lookup("out"))
}

func TestDashboardCmd_MissingInput(t *testing.T) {
	cfg = &config.Config{}
	dashboardCmd.SetContext(context.Background())

	oldInput, oldOut := dashboardInput, dashboardOut
	defer func() { dashboardInput, dashboardOut = oldInput, oldOut }()
	dashboardInput = "/nonexistent/employment.txt"
	dashboardOut = filepath.Join(t.TempDir(), "data.js")

	err := dashboardCmd.RunE(dashboardCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employment.txt")
}

func TestDashboardCmd_WritesPayload(t *testing.T) {
	cfg = &config.Config{}
	dashboardCmd.SetContext(context.Background())

	outFile := filepath.Join(t.TempDir(), "data.js")
	oldInput, oldOut := dashboardInput, dashboardOut
	defer func() { dashboardInput, dashboardOut = oldInput, oldOut }()
	dashboardInput = writeFixture(t)
	dashboardOut = outFile

	require.NoError(t, dashboardCmd.RunE(dashboardCmd, nil))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "const DASHBOARD_DATA = {"))
	assert.True(t, strings.HasSuffix(content, ";\n"))
	assert.Contains(t, content, `"total_employees":35`)
	assert.Contains(t, content, `"snapshot":"November 2025"`)
	assert.Contains(t, content, `"agency":"AGENCY A"`)
}
