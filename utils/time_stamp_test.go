package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampKnownLayouts(t *testing.T) {
	want := time.Date(2024, 7, 11, 14, 30, 5, 0, time.UTC)
	for _, in := range []string{
		"2024-07-11 14:30:05",
		"2024-07-11T14:30:05",
		"2024-07-11T14:30:05Z",
		"2024/07/11 14:30:05",
		"07/11/2024 14:30:05",
		"  2024-07-11 14:30:05 ",
	} {
		got, err := ParseTimestamp(in, "")
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}

	got, err := ParseTimestamp("2024-07-11 14:30", "")
	require.NoError(t, err)
	assert.Equal(t, want.Truncate(time.Minute), got)

	got, err = ParseTimestamp("2024-07-11", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestParseTimestampExplicitLayout(t *testing.T) {
	got, err := ParseTimestamp("11.07.2024 09:15", "02.01.2006 15:04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 11, 9, 15, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("2024-07-11 09:15:00", "02.01.2006 15:04")
	assert.Error(t, err)
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("yesterday", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"yesterday"`)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "gas_concentrations_smoothed_notitle.png", OutputName("gas_concentrations", true, false))
	assert.Equal(t, "gas_concentrations_smoothed.png", OutputName("gas_concentrations", true, true))
	assert.Equal(t, "environment_data_notitle.png", OutputName("environment_data", false, false))
	assert.Equal(t, "environment_data.png", OutputName("environment_data", false, true))
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "gas_concentrations_smoothed.csv", ExportName("gas_concentrations", true))
	assert.Equal(t, "gas_concentrations.csv", ExportName("gas_concentrations", false))
}
