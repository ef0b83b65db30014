package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"status-page/internal/status"
	"status-page/internal/statuspage"
)

func sampleList() []statuspage.ComponentHistory {
	history := make([]status.Color, 20)
	for i := range history {
		history[i] = status.Gray
	}
	history[18] = status.Red
	history[19] = status.Orange
	return []statuspage.ComponentHistory{
		{Name: "api", Website: "https://api.example.com", StatusHistory: history},
	}
}

func TestWriteComponents_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeComponents(&buf, sampleList(), "table"))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "LAST 14 DAYS")
	assert.Contains(t, out, "............x!")
}

func TestWriteComponents_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeComponents(&buf, nil, ""))
	assert.Equal(t, "No components found.\n", buf.String())
}

func TestWriteComponents_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeComponents(&buf, sampleList(), "json"))

	var decoded []statuspage.ComponentHistory
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleList(), decoded)
}

func TestWriteComponents_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeComponents(&buf, sampleList(), "yaml"))
	assert.Contains(t, buf.String(), "status_history:")

	var decoded []statuspage.ComponentHistory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleList(), decoded)
}

func TestWriteComponents_UnknownFormat(t *testing.T) {
	assert.Error(t, writeComponents(&bytes.Buffer{}, sampleList(), "xml"))
}

func TestHistorySummary_Short(t *testing.T) {
	assert.Equal(t, "+x", historySummary([]status.Color{status.Green, status.Red}))
}
