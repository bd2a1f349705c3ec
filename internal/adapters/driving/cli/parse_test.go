package cli

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

func TestParseCmd_RequiresOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "parse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestParseCmd_JSON(t *testing.T) {
	reports := setupTestServices(t)

	out, err := execute(t, "", "parse", fixturePath)
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "dash_report.txt", report.FileName)
	assert.Equal(t, "REDDY, VISHWANAUTH", domain.Deref(report.Header.DriverName))
	assert.Len(t, report.Policies, 3)

	stored, err := reports.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestParseCmd_YAML(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "parse", fixturePath, "--format", "yaml", "--name", "client.pdf")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "client.pdf", decoded["file_name"])
}

func TestParseCmd_Text(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "parse", fixturePath, "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Driver:  REDDY, VISHWANAUTH")
	assert.Contains(t, out, "Policies (3):")
	assert.Contains(t, out, "Claims (2):")
	assert.Contains(t, out, "earliest term:")
}

func TestParseCmd_Save(t *testing.T) {
	reports := setupTestServices(t)

	id := saveFixture(t)

	stored, err := reports.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "dash_report.txt", stored.FileName)
}

func TestParseCmd_Errors(t *testing.T) {
	setupTestServices(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "parse", "testdata/nope.txt")
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := execute(t, "", "parse", "parse_test.go")
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "", "parse", fixturePath, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}
