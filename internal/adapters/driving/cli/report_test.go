package cli

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

func TestReportListCmd(t *testing.T) {
	setupTestServices(t)

	t.Run("empty", func(t *testing.T) {
		out, err := execute(t, "", "report", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No reports stored.")
	})

	id := saveFixture(t)

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "", "report", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "DRIVER")
		assert.Contains(t, out, shortID(id))
		assert.Contains(t, out, "REDDY, VISHWANAUTH")
		assert.Contains(t, out, "dash_report.txt")
	})

	t.Run("json omits full text", func(t *testing.T) {
		out, err := execute(t, "", "reports", "list", "--format", "json")
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, id, decoded[0]["_id"])
		assert.NotContains(t, decoded[0], "full_text")
	})
}

func TestReportGetCmd(t *testing.T) {
	setupTestServices(t)
	id := saveFixture(t)

	out, err := execute(t, "", "report", "get", id)
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, id, report.ID)
	assert.NotEmpty(t, report.FullText)

	_, err = execute(t, "", "report", "get", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportDeleteCmd(t *testing.T) {
	reports := setupTestServices(t)
	id := saveFixture(t)

	out, err := execute(t, "", "report", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Report deleted")

	_, err = reports.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = execute(t, "", "report", "delete", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportClearCmd(t *testing.T) {
	reports := setupTestServices(t)

	t.Run("aborts without confirmation", func(t *testing.T) {
		saveFixture(t)

		out, err := execute(t, "n\n", "report", "clear")
		require.NoError(t, err)
		assert.Contains(t, out, "Aborted.")

		list, err := reports.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("confirmed by prompt", func(t *testing.T) {
		out, err := execute(t, "y\n", "report", "clear")
		require.NoError(t, err)
		assert.Contains(t, out, "All data cleared")

		list, err := reports.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("yes flag", func(t *testing.T) {
		saveFixture(t)

		out, err := execute(t, "", "report", "clear", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "All data cleared")
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "0123456789ab", shortID("0123456789abcdef"))
}
