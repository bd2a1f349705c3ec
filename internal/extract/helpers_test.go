package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// loadSample returns the sample report text.
func loadSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "dash_report.txt"))
	require.NoError(t, err)
	return string(data)
}

func strp(s string) *string { return &s }

func intp(n int) *int { return &n }
