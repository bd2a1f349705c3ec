package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Count())
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		count    int
		contains []string
	}{
		{"ready", StateReady, "", 0, []string{"Ready", "q: quit"}},
		{"loading", StateLoading, "", 0, []string{"Loading..."}},
		{"error with message", StateError, "boom", 0, []string{"Error: boom"}},
		{"error without message", StateError, "", 0, []string{"Error"}},
		{"single report", StateReports, "", 1, []string{"1 report", "enter: open", "d: delete"}},
		{"many reports", StateReports, "", 3, []string{"3 reports", "/: filter"}},
		{"confirm", StateConfirm, "Delete report?", 1, []string{"Delete report?", "y: confirm", "n: cancel"}},
		{"flash message", StateReports, "Report deleted", 2, []string{"Report deleted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetCount(tt.count)

			view := bar.View()
			for _, c := range tt.contains {
				assert.Contains(t, view, c)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetCount(4)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Count())
}

func TestBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
	updated, cmd := bar.Update(nil)
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}
