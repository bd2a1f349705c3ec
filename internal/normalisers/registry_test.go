package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

type stubSource struct {
	exts  []string
	pages []string
}

func (s *stubSource) Extensions() []string { return s.exts }

func (s *stubSource) Pages(_ context.Context, _ string, _ []byte) ([]string, error) {
	return s.pages, nil
}

func TestDefault_Extensions(t *testing.T) {
	exts := Default().Extensions()

	assert.Contains(t, exts, ".pdf")
	assert.Contains(t, exts, ".txt")
}

func TestRegistry_DispatchesCaseInsensitive(t *testing.T) {
	reg := NewRegistry(&stubSource{exts: []string{".dash"}, pages: []string{"p1"}})

	pages, err := reg.Pages(context.Background(), "REPORT.DASH", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, pages)
	assert.True(t, reg.Supports("a.Dash"))
}

func TestRegistry_Unsupported(t *testing.T) {
	_, err := Default().Pages(context.Background(), "photo.png", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.False(t, Default().Supports("photo.png"))
}

func TestRegistry_LaterSourceWins(t *testing.T) {
	reg := NewRegistry(
		&stubSource{exts: []string{".txt"}, pages: []string{"first"}},
		&stubSource{exts: []string{".txt"}, pages: []string{"second"}},
	)

	pages, err := reg.Pages(context.Background(), "a.txt", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, pages)
}

func TestRegistry_TextPages(t *testing.T) {
	pages, err := Default().Pages(context.Background(), "dash.txt", []byte("one\ftwo"))

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, pages)
}
