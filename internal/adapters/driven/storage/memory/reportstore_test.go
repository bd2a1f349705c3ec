package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

func testReport(id string) *domain.Report {
	name := "DOE, JANE"
	return &domain.Report{
		ID:       id,
		FileName: id + ".pdf",
		Header:   domain.Header{DriverName: &name},
		FullText: "full text of " + id,
	}
}

func TestReportStore_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	require.NoError(t, store.Upsert(ctx, testReport("abc")))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc.pdf", got.FileName)
	assert.Equal(t, "full text of abc", got.FullText)
}

func TestReportStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	first := testReport("abc")
	require.NoError(t, store.Upsert(ctx, first))
	second := testReport("abc")
	second.FileName = "renamed.pdf"
	require.NoError(t, store.Upsert(ctx, second))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "renamed.pdf", list[0].FileName)
}

func TestReportStore_UpsertRejectsMissingID(t *testing.T) {
	store := NewReportStore()

	assert.ErrorIs(t, store.Upsert(context.Background(), &domain.Report{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Upsert(context.Background(), nil), domain.ErrInvalidInput)
}

func TestReportStore_ListSortedByID(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Upsert(ctx, testReport(id)))
	}

	list, err := store.List(ctx)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestReportStore_ListEmpty(t *testing.T) {
	list, err := NewReportStore().List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReportStore_GetNotFound(t *testing.T) {
	_, err := NewReportStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	require.NoError(t, store.Upsert(ctx, testReport("abc")))

	require.NoError(t, store.Delete(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestReportStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	require.NoError(t, store.Upsert(ctx, testReport("a")))
	require.NoError(t, store.Upsert(ctx, testReport("b")))

	require.NoError(t, store.Clear(ctx))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, store.Close())
}

func TestReportStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Upsert(ctx, testReport("same"))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	_, err := store.Get(ctx, "same")
	assert.NoError(t, err)
}
