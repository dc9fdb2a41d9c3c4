package sessions

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepositoryContract runs the behaviour every backend must share.
func testRepositoryContract(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	_, err := r.Get(ctx, "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Set(ctx, "s1", models.Blob("1AQAOMTQ5LjE1NC4xNjcuNTA")))
	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.Blob("1AQAOMTQ5LjE1NC4xNjcuNTA"), got)

	require.NoError(t, r.Set(ctx, "s1", models.Blob("second")))
	got, err = r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.Blob("second"), got, "last write wins")

	_, err = r.Get(ctx, "s2")
	require.ErrorIs(t, err, common.ErrorNotFound, "ids are independent")
}

func TestMemoryRepository_Contract(t *testing.T) {
	testRepositoryContract(t, NewMemoryRepository())
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%4)
			_ = r.Set(ctx, id, models.Blob(id))
			_, _ = r.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("s%d", i)
		got, err := r.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.Blob(id), got)
	}
}
