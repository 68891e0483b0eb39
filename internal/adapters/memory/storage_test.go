package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/target/storefront-client/internal/errors"
)

func TestStorage_CRUD(t *testing.T) {
	t.Parallel()

	s := NewStorage()
	ctx := context.Background()

	_, err := s.GetItem(ctx, "auth_token")
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, s.SetItem(ctx, "auth_token", "T1"))
	got, err := s.GetItem(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "T1", got)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.RemoveItem(ctx, "auth_token"))
	require.NoError(t, s.RemoveItem(ctx, "auth_token"))
	assert.Equal(t, 0, s.Len())

	assert.Error(t, s.SetItem(ctx, "", "v"))
}

func TestStorage_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	s := NewStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			assert.NoError(t, s.SetItem(ctx, key, "v"))
			_, err := s.GetItem(ctx, key)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
}
