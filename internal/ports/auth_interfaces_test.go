package ports_test

import (
	"testing"

	"github.com/target/storefront-client/internal/adapters/bolt"
	"github.com/target/storefront-client/internal/adapters/memory"
	redisadapter "github.com/target/storefront-client/internal/adapters/redis"
	"github.com/target/storefront-client/internal/ports"
)

func TestStorageAdaptersConform(t *testing.T) {
	var (
		_ ports.Storage = (*memory.Storage)(nil)
		_ ports.Storage = (*bolt.Storage)(nil)
		_ ports.Storage = (*redisadapter.Storage)(nil)
	)
}
