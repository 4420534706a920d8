package kvstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionecenter/marketplace/internal/adapter/kvstore"
	"github.com/ionecenter/marketplace/internal/core/domain"
)

func TestDB(t *testing.T) {
	t.Run("LoadMissingKey", func(t *testing.T) {
		db := kvstore.OpenMemory()
		defer db.Close()

		_, err := db.Load("ionecenter_cart")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("StoreLoadRoundTrip", func(t *testing.T) {
		db := kvstore.OpenMemory()
		defer db.Close()

		require.NoError(t, db.Store("ionecenter_cart", []byte(`[{"productId":"p1","qty":2}]`)))

		data, err := db.Load("ionecenter_cart")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"productId":"p1","qty":2}]`, string(data))
	})

	t.Run("StoreOverwrites", func(t *testing.T) {
		db := kvstore.OpenMemory()
		defer db.Close()

		require.NoError(t, db.Store("NEXT_LOCALE", []byte("en")))
		require.NoError(t, db.Store("NEXT_LOCALE", []byte("ar")))

		data, err := db.Load("NEXT_LOCALE")
		require.NoError(t, err)
		assert.Equal(t, "ar", string(data))
	})

	t.Run("DeleteRemovesKey", func(t *testing.T) {
		db := kvstore.OpenMemory()
		defer db.Close()

		require.NoError(t, db.Store("ionecenter_auth", []byte(`{}`)))
		require.NoError(t, db.Delete("ionecenter_auth"))

		_, err := db.Load("ionecenter_auth")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteAbsentKey", func(t *testing.T) {
		db := kvstore.OpenMemory()
		defer db.Close()

		assert.NoError(t, db.Delete("no_such_key"))
	})

	t.Run("OpenFileBacked", func(t *testing.T) {
		db, err := kvstore.Open(t.TempDir() + "/kv")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Store("k", []byte("v")))
		data, err := db.Load("k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(data))
	})
}
