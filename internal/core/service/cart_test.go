package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionecenter/marketplace/internal/adapter/catalog"
	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/service"
)

func seedCatalog() stubCatalog {
	return stubCatalog{ps: catalog.SeedProducts()}
}

func TestCartStore(t *testing.T) {
	headphones := domain.Product{ID: "p1", Name: "Wireless Headphones", Price: 89.99}
	speaker := domain.Product{ID: "p3", Name: "Portable Speaker", Price: 39.99}

	t.Run("AddItemAccumulatesQty", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)

		require.NoError(t, s.AddItem(t.Context(), headphones, 1))
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, 3, items[0].Qty)
		assert.InDelta(t, 269.97, s.Total(t.Context()), 1e-9)
	})

	t.Run("AddItemRejectsQtyBelowOne", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		err := s.AddItem(t.Context(), headphones, 0)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
		err = s.AddItem(t.Context(), headphones, -3)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Qty)
	})

	t.Run("RemoveThenAddYieldsSingleLine", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		s.RemoveItem(t.Context(), "p1")
		require.Empty(t, s.Items())

		require.NoError(t, s.AddItem(t.Context(), headphones, 5))
		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Qty)
	})

	t.Run("RemoveAbsentIsNoop", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 1))

		s.RemoveItem(t.Context(), "p42")
		assert.Len(t, s.Items(), 1)
	})

	t.Run("UpdateQtyReplacesQty", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 1))

		require.NoError(t, s.UpdateQty(t.Context(), "p1", 4))
		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 4, items[0].Qty)
	})

	t.Run("UpdateQtyRejectsQtyBelowOne", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		err := s.UpdateQty(t.Context(), "p1", 0)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, 2, s.Items()[0].Qty)
	})

	t.Run("UpdateQtyAbsentIsNoop", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)

		require.NoError(t, s.UpdateQty(t.Context(), "p42", 3))
		assert.Empty(t, s.Items())
	})

	t.Run("TotalZeroAfterClear", func(t *testing.T) {
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))
		require.NoError(t, s.AddItem(t.Context(), speaker, 1))

		s.Clear(t.Context())
		assert.Empty(t, s.Items())
		assert.Zero(t, s.Total(t.Context()))
	})

	t.Run("TotalIndependentOfAddOrder", func(t *testing.T) {
		a := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, a.AddItem(t.Context(), headphones, 2))
		require.NoError(t, a.AddItem(t.Context(), speaker, 1))

		b := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, b.AddItem(t.Context(), speaker, 1))
		require.NoError(t, b.AddItem(t.Context(), headphones, 2))

		assert.InDelta(t, a.Total(t.Context()), b.Total(t.Context()), 1e-9)
	})

	t.Run("MissingCatalogProductContributesZero", func(t *testing.T) {
		ghost := domain.Product{ID: "p42", Name: "Discontinued", Price: 10}
		s := service.NewCartStore(newFakeKV(), seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 1))
		require.NoError(t, s.AddItem(t.Context(), ghost, 3))

		assert.InDelta(t, 89.99, s.Total(t.Context()), 1e-9)
	})

	t.Run("StateSurvivesRehydration", func(t *testing.T) {
		kv := newFakeKV()
		s := service.NewCartStore(kv, seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))
		require.NoError(t, s.AddItem(t.Context(), speaker, 1))

		reopened := service.NewCartStore(kv, seedCatalog(), nil)
		items := reopened.Items()
		require.Len(t, items, 2)
		assert.InDelta(t, 219.97, reopened.Total(t.Context()), 1e-9)
	})

	t.Run("CorruptValueReadsEmpty", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Store(service.CartKey, []byte("{not json")))

		s := service.NewCartStore(kv, seedCatalog(), nil)
		assert.Empty(t, s.Items())
	})

	t.Run("StorageFailureDegradesToMemory", func(t *testing.T) {
		kv := newFakeKV()
		kv.failing = true

		s := service.NewCartStore(kv, seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Qty)
	})

	t.Run("PersistedShapeIsStable", func(t *testing.T) {
		kv := newFakeKV()
		s := service.NewCartStore(kv, seedCatalog(), nil)
		require.NoError(t, s.AddItem(t.Context(), headphones, 2))

		data, err := kv.Load(service.CartKey)
		require.NoError(t, err)

		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 1)
		assert.Equal(t, "p1", raw[0]["productId"])
		assert.EqualValues(t, 2, raw[0]["qty"])
	})

	t.Run("EmitsClientEvents", func(t *testing.T) {
		events := &recordingProducer{}
		s := service.NewCartStore(newFakeKV(), seedCatalog(), events)

		require.NoError(t, s.AddItem(t.Context(), headphones, 1))
		require.NoError(t, s.UpdateQty(t.Context(), "p1", 3))
		s.RemoveItem(t.Context(), "p1")
		s.Clear(t.Context())

		assert.Equal(t, []domain.EventKind{
			domain.EventCartAdd,
			domain.EventCartUpdate,
			domain.EventCartRemove,
			domain.EventCartClear,
		}, events.kinds())
	})

	t.Run("ProducerFailureDoesNotAffectCart", func(t *testing.T) {
		events := &recordingProducer{err: errStorageUnavailable}
		s := service.NewCartStore(newFakeKV(), seedCatalog(), events)

		require.NoError(t, s.AddItem(t.Context(), headphones, 1))
		assert.Len(t, s.Items(), 1)
	})
}
