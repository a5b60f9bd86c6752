package planning

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

func seededPlanner(seed int64) *Planner {
	return NewPlanner(rand.New(rand.NewSource(seed)))
}

func TestFullCatalogPlan(t *testing.T) {
	planner := seededPlanner(1)

	items, err := planner.FullCatalogPlan(map[string]int{"SKU-A": 5, "SKU-B": 0, "SKU-C": 3})
	require.NoError(t, err)

	// Exact filtered match, sorted by SKU, SKU-B excluded
	assert.Equal(t, []PlannedItem{
		{SKU: "SKU-A", Quantity: 5},
		{SKU: "SKU-C", Quantity: 3},
	}, items)
}

func TestFullCatalogPlanEmptyPool(t *testing.T) {
	planner := seededPlanner(1)

	_, err := planner.FullCatalogPlan(map[string]int{"SKU-A": 0})
	assert.ErrorIs(t, err, domain.ErrNoSKUsConfigured)
}

func TestSingleRandomPlan(t *testing.T) {
	planner := seededPlanner(7)
	pool := map[string]int{"SKU-A": 1, "SKU-B": 2, "SKU-C": 1, "SKU-D": 0}

	chosen := make(map[string]int)
	for i := 0; i < 200; i++ {
		items, err := planner.SingleRandomPlan(pool)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
		assert.NotEqual(t, "SKU-D", items[0].SKU, "zero-quantity SKU drawn")
		chosen[items[0].SKU]++
	}

	// Distribution is non-degenerate when the pool has more than one entry
	assert.Greater(t, len(chosen), 1, "planner always picked the same SKU")
}

func TestRandomizedPairPlan(t *testing.T) {
	planner := seededPlanner(11)
	pool := map[string]int{"SKU-A": 1, "SKU-B": 1, "SKU-C": 1, "SKU-D": 1}

	for i := 0; i < 200; i++ {
		items, err := planner.RandomizedPairPlan(pool)
		require.NoError(t, err)
		require.Len(t, items, 2, "pair plan must produce exactly 2 SKUs")

		assert.NotEqual(t, items[0].SKU, items[1].SKU, "pair plan picked a duplicate SKU")
		for _, item := range items {
			assert.Contains(t, []int{1, 2}, item.Quantity, "quantity outside {1,2}")
		}
	}
}

func TestRandomizedPairPlanInsufficientSKUs(t *testing.T) {
	planner := seededPlanner(3)

	_, err := planner.RandomizedPairPlan(map[string]int{"SKU-A": 1, "SKU-B": 0})
	assert.ErrorIs(t, err, domain.ErrInsufficientSKUs)
}

func TestPlanForDispatch(t *testing.T) {
	pool := map[string]int{"SKU-A": 2, "SKU-B": 3}

	tests := []struct {
		kind      domain.WorkflowKind
		wantItems int
	}{
		{domain.WorkflowPackToLight, 2},
		{domain.WorkflowStandardReceiving, 2},
		{domain.WorkflowBulkShipping, 1},
		{domain.WorkflowSingleItemBatch, 1},
		{domain.WorkflowMultiItemBatch, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			items, err := seededPlanner(5).PlanFor(tt.kind, pool)
			require.NoError(t, err)
			assert.Len(t, items, tt.wantItems)
		})
	}

	_, err := seededPlanner(5).PlanFor(domain.WorkflowKind("bogus"), pool)
	assert.ErrorIs(t, err, domain.ErrUnknownWorkflow)
}
