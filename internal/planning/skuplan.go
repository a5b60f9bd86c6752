package planning

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

// PlannedItem is one SKU/quantity decision for a single order
type PlannedItem struct {
	SKU      string
	Quantity int
}

// Planner produces per-order SKU plans. Randomness is injected so tests can
// seed it deterministically.
type Planner struct {
	rng *rand.Rand
}

// NewPlanner creates a planner with the given random source
func NewPlanner(rng *rand.Rand) *Planner {
	return &Planner{rng: rng}
}

// activeSKUs returns the SKUs with quantity > 0, sorted for determinism
func activeSKUs(quantities map[string]int) []string {
	skus := make([]string, 0, len(quantities))
	for sku, qty := range quantities {
		if qty > 0 {
			skus = append(skus, sku)
		}
	}
	sort.Strings(skus)
	return skus
}

// FullCatalogPlan includes every SKU with configured quantity > 0 at its
// configured quantity. Used by pack_to_light orders and standard_receiving
// purchase orders.
func (p *Planner) FullCatalogPlan(quantities map[string]int) ([]PlannedItem, error) {
	skus := activeSKUs(quantities)
	if len(skus) == 0 {
		return nil, domain.ErrNoSKUsConfigured
	}

	items := make([]PlannedItem, 0, len(skus))
	for _, sku := range skus {
		items = append(items, PlannedItem{SKU: sku, Quantity: quantities[sku]})
	}
	return items, nil
}

// SingleRandomPlan draws one SKU uniformly at random from the qty > 0 pool,
// quantity fixed at 1. Duplicates across orders are expected; bulk_shipping
// and single_item_batch share this path.
func (p *Planner) SingleRandomPlan(quantities map[string]int) ([]PlannedItem, error) {
	skus := activeSKUs(quantities)
	if len(skus) == 0 {
		return nil, domain.ErrNoSKUsConfigured
	}

	sku := skus[p.rng.Intn(len(skus))]
	return []PlannedItem{{SKU: sku, Quantity: 1}}, nil
}

// RandomizedPairPlan shuffles the qty > 0 pool and takes exactly 2 SKUs,
// each with an independent quantity drawn uniformly from {1,2}. Fails fast
// when the pool has fewer than 2 entries.
func (p *Planner) RandomizedPairPlan(quantities map[string]int) ([]PlannedItem, error) {
	skus := activeSKUs(quantities)
	if len(skus) < 2 {
		return nil, fmt.Errorf("%w: pool has %d", domain.ErrInsufficientSKUs, len(skus))
	}

	shuffled := make([]string, len(skus))
	copy(shuffled, skus)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	items := make([]PlannedItem, 0, 2)
	for _, sku := range shuffled[:2] {
		items = append(items, PlannedItem{SKU: sku, Quantity: 1 + p.rng.Intn(2)})
	}
	return items, nil
}

// PlanFor dispatches to the strategy for the given workflow kind
func (p *Planner) PlanFor(kind domain.WorkflowKind, quantities map[string]int) ([]PlannedItem, error) {
	switch kind {
	case domain.WorkflowPackToLight, domain.WorkflowStandardReceiving:
		return p.FullCatalogPlan(quantities)
	case domain.WorkflowSingleItemBatch, domain.WorkflowBulkShipping:
		return p.SingleRandomPlan(quantities)
	case domain.WorkflowMultiItemBatch:
		return p.RandomizedPairPlan(quantities)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWorkflow, kind)
	}
}
