package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/metrics"
)

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("test"))
}

func testMetrics() *metrics.Metrics {
	return metrics.New(&metrics.Config{Namespace: "test", ServiceName: "test"})
}

type fakeTourRepo struct {
	mu                sync.Mutex
	tours             map[string]*domain.Tour
	nextNumber        int
	markFinalizingErr error
	updateErr         error
}

func newFakeTourRepo(tours ...*domain.Tour) *fakeTourRepo {
	r := &fakeTourRepo{tours: make(map[string]*domain.Tour), nextNumber: 1}
	for _, t := range tours {
		r.tours[t.TourID] = t
	}
	return r
}

func (r *fakeTourRepo) Save(_ context.Context, tour *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tours[tour.TourID] = tour
	return nil
}

func (r *fakeTourRepo) Update(_ context.Context, tour *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.tours[tour.TourID] = tour
	return nil
}

func (r *fakeTourRepo) FindByTourID(_ context.Context, tourID string) (*domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tour, ok := r.tours[tourID]
	if !ok {
		return nil, domain.ErrTourNotFound
	}
	return tour, nil
}

func (r *fakeTourRepo) FindAll(_ context.Context, _, _ int64) ([]*domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Tour, 0, len(r.tours))
	for _, t := range r.tours {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTourRepo) FindByStatus(_ context.Context, status domain.Status, _ int64) ([]*domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tour
	for _, t := range r.tours {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTourRepo) MarkFinalizing(_ context.Context, tourID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markFinalizingErr != nil {
		return r.markFinalizingErr
	}
	if _, ok := r.tours[tourID]; !ok {
		return domain.ErrTourNotFound
	}
	return nil
}

func (r *fakeTourRepo) Delete(_ context.Context, tourID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tours, tourID)
	return nil
}

func (r *fakeTourRepo) NextTourNumber(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.nextNumber
	r.nextNumber++
	return n, nil
}

type fakeParticipantRepo struct {
	participants []*domain.Participant
}

func (r *fakeParticipantRepo) Save(_ context.Context, p *domain.Participant) error {
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeParticipantRepo) SaveMany(_ context.Context, ps []*domain.Participant) error {
	r.participants = append(r.participants, ps...)
	return nil
}

func (r *fakeParticipantRepo) FindByTourID(_ context.Context, tourID string) ([]*domain.Participant, error) {
	var out []*domain.Participant
	for _, p := range r.participants {
		if p.TourID == tourID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) ExistsByEmail(_ context.Context, tourID, email string) (bool, error) {
	for _, p := range r.participants {
		if p.TourID == tourID && p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeParticipantRepo) DeleteByTourID(_ context.Context, tourID string) error {
	kept := r.participants[:0]
	for _, p := range r.participants {
		if p.TourID != tourID {
			kept = append(kept, p)
		}
	}
	r.participants = kept
	return nil
}

type fakeTeamRepo struct {
	members map[string]*domain.TeamMember
}

func newFakeTeamRepo(members ...*domain.TeamMember) *fakeTeamRepo {
	r := &fakeTeamRepo{members: make(map[string]*domain.TeamMember)}
	for _, m := range members {
		r.members[m.MemberID] = m
	}
	return r
}

func (r *fakeTeamRepo) Save(_ context.Context, m *domain.TeamMember) error {
	r.members[m.MemberID] = m
	return nil
}

func (r *fakeTeamRepo) FindByMemberID(_ context.Context, memberID string) (*domain.TeamMember, error) {
	m, ok := r.members[memberID]
	if !ok {
		return nil, domain.ErrTeamMemberNotFound
	}
	return m, nil
}

func (r *fakeTeamRepo) FindAll(_ context.Context) ([]*domain.TeamMember, error) {
	out := make([]*domain.TeamMember, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, memberID string) error {
	delete(r.members, memberID)
	return nil
}

type fakeExtrasRepo struct {
	extras []*domain.ExtraCustomer
}

func (r *fakeExtrasRepo) FindAll(_ context.Context) ([]*domain.ExtraCustomer, error) {
	return r.extras, nil
}

func (r *fakeExtrasRepo) SeedDefaults(_ context.Context) error { return nil }

type fakeSwagRepo struct {
	items []*domain.SwagItem
}

func (r *fakeSwagRepo) Save(_ context.Context, item *domain.SwagItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeSwagRepo) Update(_ context.Context, _ *domain.SwagItem) error { return nil }

func (r *fakeSwagRepo) FindBySKU(_ context.Context, sku string) (*domain.SwagItem, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return nil, fmt.Errorf("swag item %s not found", sku)
}

func (r *fakeSwagRepo) FindAll(_ context.Context, activeOnly bool) ([]*domain.SwagItem, error) {
	var out []*domain.SwagItem
	for _, item := range r.items {
		if activeOnly && !item.Active {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeSwagRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeSettingsRepo struct {
	settings *domain.TenantSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.TenantSettings, error) {
	if r.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *domain.TenantSettings) error {
	r.settings = s
	return nil
}

func (r *fakeSettingsRepo) UpdateRefreshToken(_ context.Context, token string) error {
	if r.settings == nil {
		r.settings = &domain.TenantSettings{}
	}
	r.settings.RefreshToken = token
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*domain.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*domain.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: make(map[string]*domain.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ExternalID] = w
	}
	return r
}

func (r *fakeWarehouseRepo) Save(_ context.Context, w *domain.Warehouse) error {
	r.warehouses[w.ExternalID] = w
	return nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *domain.Warehouse) error {
	r.warehouses[w.ExternalID] = w
	return nil
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id string) (*domain.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, domain.ErrWarehouseNotFound
	}
	return w, nil
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context) ([]*domain.Warehouse, error) {
	out := make([]*domain.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.warehouses, id)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *fakePublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// fakeSubmitter records every submission and can be told to fail specific
// order numbers. Safe for the concurrent fan-out.
type fakeSubmitter struct {
	mu         sync.Mutex
	orders     []shiphero.OrderCreateInput
	pos        []shiphero.PurchaseOrderCreateInput
	canceled   []string
	failOrders map[string]error
	cancelErrs map[string]error
	seq        int
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{
		failOrders: make(map[string]error),
		cancelErrs: make(map[string]error),
	}
}

func (f *fakeSubmitter) CreateOrder(_ context.Context, input shiphero.OrderCreateInput) (*shiphero.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOrders[input.OrderNumber]; ok {
		return nil, err
	}
	f.orders = append(f.orders, input)
	f.seq++
	return &shiphero.SubmitResult{
		ExternalID:  fmt.Sprintf("ext-%s", input.OrderNumber),
		OrderNumber: input.OrderNumber,
		LegacyID:    int64(1000 + f.seq),
	}, nil
}

func (f *fakeSubmitter) CancelOrder(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.cancelErrs[orderID]; ok {
		return err
	}
	f.canceled = append(f.canceled, orderID)
	return nil
}

func (f *fakeSubmitter) CreatePurchaseOrder(_ context.Context, input shiphero.PurchaseOrderCreateInput) (*shiphero.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOrders[input.PONumber]; ok {
		return nil, err
	}
	f.pos = append(f.pos, input)
	f.seq++
	return &shiphero.SubmitResult{
		ExternalID:  fmt.Sprintf("ext-%s", input.PONumber),
		OrderNumber: input.PONumber,
		LegacyID:    int64(1000 + f.seq),
	}, nil
}

func (f *fakeSubmitter) CancelPurchaseOrder(_ context.Context, poID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.cancelErrs[poID]; ok {
		return err
	}
	f.canceled = append(f.canceled, poID)
	return nil
}

func (f *fakeSubmitter) orderNumbers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o.OrderNumber)
	}
	return out
}

// ordersByNumber indexes submissions by order number; the fan-out records
// them in completion order, which is not deterministic.
func (f *fakeSubmitter) ordersByNumber() map[string]shiphero.OrderCreateInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]shiphero.OrderCreateInput, len(f.orders))
	for _, o := range f.orders {
		out[o.OrderNumber] = o
	}
	return out
}

func mustParticipant(tourID, first, last, email string) *domain.Participant {
	p, err := domain.NewParticipant(tourID, first, last, email, "", "")
	if err != nil {
		panic(err)
	}
	return p
}

func scheduledTour(tourID string, tourNumber int) *domain.Tour {
	tour, err := domain.NewTour(tourID, tourNumber, time.Now().Add(24*time.Hour), "wh-1", "tm-1")
	if err != nil {
		panic(err)
	}
	if err := tour.Schedule(); err != nil {
		panic(err)
	}
	return tour
}
