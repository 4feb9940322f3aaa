package pipeline

import (
	"sync"

	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/app/repository"
	"gorm.io/gorm"
)

// fakeCatalog serves catalog snapshots from memory. Reads return copies so a
// test can make the snapshot stale relative to the store, which is exactly
// the situation the commit-time reservation exists for.
type fakeCatalog struct {
	ticketTypes map[uint]models.TicketType
	events      map[uint]models.Event
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		ticketTypes: make(map[uint]models.TicketType),
		events:      make(map[uint]models.Event),
	}
}

func (f *fakeCatalog) add(tt models.TicketType, event models.Event) {
	f.ticketTypes[tt.ID] = tt
	f.events[event.ID] = event
}

func (f *fakeCatalog) GetTicketTypeWithEvent(ticketTypeID uint) (*models.TicketType, *models.Event, error) {
	tt, ok := f.ticketTypes[ticketTypeID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	event, ok := f.events[tt.EventID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	return &tt, &event, nil
}

func (f *fakeCatalog) GetEventByID(eventID uint) (*models.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &event, nil
}

type capacityCounter struct {
	max  *int64
	sold int64
}

// fakeTxnStore implements TransactionRepository with the same observable
// semantics as the GORM implementation: unique-session inserts, guarded
// capacity increments, ticket inserts. A mutex stands in for the row locks
// the storage layer provides.
type fakeTxnStore struct {
	mu            sync.Mutex
	nextTxnID     uint
	nextTicketID  uint
	bySession     map[string]*models.TicketTransaction
	tickets       map[uint][]models.Ticket
	capacities    map[uint]*capacityCounter
	reserveErr    error
	createTickErr error
}

func newFakeTxnStore() *fakeTxnStore {
	return &fakeTxnStore{
		bySession:  make(map[string]*models.TicketTransaction),
		tickets:    make(map[uint][]models.Ticket),
		capacities: make(map[uint]*capacityCounter),
	}
}

func (f *fakeTxnStore) setCapacity(ticketTypeID uint, max *int64, sold int64) {
	f.capacities[ticketTypeID] = &capacityCounter{max: max, sold: sold}
}

func (f *fakeTxnStore) soldCount(ticketTypeID uint) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.capacities[ticketTypeID].sold
}

func (f *fakeTxnStore) ticketCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, list := range f.tickets {
		n += len(list)
	}
	return n
}

func (f *fakeTxnStore) withTickets(txn *models.TicketTransaction) *models.TicketTransaction {
	out := *txn
	out.Tickets = append([]models.Ticket(nil), f.tickets[txn.ID]...)
	return &out
}

func (f *fakeTxnStore) CreateIfNotExists(txn *models.TicketTransaction) (bool, *models.TicketTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.bySession[txn.SessionID]; ok {
		return false, f.withTickets(existing), nil
	}
	f.nextTxnID++
	stored := *txn
	stored.ID = f.nextTxnID
	f.bySession[txn.SessionID] = &stored
	return true, f.withTickets(&stored), nil
}

func (f *fakeTxnStore) GetBySessionID(sessionID string) (*models.TicketTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.bySession[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.withTickets(txn), nil
}

func (f *fakeTxnStore) ReserveCapacity(ticketTypeID uint, quantity int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return false, f.reserveErr
	}
	c, ok := f.capacities[ticketTypeID]
	if !ok {
		return false, nil
	}
	if c.max != nil && c.sold+quantity > *c.max {
		return false, nil
	}
	c.sold += quantity
	return true, nil
}

func (f *fakeTxnStore) CreateTicket(ticket *models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createTickErr != nil {
		return f.createTickErr
	}
	f.nextTicketID++
	ticket.ID = f.nextTicketID
	f.tickets[ticket.TransactionID] = append(f.tickets[ticket.TransactionID], *ticket)
	return nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLogEntry
}

func (f *fakeAuditStore) Create(entry *models.AuditLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditStore) ListByTargetID(targetID string) ([]models.AuditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AuditLogEntry
	for _, e := range f.entries {
		if e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAuditStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeAlertStore struct {
	mu     sync.Mutex
	alerts map[string]*models.SecurityAlert
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{alerts: make(map[string]*models.SecurityAlert)}
}

func (f *fakeAlertStore) Upsert(alert *models.SecurityAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := alert.AlertType + "|" + alert.CorrelationID
	if existing, ok := f.alerts[key]; ok {
		existing.OccurrenceCount++
		existing.LastSeenAt = alert.LastSeenAt
		*alert = *existing
		return nil
	}
	stored := *alert
	f.alerts[key] = &stored
	return nil
}

func (f *fakeAlertStore) GetByCorrelationID(alertType, correlationID string) (*models.SecurityAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.alerts[alertType+"|"+correlationID]; ok {
		out := *a
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAlertStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

// fakeUnitOfWork hands the callback the same fake repositories. Rollback
// semantics belong to the real database; these tests assert that errors
// propagate before any side-channel write happens.
type fakeUnitOfWork struct {
	repos *repository.Repositories
}

func (f *fakeUnitOfWork) Execute(fn func(repos *repository.Repositories) error) error {
	return fn(f.repos)
}

// harness bundles the fakes behind a wired pipeline service.
type harness struct {
	catalog *fakeCatalog
	store   *fakeTxnStore
	audits  *fakeAuditStore
	alerts  *fakeAlertStore
	svc     *Service
}

func newHarness() *harness {
	h := &harness{
		catalog: newFakeCatalog(),
		store:   newFakeTxnStore(),
		audits:  &fakeAuditStore{},
		alerts:  newFakeAlertStore(),
	}
	repos := &repository.Repositories{
		Catalog:       h.catalog,
		Transaction:   h.store,
		AuditLog:      h.audits,
		SecurityAlert: h.alerts,
	}
	h.svc = NewService(repos, &fakeUnitOfWork{repos: repos})
	return h
}
