package repository

import (
	"github.com/FestPass/FestPass/app/models"
	"gorm.io/gorm"
)

// CatalogRepository defines read-only lookups against the authoritative
// ticket catalog. Lookups always hit the database (no caching layer) because
// the answers gate a security decision.
type CatalogRepository interface {
	// GetTicketTypeWithEvent resolves a ticket type and its owning event.
	// Returns gorm.ErrRecordNotFound when the ticket type does not exist.
	GetTicketTypeWithEvent(ticketTypeID uint) (*models.TicketType, *models.Event, error)
	GetEventByID(eventID uint) (*models.Event, error)
}

// TransactionRepository defines the write side of the pipeline: idempotent
// transaction creation, capacity reservation, ticket inserts, and replay
// reads. Writes that must be atomic together are grouped by running them
// inside one UnitOfWork execution.
type TransactionRepository interface {
	// CreateIfNotExists inserts the transaction unless one already exists for
	// its session id. Returns created=false and the stored row on conflict,
	// which is how concurrent redeliveries of the same session are detected.
	CreateIfNotExists(txn *models.TicketTransaction) (created bool, stored *models.TicketTransaction, err error)

	// GetBySessionID loads a transaction and its tickets for replay responses.
	GetBySessionID(sessionID string) (*models.TicketTransaction, error)

	// ReserveCapacity atomically increments the ticket type's sold count if
	// capacity allows. Returns reserved=false, with no increment, when the
	// remaining capacity is insufficient. The guarded UPDATE takes a row lock,
	// serializing concurrent reservations across process instances.
	ReserveCapacity(ticketTypeID uint, quantity int64) (reserved bool, err error)

	CreateTicket(ticket *models.Ticket) error
}

// AuditLogRepository appends immutable audit entries. There is deliberately
// no update or delete.
type AuditLogRepository interface {
	Create(entry *models.AuditLogEntry) error
	ListByTargetID(targetID string) ([]models.AuditLogEntry, error)
}

// SecurityAlertRepository upserts correlated alerts keyed by
// (alert_type, correlation_id).
type SecurityAlertRepository interface {
	Upsert(alert *models.SecurityAlert) error
	GetByCorrelationID(alertType, correlationID string) (*models.SecurityAlert, error)
}

// UnitOfWork runs fn against repositories bound to a single database
// transaction. If fn returns an error everything is rolled back, so no
// partial transaction/ticket/counter state is ever observable.
type UnitOfWork interface {
	Execute(fn func(repos *Repositories) error) error
}

// Repositories bundles all repository implementations for injection.
type Repositories struct {
	Catalog       CatalogRepository
	Transaction   TransactionRepository
	AuditLog      AuditLogRepository
	SecurityAlert SecurityAlertRepository
}

// NewRepositories creates all repositories from a shared GORM handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Catalog:       NewCatalogRepository(db),
		Transaction:   NewTransactionRepository(db),
		AuditLog:      NewAuditLogRepository(db),
		SecurityAlert: NewSecurityAlertRepository(db),
	}
}

// gormUnitOfWork implements UnitOfWork over gorm's transaction support.
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork bound to the given GORM handle.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Execute(fn func(repos *Repositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
