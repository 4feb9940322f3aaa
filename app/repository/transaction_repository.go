package repository

import (
	"github.com/FestPass/FestPass/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionRepository implements TransactionRepository over GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateIfNotExists relies on the unique index on session_id: a concurrent
// writer for the same session loses the insert race, reads the winner's row
// and reports created=false. This is the pipeline's idempotency boundary.
func (r *transactionRepository) CreateIfNotExists(txn *models.TicketTransaction) (bool, *models.TicketTransaction, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(txn)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.TicketTransaction
	if err := r.db.Preload("Tickets").
		Where("session_id = ?", txn.SessionID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *transactionRepository) GetBySessionID(sessionID string) (*models.TicketTransaction, error) {
	var txn models.TicketTransaction
	err := r.db.Preload("Tickets").
		Where("session_id = ?", sessionID).
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ReserveCapacity is the commit-time capacity check. The guarded UPDATE
// increments sold_count only while sold_count + quantity still fits under
// max_quantity (NULL means unlimited), so the capacity invariant cannot be
// violated even when two completions race for the last unit: the storage
// layer serializes them on the row lock and the loser sees zero affected
// rows.
func (r *transactionRepository) ReserveCapacity(ticketTypeID uint, quantity int64) (bool, error) {
	res := r.db.Model(&models.TicketType{}).
		Where("id = ? AND (max_quantity IS NULL OR sold_count + ? <= max_quantity)", ticketTypeID, quantity).
		UpdateColumn("sold_count", gorm.Expr("sold_count + ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *transactionRepository) CreateTicket(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}
