package repository

import (
	"github.com/FestPass/FestPass/app/models"
	"gorm.io/gorm"
)

// catalogRepository implements CatalogRepository over GORM.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetTicketTypeWithEvent(ticketTypeID uint) (*models.TicketType, *models.Event, error) {
	var tt models.TicketType
	if err := r.db.Where("id = ?", ticketTypeID).First(&tt).Error; err != nil {
		return nil, nil, err
	}
	event, err := r.GetEventByID(tt.EventID)
	if err != nil {
		return nil, nil, err
	}
	return &tt, event, nil
}

func (r *catalogRepository) GetEventByID(eventID uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
