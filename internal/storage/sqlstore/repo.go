package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotels_api/internal/domain"
)

type Repo struct{ db *gorm.DB }

func New(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) FindWithAddressByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	var e Enrollment
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("user_id = ?", userID).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e.toDomain(), nil
}

// FindByEnrollmentID returns the most recently created ticket of the enrollment.
func (r *Repo) FindByEnrollmentID(ctx context.Context, enrollmentID int64) (*domain.Ticket, error) {
	var t Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enrollmentID).
		Order("created_at DESC").Order("id DESC").
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t.toDomain(), nil
}

func (r *Repo) FindHotels(ctx context.Context) ([]domain.Hotel, error) {
	var rows []Hotel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(rows))
	for _, h := range rows {
		out = append(out, h.toDomain())
	}
	return out, nil
}

func (r *Repo) FindHotelByID(ctx context.Context, id int64) (*domain.HotelWithRooms, error) {
	var h Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		Take(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := &domain.HotelWithRooms{Hotel: h.toDomain(), Rooms: make([]domain.Room, 0, len(h.Rooms))}
	for _, rm := range h.Rooms {
		out.Rooms = append(out.Rooms, rm.toDomain())
	}
	return out, nil
}

// UpsertHotel writes the hotel row and replaces its rooms in one transaction.
func (r *Repo) UpsertHotel(ctx context.Context, h domain.HotelWithRooms) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := Hotel{ID: h.ID, Name: h.Name, Image: h.Image}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "image", "updated_at"}),
		}).Omit("Rooms").Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", h.ID).Delete(&Room{}).Error; err != nil {
			return err
		}
		if len(h.Rooms) == 0 {
			return nil
		}
		rooms := make([]Room, 0, len(h.Rooms))
		for _, rm := range h.Rooms {
			rooms = append(rooms, Room{Name: rm.Name, Capacity: rm.Capacity, HotelID: h.ID})
		}
		return tx.Create(&rooms).Error
	})
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"http_status", "reason", "seen_at"}),
	}).Create(&IngestMiss{ID: id, HTTPStatus: status, Reason: reason, SeenAt: time.Now().UTC()}).Error
}

// UserIDForToken implements domain.SessionStore on the sessions table.
func (r *Repo) UserIDForToken(ctx context.Context, token string) (int64, error) {
	var s Session
	err := r.db.WithContext(ctx).Where("token = ?", token).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	return s.UserID, nil
}
