package domain

import "context"

// Read paths used by the API. A missing row is reported as (nil, nil).
type EnrollmentRepository interface {
	FindWithAddressByUserID(ctx context.Context, userID int64) (*Enrollment, error)
}

type TicketRepository interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID int64) (*Ticket, error)
}

type HotelRepository interface {
	FindHotels(ctx context.Context) ([]Hotel, error)
	FindHotelByID(ctx context.Context, id int64) (*HotelWithRooms, error)

	// Write paths (ingestor only)
	UpsertHotel(ctx context.Context, h HotelWithRooms) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error
}

// SessionStore resolves a bearer token to the user that owns the session.
// Unknown tokens return ErrUnauthorized.
type SessionStore interface {
	UserIDForToken(ctx context.Context, token string) (int64, error)
}

type CatalogClient interface {
	GetProperty(ctx context.Context, id int64) (map[string]any, error)
}
