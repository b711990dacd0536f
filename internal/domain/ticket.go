package domain

import "time"

type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

type TicketType struct {
	ID            int64
	Name          string
	Price         int
	IsRemote      bool
	IncludesHotel bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Ticket struct {
	ID           int64
	TicketTypeID int64
	EnrollmentID int64
	Status       TicketStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TicketType   TicketType
}

// GrantsHotel reports whether the ticket entitles its holder to hotel listings.
func (t Ticket) GrantsHotel() bool {
	return t.Status == TicketPaid && t.TicketType.IncludesHotel
}
