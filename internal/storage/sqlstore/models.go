package sqlstore

import (
	"time"

	"hotels_api/internal/domain"
)

// Row types mirror the upstream schema. Only hotels, rooms and ingest_misses
// are written by this service.

type User struct {
	ID        int64  `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex"`
	Password  string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Session struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"index"`
	Token     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Enrollment struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	CPF       string `gorm:"column:cpf;size:255"`
	Birthday  time.Time
	Phone     string `gorm:"size:255"`
	UserID    int64  `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Address   *Address `gorm:"foreignKey:EnrollmentID"`
}

type Address struct {
	ID            int64   `gorm:"primaryKey"`
	CEP           string  `gorm:"column:cep;size:255"`
	Street        string  `gorm:"size:255"`
	City          string  `gorm:"size:255"`
	State         string  `gorm:"size:255"`
	Number        string  `gorm:"size:255"`
	Neighborhood  string  `gorm:"size:255"`
	AddressDetail *string `gorm:"size:255"`
	EnrollmentID  int64   `gorm:"uniqueIndex"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TicketType struct {
	ID            int64  `gorm:"primaryKey"`
	Name          string `gorm:"size:255"`
	Price         int
	IsRemote      bool
	IncludesHotel bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Ticket struct {
	ID           int64  `gorm:"primaryKey"`
	TicketTypeID int64  `gorm:"index"`
	EnrollmentID int64  `gorm:"index"`
	Status       string `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TicketType   TicketType
}

type Hotel struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Image     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Rooms     []Room `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
}

type Room struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Capacity  int
	HotelID   int64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type IngestMiss struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	HTTPStatus int    `gorm:"column:http_status"`
	Reason     string `gorm:"size:255"`
	SeenAt     time.Time
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&User{}, &Session{}, &Enrollment{}, &Address{},
		&TicketType{}, &Ticket{}, &Hotel{}, &Room{}, &IngestMiss{},
	}
}

func (e Enrollment) toDomain() *domain.Enrollment {
	out := &domain.Enrollment{
		ID:        e.ID,
		Name:      e.Name,
		CPF:       e.CPF,
		Birthday:  e.Birthday,
		Phone:     e.Phone,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if a := e.Address; a != nil {
		out.Address = &domain.Address{
			ID:            a.ID,
			CEP:           a.CEP,
			Street:        a.Street,
			City:          a.City,
			State:         a.State,
			Number:        a.Number,
			Neighborhood:  a.Neighborhood,
			AddressDetail: a.AddressDetail,
			EnrollmentID:  a.EnrollmentID,
		}
	}
	return out
}

func (t Ticket) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:           t.ID,
		TicketTypeID: t.TicketTypeID,
		EnrollmentID: t.EnrollmentID,
		Status:       domain.TicketStatus(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		TicketType: domain.TicketType{
			ID:            t.TicketType.ID,
			Name:          t.TicketType.Name,
			Price:         t.TicketType.Price,
			IsRemote:      t.TicketType.IsRemote,
			IncludesHotel: t.TicketType.IncludesHotel,
			CreatedAt:     t.TicketType.CreatedAt,
			UpdatedAt:     t.TicketType.UpdatedAt,
		},
	}
}

func (h Hotel) toDomain() domain.Hotel {
	return domain.Hotel{ID: h.ID, Name: h.Name, Image: h.Image, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt}
}

func (r Room) toDomain() domain.Room {
	return domain.Room{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		HotelID:   r.HotelID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
