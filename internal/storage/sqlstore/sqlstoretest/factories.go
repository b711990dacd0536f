// Package sqlstoretest provides an in-memory store and row factories for tests.
package sqlstoretest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotels_api/internal/auth"
	"hotels_api/internal/domain"
	"hotels_api/internal/storage/sqlstore"
)

var seq atomic.Int64

func next() int64 { return seq.Add(1) }

// OpenMemory returns a migrated sqlite database private to the test.
func OpenMemory(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, next())
	db, err := sqlstore.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB) sqlstore.User {
	t.Helper()
	n := next()
	u := sqlstore.User{Email: fmt.Sprintf("user%d@example.com", n), Password: "hashed"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// GenerateValidToken signs a token for the user and opens a session for it.
func GenerateValidToken(t *testing.T, db *gorm.DB, signer *auth.Signer, u sqlstore.User) string {
	t.Helper()
	tok, err := signer.Issue(u.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&sqlstore.Session{UserID: u.ID, Token: tok}).Error)
	return tok
}

func CreateEnrollmentWithAddress(t *testing.T, db *gorm.DB, u sqlstore.User) sqlstore.Enrollment {
	t.Helper()
	n := next()
	e := sqlstore.Enrollment{
		Name:     fmt.Sprintf("Guest %d", n),
		CPF:      fmt.Sprintf("%011d", n),
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:    "(21) 98999-9999",
		UserID:   u.ID,
		Address: &sqlstore.Address{
			CEP:          "90830-563",
			Street:       "Rua das Flores",
			City:         "Porto Alegre",
			State:        "RS",
			Number:       fmt.Sprint(n),
			Neighborhood: "Centro",
		},
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func CreateTicketType(t *testing.T, db *gorm.DB, includesHotel bool) sqlstore.TicketType {
	t.Helper()
	tt := sqlstore.TicketType{
		Name:          fmt.Sprintf("Ticket type %d", next()),
		Price:         250,
		IsRemote:      false,
		IncludesHotel: includesHotel,
	}
	require.NoError(t, db.Create(&tt).Error)
	return tt
}

func CreateTicket(t *testing.T, db *gorm.DB, enrollmentID, ticketTypeID int64, status domain.TicketStatus) sqlstore.Ticket {
	t.Helper()
	tk := sqlstore.Ticket{EnrollmentID: enrollmentID, TicketTypeID: ticketTypeID, Status: string(status)}
	require.NoError(t, db.Omit("TicketType").Create(&tk).Error)
	return tk
}

func CreateHotel(t *testing.T, db *gorm.DB) sqlstore.Hotel {
	t.Helper()
	n := next()
	h := sqlstore.Hotel{
		Name:  fmt.Sprintf("Hotel %d", n),
		Image: fmt.Sprintf("https://images.example.com/hotel-%d.jpg", n),
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func CreateRoom(t *testing.T, db *gorm.DB, h sqlstore.Hotel) sqlstore.Room {
	t.Helper()
	n := next()
	r := sqlstore.Room{Name: fmt.Sprintf("Room %d", n), Capacity: int(n%4) + 1, HotelID: h.ID}
	require.NoError(t, db.Create(&r).Error)
	return r
}
