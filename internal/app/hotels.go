package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/domain"
)

type HotelService struct {
	enrollments domain.EnrollmentRepository
	tickets     domain.TicketRepository
	hotels      domain.HotelRepository
}

func NewHotelService(e domain.EnrollmentRepository, t domain.TicketRepository, h domain.HotelRepository) *HotelService {
	return &HotelService{enrollments: e, tickets: t, hotels: h}
}

// CheckEligibility requires an enrollment whose ticket is PAID and includes hotel.
func (s *HotelService) CheckEligibility(ctx context.Context, userID int64) error {
	enrollment, err := s.enrollments.FindWithAddressByUserID(ctx, userID)
	if err != nil {
		observability.ObserveEligibility("error")
		return fmt.Errorf("find enrollment for user %d: %w", userID, err)
	}
	if enrollment == nil {
		observability.ObserveEligibility("no_enrollment")
		return domain.NewNotFound("Enrollment not found!!")
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		observability.ObserveEligibility("error")
		return fmt.Errorf("find ticket for enrollment %d: %w", enrollment.ID, err)
	}
	if ticket == nil {
		observability.ObserveEligibility("no_ticket")
		return domain.NewNotFound("Ticket not found!!")
	}

	if !ticket.GrantsHotel() {
		observability.ObserveEligibility("payment_required")
		log.Debug().
			Int64("user_id", userID).
			Int64("ticket_id", ticket.ID).
			Str("status", string(ticket.Status)).
			Bool("includes_hotel", ticket.TicketType.IncludesHotel).
			Msg("hotel access denied")
		return domain.ErrPaymentRequired
	}

	observability.ObserveEligibility("eligible")
	return nil
}

func (s *HotelService) GetHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if err := s.CheckEligibility(ctx, userID); err != nil {
		return nil, err
	}
	hotels, err := s.hotels.FindHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	return hotels, nil
}

func (s *HotelService) GetHotelByID(ctx context.Context, userID, hotelID int64) (domain.HotelWithRooms, error) {
	if err := s.CheckEligibility(ctx, userID); err != nil {
		return domain.HotelWithRooms{}, err
	}
	hotel, err := s.hotels.FindHotelByID(ctx, hotelID)
	if err != nil {
		return domain.HotelWithRooms{}, fmt.Errorf("find hotel %d: %w", hotelID, err)
	}
	if hotel == nil {
		return domain.HotelWithRooms{}, domain.NewNotFound("")
	}
	if hotel.Rooms == nil {
		hotel.Rooms = []domain.Room{}
	}
	return *hotel, nil
}
