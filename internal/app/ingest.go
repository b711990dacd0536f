package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/domain"
)

type IngestionService struct {
	catalog domain.CatalogClient
	repo    domain.HotelRepository
}

func NewIngestionService(c domain.CatalogClient, r domain.HotelRepository) *IngestionService {
	return &IngestionService{catalog: c, repo: r}
}

// IngestHotel copies one catalog property into the hotels and rooms tables.
// Missing or inaccessible properties are logged as misses, not returned.
func (s *IngestionService) IngestHotel(ctx context.Context, id int64) error {
	p, err := s.catalog.GetProperty(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.miss(ctx, id, 404, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return s.miss(ctx, id, 403, "inactive")
	case err != nil:
		return fmt.Errorf("fetch property %d: %w", id, err)
	}

	h, err := mapProperty(id, p)
	if err != nil {
		return s.miss(ctx, id, 422, err.Error())
	}
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", id, err)
	}
	log.Debug().Int64("id", id).Int("rooms", len(h.Rooms)).Msg("hotel upserted")
	return nil
}

func (s *IngestionService) miss(ctx context.Context, id int64, status int, reason string) error {
	log.Warn().Int64("id", id).Int("status", status).Str("reason", reason).Msg("ingest miss")
	if err := s.repo.LogMiss(ctx, id, status, reason); err != nil {
		return fmt.Errorf("log miss %d: %w", id, err)
	}
	return nil
}
