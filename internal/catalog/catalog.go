// Package catalog supplies the read-only offers the booking core consumes.
// The catalog is an external collaborator: the core never writes to it, and
// booking records keep their own snapshot of offer fields.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/tripflow/internal/domain"
)

type CatalogUseCase interface {
	List(ctx context.Context) ([]domain.Offer, error)
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
}

type Cache interface {
	GetOffers(ctx context.Context) ([]domain.Offer, error)
	SetOffers(ctx context.Context, offers []domain.Offer) error
}

type Service struct {
	offers []domain.Offer
	cache  Cache
}

// NewService builds a catalog over a fixed offer set. cache may be nil.
func NewService(offers []domain.Offer, cache Cache) *Service {
	return &Service{offers: offers, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]domain.Offer, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetOffers(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	offers := make([]domain.Offer, len(s.offers))
	copy(offers, s.offers)
	if s.cache != nil {
		_ = s.cache.SetOffers(ctx, offers)
	}
	return offers, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	for _, offer := range s.offers {
		if strings.EqualFold(offer.ID, id) {
			o := offer
			return &o, nil
		}
	}
	return nil, fmt.Errorf("offer %s: %w", id, domain.ErrNotFound)
}

var _ CatalogUseCase = (*Service)(nil)

// DemoOffers is the built-in catalog used when no external one is wired.
func DemoOffers() []domain.Offer {
	return []domain.Offer{
		{
			ID:                "bali-7d",
			Kind:              domain.OfferKindPackage,
			Title:             "Bali Escape",
			UnitPriceUSD:      499,
			CapacityAvailable: 12,
			Destination:       "Bali",
			Country:           "Indonesia",
			DurationDays:      7,
			Included:          []string{"Hotel", "Breakfast", "Airport transfer"},
		},
		{
			ID:                "swiss-10d",
			Kind:              domain.OfferKindPackage,
			Title:             "Swiss Alps Grand Tour",
			UnitPriceUSD:      1899,
			CapacityAvailable: 8,
			Destination:       "Interlaken",
			Country:           "Switzerland",
			DurationDays:      10,
			Included:          []string{"Hotel", "Breakfast", "Rail pass", "Guide"},
		},
		{
			ID:                "fl-204",
			Kind:              domain.OfferKindFlight,
			Title:             "New York to Paris",
			UnitPriceUSD:      612,
			CapacityAvailable: 34,
			FromCode:          "JFK",
			FromCity:          "New York",
			ToCode:            "CDG",
			ToCity:            "Paris",
			FlightNo:          "TF204",
			CabinClass:        "Economy",
			DepartTime:        "08:15",
			ArriveTime:        "21:40",
		},
		{
			ID:                "fl-311",
			Kind:              domain.OfferKindFlight,
			Title:             "London to Singapore",
			UnitPriceUSD:      978,
			CapacityAvailable: 21,
			FromCode:          "LHR",
			FromCity:          "London",
			ToCode:            "SIN",
			ToCity:            "Singapore",
			FlightNo:          "TF311",
			CabinClass:        "Economy",
			DepartTime:        "22:05",
			ArriveTime:        "18:10",
		},
	}
}
