package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

// ProfileService stores pet profiles and their favorite products in a key-value store
type ProfileService struct {
	store  domain.KeyValueStore
	logger zerolog.Logger
}

// NewProfileService creates a profile service over store
func NewProfileService(store domain.KeyValueStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger.With().Str("component", "profiles").Logger(),
	}
}

func profileKey(id string) string {
	return "pet:" + id
}

func favoritesKey(id string) string {
	return "pet:" + id + ":favoriteFoods"
}

// Create validates and stores a new profile under a generated id
func (s *ProfileService) Create(ctx context.Context, profile domain.PetProfile) (domain.PetProfile, error) {
	if err := ValidateProfile(profile); err != nil {
		return domain.PetProfile{}, err
	}
	profile = profile.Normalized()
	profile.ID = uuid.NewString()

	if err := s.save(ctx, profile); err != nil {
		return domain.PetProfile{}, err
	}
	s.logger.Info().Str("pet_id", profile.ID).Msg("profile created")
	return profile, nil
}

// Get loads a profile, or domain.ErrProfileNotFound
func (s *ProfileService) Get(ctx context.Context, id string) (domain.PetProfile, error) {
	if strings.TrimSpace(id) == "" {
		return domain.PetProfile{}, domain.ErrInvalidRequest
	}
	raw, err := s.store.Get(ctx, profileKey(id))
	if errors.Is(err, domain.ErrCacheMiss) {
		return domain.PetProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.PetProfile{}, err
	}

	var profile domain.PetProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return domain.PetProfile{}, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return profile, nil
}

// Update replaces an existing profile wholesale
func (s *ProfileService) Update(ctx context.Context, id string, profile domain.PetProfile) (domain.PetProfile, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.PetProfile{}, err
	}
	if err := ValidateProfile(profile); err != nil {
		return domain.PetProfile{}, err
	}
	profile = profile.Normalized()
	profile.ID = id

	if err := s.save(ctx, profile); err != nil {
		return domain.PetProfile{}, err
	}
	return profile, nil
}

// Delete removes a profile and its favorites
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, favoritesKey(id)); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, profileKey(id)); err != nil {
		return err
	}
	s.logger.Info().Str("pet_id", id).Msg("profile deleted")
	return nil
}

// Favorites lists the favorite compareIds of a pet in the order they were added
func (s *ProfileService) Favorites(ctx context.Context, id string) ([]string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.loadFavorites(ctx, id)
}

// ToggleFavorite adds compareID to the favorites, or removes it when present.
// It reports whether the product is a favorite afterwards.
func (s *ProfileService) ToggleFavorite(ctx context.Context, id, compareID string) (bool, []string, error) {
	if strings.TrimSpace(compareID) == "" {
		return false, nil, domain.ErrInvalidRequest
	}
	favorites, err := s.Favorites(ctx, id)
	if err != nil {
		return false, nil, err
	}

	added := false
	if i := slices.Index(favorites, compareID); i >= 0 {
		favorites = slices.Delete(favorites, i, i+1)
	} else {
		favorites = append(favorites, compareID)
		added = true
	}

	data, err := json.Marshal(favorites)
	if err != nil {
		return false, nil, err
	}
	if err := s.store.Set(ctx, favoritesKey(id), string(data)); err != nil {
		return false, nil, err
	}
	return added, favorites, nil
}

func (s *ProfileService) loadFavorites(ctx context.Context, id string) ([]string, error) {
	raw, err := s.store.Get(ctx, favoritesKey(id))
	if errors.Is(err, domain.ErrCacheMiss) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var favorites []string
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		// a corrupt list is treated as empty and overwritten on the next toggle
		s.logger.Warn().Err(err).Str("pet_id", id).Msg("discarding unreadable favorites")
		return []string{}, nil
	}
	return favorites, nil
}

func (s *ProfileService) save(ctx context.Context, profile domain.PetProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.store.Set(ctx, profileKey(profile.ID), string(data))
}
