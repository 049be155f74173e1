package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu         sync.Mutex
	data       map[string]interface{}
	setError   error
	getCalls   int
	clearCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.data = make(map[string]interface{})
}

func (m *MockCacheRepository) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// MockCatalogSource is a mock implementation of domain.CatalogSource
type MockCatalogSource struct {
	mu      sync.Mutex
	records []domain.RawProductRecord
	err     error
	calls   int
}

func (m *MockCatalogSource) Fetch(ctx context.Context) ([]domain.RawProductRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *MockCatalogSource) set(records []domain.RawProductRecord, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records, m.err = records, err
}

// MockKeyValueStore is a mock implementation of domain.KeyValueStore
type MockKeyValueStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{data: make(map[string]string)}
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func adultMediumProfile() domain.PetProfile {
	return domain.PetProfile{
		Name:          "Rex",
		AgeGroup:      domain.AgeAdult,
		BreedSize:     domain.BreedMedium,
		ActivityLevel: domain.ActivityMedium,
		WeightGoal:    domain.GoalMaintenance,
	}
}

// sampleRecords is a small catalog export in source order
func sampleRecords() []domain.RawProductRecord {
	return []domain.RawProductRecord{
		{
			"id":               "p1",
			"brand":            "Acme",
			"line":             "Chow",
			"price":            "30.0",
			"size_kg":          "9.07",
			"tags":             "high protein, best-value",
			"breed_size":       "Medium",
			"life_stage":       "Adult",
			"format":           "Dry",
			"primary_proteins": "Chicken",
			"protein_pct":      "32",
			"fat_pct":          "16",
			"fiber_pct":        "4",
			"kcal_per_cup":     "410",
			"ingredients":      "Deboned chicken, brown rice, oatmeal",
		},
		{
			"id":               "p2",
			"brand":            "Bark Co",
			"line":             "Lean",
			"price":            "45.5",
			"size_kg":          "11.3",
			"tags":             "weight-loss",
			"breed_size":       "Medium",
			"life_stage":       "Adult",
			"grain_free":       "Yes",
			"primary_proteins": "Salmon",
			"protein_pct":      "28",
			"fat_pct":          "9",
			"fiber_pct":        "6",
			"moisture_pct":     "10",
			"kcal_per_cup":     "330",
		},
		{
			"id":               "p3",
			"brand":            "Acme",
			"line":             "Puppy Start",
			"price":            "25",
			"tags":             "most-popular",
			"breed_size":       "Medium",
			"life_stage":       "Puppy",
			"primary_proteins": "Chicken",
			"protein_pct":      "30",
		},
		{
			"id":               "p4",
			"brand":            "Wolf",
			"line":             "Wild Beef",
			"tags":             "most-popular",
			"breed_size":       "Medium Breed",
			"life_stage":       "All Life Stages",
			"primary_proteins": "Beef, Lamb",
			"protein_pct":      "34",
			"fat_pct":          "18",
		},
	}
}
