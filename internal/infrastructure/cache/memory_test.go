package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	t.Run("returns the stored value unchanged", func(t *testing.T) {
		recs := []domain.Recommendation{{Product: domain.CanonicalProduct{CompareID: "p1::acme::chow"}}}
		if err := cache.Set(ctx, "rec:1:abc:default", recs, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "rec:1:abc:default")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		typed, ok := got.([]domain.Recommendation)
		if !ok {
			t.Fatalf("Get() type = %T, want []domain.Recommendation", got)
		}
		if len(typed) != 1 || typed[0].Product.CompareID != "p1::acme::chow" {
			t.Errorf("Get() = %+v, want the stored recommendation", typed)
		}
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		if err := cache.Set(ctx, "short", "v", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		if _, err := cache.Get(ctx, "short"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
		}
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		if err := cache.Set(ctx, "forever", 1, 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)

		if _, err := cache.Get(ctx, "forever"); err != nil {
			t.Errorf("Get() error = %v, want nil", err)
		}
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "delete-test", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(ctx, "delete-test"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, "delete-test"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "exists-test")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}

	_ = cache.Set(ctx, "exists-test", "value", time.Minute)
	exists, err = cache.Exists(ctx, "exists-test")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true, nil", exists, err)
	}

	_ = cache.Set(ctx, "short-ttl", "value", time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if exists, _ = cache.Exists(ctx, "short-ttl"); exists {
		t.Errorf("Exists() = true, want false after expiration")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute)
	}
	if size := cache.Size(); size != 5 {
		t.Fatalf("Size() = %d, want 5 before clear", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
	if _, err := cache.Get(ctx, "k0"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after clear error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_CleanupEvictsExpired(t *testing.T) {
	cache := NewMemoryCache(5 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	_ = cache.Set(ctx, "gone", 1, time.Millisecond)
	_ = cache.Set(ctx, "kept", 2, time.Minute)

	deadline := time.Now().Add(time.Second)
	for cache.Size() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after cleanup", size)
	}
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	cache.Close()
	cache.Close()

	if err := cache.Set(context.Background(), "k", "v", time.Minute); err != nil {
		t.Errorf("Set() after Close error = %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}
