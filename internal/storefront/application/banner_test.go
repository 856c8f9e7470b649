package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

func TestRunBannerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var shown []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunBanner(ctx, domain.NewCarousel("a", "b"), 5*time.Millisecond, func(s string) {
			mu.Lock()
			defer mu.Unlock()
			shown = append(shown, s)
			if len(shown) == 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("banner did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "a"}, shown[:3])
}

func TestDebouncerRunsLastOnly(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		d.Trigger(func() { got <- i })
	}

	select {
	case v := <-got:
		assert.Equal(t, 3, v)
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	select {
	case v := <-got:
		t.Fatalf("unexpected extra call %d", v)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerZeroDelayIsSynchronous(t *testing.T) {
	ran := false
	NewDebouncer(0).Trigger(func() { ran = true })
	assert.True(t, ran)
}
