package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skycast-dev/skycast/internal/models"
)

type gateway interface {
	Fetch(ctx context.Context, query string) (models.WeatherSnapshot, error)
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient isolates a flaky provider behind a circuit breaker. A lookup
// miss is not a provider failure and must not trip the breaker.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped gateway
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped gateway) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrLocationNotFound)
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Fetch(ctx context.Context, query string) (models.WeatherSnapshot, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, query)
	})
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%s: %w", b.name, err)
	}
	snap, ok := result.(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{}, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return snap, nil
}
