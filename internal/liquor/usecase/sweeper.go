package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/inventory-service/internal/liquor"
	"go.uber.org/zap"
)

// Locker is the cross-instance single-flight guard for the sweep.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

const sweepLockKey = "lock:liquor:autodiscard-sweep"

// Sweeper periodically runs the auto-discard sweep. Only one instance runs
// it at a time; the per-item row locks inside the sweep keep it safe
// against in-flight pours either way.
type Sweeper struct {
	uc       liquor.UseCase
	locker   Locker
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(uc liquor.UseCase, locker Locker, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		uc:       uc,
		locker:   locker,
		interval: interval,
		logger:   log,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("starting auto-discard sweeper", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping auto-discard sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	lockValue := uuid.New().String()
	if s.locker != nil {
		ok, err := s.locker.AcquireLock(ctx, sweepLockKey, lockValue, s.interval)
		if err != nil {
			s.logger.Error("sweep lock acquisition failed", zap.Error(err))
			return
		}
		if !ok {
			return // another instance is sweeping
		}
		defer s.locker.ReleaseLock(ctx, sweepLockKey, lockValue)
	}

	if _, err := s.uc.SweepAutoDiscard(ctx); err != nil {
		s.logger.Error("auto-discard sweep failed", zap.Error(err))
	}
}
