package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/foresightlabs/market-api/pkg/event"
)

const serviceName = "EventService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the event Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) ListEvents(ctx context.Context) (events []*event.Event, err error) {
	start := time.Now()

	defer func() {
		if err != nil {
			ls.logger.Error("ListEvents failed",
				zap.String("service", serviceName),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("ListEvents completed",
				zap.String("service", serviceName),
				zap.Int("count", len(events)),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}()

	return ls.svc.ListEvents(ctx)
}

func (ls *logService) GetEvent(ctx context.Context, id int64) (evt *event.Event, err error) {
	start := time.Now()

	defer func() {
		if err != nil {
			ls.logger.Error("GetEvent failed",
				zap.String("service", serviceName),
				zap.Int64("event_id", id),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("GetEvent completed",
				zap.String("service", serviceName),
				zap.Int64("event_id", id),
				zap.Duration("duration", time.Since(start)),
			)
		}
	}()

	return ls.svc.GetEvent(ctx, id)
}

func (ls *logService) CreateEvent(ctx context.Context, req *event.CreateRequest) (created *event.Event, err error) {
	start := time.Now()

	ls.logger.Info("CreateEvent started",
		zap.String("service", serviceName),
		zap.String("name", req.Name),
		zap.Int("markets", len(req.Markets)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("CreateEvent failed",
				zap.String("service", serviceName),
				zap.String("name", req.Name),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("CreateEvent completed",
				zap.String("service", serviceName),
				zap.Int64("event_id", created.ID),
				zap.String("name", created.Name),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.CreateEvent(ctx, req)
}

func (ls *logService) UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) (err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("UpdateMarketStats failed",
				zap.String("service", serviceName),
				zap.Int64("market_id", marketID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("UpdateMarketStats completed",
				zap.String("service", serviceName),
				zap.Int64("market_id", marketID),
				zap.Bool("price_updated", update.LastPrice != nil),
				zap.Bool("volume_updated", update.TradedDelta != nil),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.UpdateMarketStats(ctx, marketID, update)
}
