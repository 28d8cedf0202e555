package worker

import (
	"context"
	"sync"
	"time"

	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/yield"
)

// DeviationNotifier periodically polls for predictions whose significant
// deviation has not been surfaced yet, emits a notification log line for each
// and marks them notified. Downstream channels (SMS gateways, app push) tail
// these log lines; the worker itself stays transport-agnostic.
type DeviationNotifier struct {
	yieldService yield.Service
	interval     time.Duration
	ticker       *time.Ticker
	shutdown     chan struct{}
	wg           sync.WaitGroup
	startOnce    sync.Once
}

// NewDeviationNotifier creates a new DeviationNotifier. A non-positive
// interval falls back to the default.
func NewDeviationNotifier(yieldService yield.Service, interval time.Duration) *DeviationNotifier {
	if interval <= 0 {
		interval = DefaultPollIntervalMinutes * time.Minute
	}
	return &DeviationNotifier{
		yieldService: yieldService,
		interval:     interval,
		shutdown:     make(chan struct{}),
	}
}

// Start launches the polling loop. Safe to call once; subsequent calls are no-ops.
func (w *DeviationNotifier) Start() {
	w.startOnce.Do(func() {
		w.ticker = time.NewTicker(w.interval)
		w.wg.Add(1)

		go func() {
			defer w.wg.Done()

			logger.FromContext(context.Background()).Info(LogMsgNotifierStarted, "interval", w.interval)

			for {
				select {
				case <-w.shutdown:
					return
				case <-w.ticker.C:
					w.poll(context.Background())
				}
			}
		}()
	})
}

// poll processes one round of pending notifications
func (w *DeviationNotifier) poll(ctx context.Context) {
	log := logger.FromContext(ctx)

	pending, err := w.yieldService.PredictionsNeedingNotification(ctx)
	if err != nil {
		log.Error(LogMsgNotifierPollFailed, "error", err)
		return
	}

	for _, p := range pending {
		log.Info(LogMsgDeviationNotification,
			"predictionID", p.ID,
			"cropID", p.CropID,
			"farmerID", p.FarmerID,
			"cropName", p.CropName,
			"note", p.DeviationNote)

		if err := w.yieldService.MarkNotified(ctx, p.ID); err != nil {
			log.Error(LogMsgMarkNotifiedFailed, "predictionID", p.ID, "error", err)
		}
	}
}

// Shutdown stops the polling loop and waits for an in-flight poll to finish.
func (w *DeviationNotifier) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgNotifierShutdown)

	close(w.shutdown)
	if w.ticker != nil {
		w.ticker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgNotifierShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgNotifierShutdownExpire)
		return ctx.Err()
	}
}
