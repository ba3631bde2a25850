package dispatcher

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/openregistry/ownership/internal/adapter"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
	"github.com/openregistry/ownership/internal/messaging"
	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
	"github.com/openregistry/ownership/internal/webhook"
)

// Config holds dispatcher tuning
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	MaxElapsed   time.Duration
	PoolSize     int
	QueueSize    int
}

// Dispatcher drains the notification outbox to the message broker.
// Delivery is at-least-once: a crash between publish and the sent mark
// republishes the row, and the broker's duplicate window absorbs it.
type Dispatcher struct {
	store  store.Store
	pub    messaging.Publisher
	signer *webhook.Signer
	clock  adapter.Clock
	json   adapter.JSON
	pool   pond.Pool
	cfg    Config
}

// NewDispatcher creates a new outbox dispatcher. signer may be nil, in which
// case envelopes are published unsigned.
func NewDispatcher(s store.Store, pub messaging.Publisher, signer *webhook.Signer, clock adapter.Clock, jsonAdapter adapter.JSON, cfg Config) *Dispatcher {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.MaxElapsed == 0 {
		cfg.MaxElapsed = 30 * time.Second
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1024
	}

	return &Dispatcher{
		store:  s,
		pub:    pub,
		signer: signer,
		clock:  clock,
		json:   jsonAdapter,
		pool:   pond.NewPool(cfg.PoolSize, pond.WithQueueSize(cfg.QueueSize)),
		cfg:    cfg,
	}
}

// Run polls the outbox until the context is canceled, then drains the pool
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := d.DrainOnce(ctx); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "outbox drain failed"))
		}

		select {
		case <-ctx.Done():
			d.pool.StopAndWait()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DrainOnce lists one batch of pending rows and dispatches them on the
// worker pool, waiting for the batch to settle before returning. Waiting per
// batch keeps a row from being picked up twice by overlapping polls.
func (d *Dispatcher) DrainOnce(ctx context.Context) error {
	rows, err := d.store.ListPendingNotifications(ctx, d.cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	group := d.pool.NewGroup()
	for _, row := range rows {
		group.Submit(func() {
			d.dispatch(ctx, row)
		})
	}
	group.Wait()

	return nil
}

// dispatch publishes one outbox row and records the outcome
func (d *Dispatcher) dispatch(ctx context.Context, row schema.Notification) {
	event, err := d.buildEvent(row)
	if err != nil {
		// Malformed payloads never become publishable; fail them terminally
		logger.ErrorCtx(ctx, err,
			zap.String("message", "dropping malformed outbox row"),
			zap.Uint64("notification_id", row.ID))
		if markErr := d.store.MarkNotificationFailed(ctx, row.ID, d.clock.Now(), err.Error(), true); markErr != nil {
			logger.ErrorCtx(ctx, markErr, zap.Uint64("notification_id", row.ID))
		}
		return
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = d.cfg.MaxElapsed

	err = backoff.Retry(func() error {
		return d.pub.PublishEvent(ctx, event)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		terminal := row.Attempts+1 >= d.cfg.MaxAttempts
		logger.WarnCtx(ctx, "notification publish failed",
			zap.Uint64("notification_id", row.ID),
			zap.String("event_id", row.EventID),
			zap.Int("attempts", row.Attempts+1),
			zap.Bool("terminal", terminal),
			zap.Error(err))
		if markErr := d.store.MarkNotificationFailed(ctx, row.ID, d.clock.Now(), err.Error(), terminal); markErr != nil {
			logger.ErrorCtx(ctx, markErr, zap.Uint64("notification_id", row.ID))
		}
		return
	}

	if err := d.store.MarkNotificationSent(ctx, row.ID, d.clock.Now()); err != nil {
		// The publish stands; the row will be republished and deduped
		logger.ErrorCtx(ctx, err,
			zap.String("message", "failed to mark notification sent"),
			zap.Uint64("notification_id", row.ID))
	}
}

// buildEvent turns an outbox row into the broker envelope, signing it when a
// webhook secret is configured
func (d *Dispatcher) buildEvent(row schema.Notification) (*domain.NotificationEvent, error) {
	var payload domain.NotificationPayload
	if err := d.json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, err
	}

	event := &domain.NotificationEvent{
		EventID:    row.EventID,
		Kind:       row.EventKind,
		RecordedAt: row.CreatedAt,
		Payload:    payload,
	}

	if d.signer != nil {
		sig, err := d.signer.Sign(payload)
		if err != nil {
			return nil, err
		}
		event.Signature = sig
	}

	return event, nil
}
