// Package notifier formats change reports and delivers them to messaging channel.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Sender --filename sender.go

// DefaultSendDelay is pause between sending consecutive chunks.
const DefaultSendDelay = 500 * time.Millisecond

// Sender sends single text message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Option is custom configuration of Notifier.
type Option func(n *Notifier)

// Notifier dispatches message chunks one by one.
type Notifier struct {
	sender    Sender
	sendDelay time.Duration
	logger    *zerolog.Logger
}

// NewNotifier returns new Notifier.
func NewNotifier(sender Sender, logger *zerolog.Logger, ops ...Option) *Notifier {
	n := &Notifier{
		sender:    sender,
		sendDelay: DefaultSendDelay,
		logger:    logger,
	}

	for _, op := range ops {
		op(n)
	}

	return n
}

// Dispatch sends chunks sequentially. Failed chunk doesn't stop sending of the following ones,
// all failures are returned wrapped in ErrNotify.
func (n *Notifier) Dispatch(ctx context.Context, chunks []string) error {
	var errs []error

	for ix, chunk := range chunks {
		if ix > 0 {
			if err := platform.Sleep(ctx, n.sendDelay); err != nil {
				errs = append(errs, err)
				break
			}
		}

		if err := n.sender.Send(ctx, chunk); err != nil {
			n.logger.Error().
				Err(err).
				Int("chunk", ix+1).
				Int("chunks", len(chunks)).
				Msg("can't send notification")
			errs = append(errs, fmt.Errorf("chunk %d: %w", ix+1, err))
			continue
		}

		n.logger.Info().
			Int("chunk", ix+1).
			Int("chunks", len(chunks)).
			Msg("notification sent")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrNotify, errors.Join(errs...))
	}

	return nil
}

// WithSendDelay sets pause between consecutive chunks.
func WithSendDelay(d time.Duration) Option {
	return func(n *Notifier) {
		n.sendDelay = d
	}
}
