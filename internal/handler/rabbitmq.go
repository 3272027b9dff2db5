package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-stock-monitor/internal/monitor"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform"
	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Monitor --filename monitor.go
//go:generate mockery --name Consumer --filename consumer.go

// Monitor runs monitoring cycles.
type Monitor interface {
	RunCycle(ctx context.Context) (monitor.Outcome, error)
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ check commands.
type RMQHandler struct {
	rmq     Consumer
	monitor Monitor
	logger  *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq Consumer, monitor Monitor, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:     rmq,
		monitor: monitor,
		logger:  logger,
	}
}

// Start starts consuming check commands from RMQ and running cycle for each of them.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.HandleMessage)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// HandleMessage runs monitoring cycle requested by check command. Command received while
// cycle is running is dropped, as the running cycle already serves it.
func (h *RMQHandler) HandleMessage(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("reason", cmd.Reason).
		Msg("check requested")

	outcome, err := h.monitor.RunCycle(ctx)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		h.logger.Debug().
			Str("reason", cmd.Reason).
			Msg("check already running")
		return nil
	}
	if err != nil {
		return fmt.Errorf("requested check failed: %w", err)
	}

	h.logger.Debug().
		Str("reason", cmd.Reason).
		Str("outcome", string(outcome)).
		Msg("requested check finished")

	return nil
}

func decodeMessage(msg []byte) (*commander.CheckCommand, error) {
	var cmd commander.CheckCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode check command: %w", err)
	}

	return &cmd, nil
}
