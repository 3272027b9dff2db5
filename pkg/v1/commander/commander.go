package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// CheckCommand asks the monitor to run catalog check immediately.
type CheckCommand struct {
	Reason string `json:"reason,omitempty"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// CheckCommander sends check commands.
type CheckCommander struct {
	sender Sender
}

// NewCheckCommander returns new CheckCommander using provided sender for sending messages.
func NewCheckCommander(sender Sender) CheckCommander {
	return CheckCommander{
		sender: sender,
	}
}

// SendCheckCommand sends check command with provided reason.
func (c CheckCommander) SendCheckCommand(ctx context.Context, reason string) error {
	cmd := CheckCommand{
		Reason: reason,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal check command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
