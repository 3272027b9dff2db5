package commander_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendCheckCommand(t *testing.T) {
	reason := faker.Word()

	tests := map[string]struct {
		reason      string
		body        []byte
		senderError error
		wantErr     error
	}{
		"ok": {
			reason: reason,
			body:   []byte(fmt.Sprintf(`{"reason":"%s"}`, reason)),
		},
		"no reason": {
			body: []byte(`{}`),
		},
		"sender error": {
			reason:      reason,
			body:        []byte(fmt.Sprintf(`{"reason":"%s"}`, reason)),
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, tt.body).Return(tt.senderError)

			cmndr := commander.NewCheckCommander(sender)
			err := cmndr.SendCheckCommand(context.TODO(), tt.reason)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
