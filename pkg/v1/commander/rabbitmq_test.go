package commander_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander"
	"github.com/MichalMitros/catalog-stock-monitor/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitRabbitMQSenderSend(t *testing.T) {
	body := []byte(`{"reason":"manual"}`)

	tests := map[string]struct {
		routingKey     string
		publishes      bool
		publisherError error
		wantErr        error
	}{
		"ok": {
			routingKey: faker.Word(),
			publishes:  true,
		},
		"publisher error": {
			routingKey:     faker.Word(),
			publishes:      true,
			publisherError: assert.AnError,
			wantErr:        assert.AnError,
		},
		"no routing key": {
			wantErr: commander.ErrNoRoutingKey,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			publisher := mocks.NewRabbitMQPublisher(t)
			if tt.publishes {
				publisher.On("Publish", mock.Anything, tt.routingKey, body).Return(tt.publisherError).Once()
			}

			sender := commander.NewRabbitMQSender(publisher, tt.routingKey)
			err := sender.Send(context.TODO(), body)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
