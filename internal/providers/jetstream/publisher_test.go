package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openregistry/ownership/internal/adapter"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
	"github.com/openregistry/ownership/internal/messaging"
	"github.com/openregistry/ownership/internal/mocks"
	"github.com/openregistry/ownership/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "OWNERSHIP_NOTIFICATIONS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test-publisher",
	}
}

func TestNewPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("connects and ensures the stream", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		natsConn := mocks.NewMockNatsConn(ctrl)
		js := mocks.NewMockJetStream(ctrl)
		natsJS := mocks.NewMockNatsJetStream(ctrl)

		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).
			Return(natsConn, js, nil)
		js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) (natsjs.Stream, error) {
				assert.Equal(t, "OWNERSHIP_NOTIFICATIONS", cfg.Name)
				assert.Equal(t, []string{"notifications.>"}, cfg.Subjects)
				assert.Equal(t, 2*time.Minute, cfg.Duplicates)
				return nil, nil
			})

		pub, err := jetstream.NewPublisher(ctx, testConfig(), natsJS, adapter.RealJSON{})
		require.NoError(t, err)
		require.NotNil(t, pub)

		natsConn.EXPECT().Close()
		pub.Close()
	})

	t.Run("connection failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		natsJS := mocks.NewMockNatsJetStream(ctrl)
		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).
			Return(nil, nil, errors.New("no servers available"))

		_, err := jetstream.NewPublisher(ctx, testConfig(), natsJS, adapter.RealJSON{})
		assert.ErrorContains(t, err, "failed to connect")
	})

	t.Run("stream failure closes the connection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		natsConn := mocks.NewMockNatsConn(ctrl)
		js := mocks.NewMockJetStream(ctrl)
		natsJS := mocks.NewMockNatsJetStream(ctrl)

		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).
			Return(natsConn, js, nil)
		js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("stream rejected"))
		natsConn.EXPECT().Close()

		_, err := jetstream.NewPublisher(ctx, testConfig(), natsJS, adapter.RealJSON{})
		assert.ErrorContains(t, err, "failed to ensure notification stream")
	})
}

func TestPublishEvent(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*gomock.Controller, *mocks.MockJetStream, messaging.Publisher) {
		ctrl := gomock.NewController(t)

		natsConn := mocks.NewMockNatsConn(ctrl)
		js := mocks.NewMockJetStream(ctrl)
		natsJS := mocks.NewMockNatsJetStream(ctrl)

		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).
			Return(natsConn, js, nil)
		js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil, nil)

		pub, err := jetstream.NewPublisher(ctx, testConfig(), natsJS, adapter.RealJSON{})
		require.NoError(t, err)
		return ctrl, js, pub
	}

	t.Run("publishes on the kind subject", func(t *testing.T) {
		ctrl, js, pub := setup(t)
		defer ctrl.Finish()

		event := &domain.NotificationEvent{
			EventID: "01HZXW5T9GQRS3J0B3YV4N8KDE",
			Kind:    domain.EventOwnerAdded,
			Payload: domain.NotificationPayload{PackageName: "redcarpet"},
		}

		js.EXPECT().Publish(gomock.Any(), "notifications.owner.added", gomock.Any(), gomock.Any()).
			Return(&natsjs.PubAck{}, nil)

		assert.NoError(t, pub.PublishEvent(ctx, event))
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		ctrl, js, pub := setup(t)
		defer ctrl.Finish()

		event := &domain.NotificationEvent{
			EventID: "01HZXW5T9GQRS3J0B3YV4N8KDF",
			Kind:    domain.EventRequestClosed,
		}

		js.EXPECT().Publish(gomock.Any(), "notifications.request.closed", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("no responders"))

		assert.ErrorContains(t, pub.PublishEvent(ctx, event), "failed to publish event")
	})
}
