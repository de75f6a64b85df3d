package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidEvent() *payment.PaymentPaidEvent {
	p := &payment.Payment{OrderID: 9, Amount: decimal.NewFromInt(250), MerchantTradeNo: "ABCDEF0123456789ABCD", TradeNo: "T1"}
	p.ID = 4
	return payment.NewPaymentPaidEvent(p)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		if m.Topic != "shop.events" {
			return errors.New("wrong topic " + m.Topic)
		}
		key, _ := m.Key.Encode()
		if string(key) != "Payment:4" {
			return errors.New("wrong key " + string(key))
		}
		if len(m.Headers) != 1 || string(m.Headers[0].Value) != payment.EventTypePaymentPaid {
			return errors.New("missing event_type header")
		}
		return nil
	})

	publisher := NewKafkaPublisherWithProducer(producer, "shop.events", nil)
	require.NoError(t, publisher.Publish(context.Background(), paidEvent()))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisherWithProducer(producer, "shop.events", nil)
	err := publisher.Publish(context.Background(), paidEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_NothingToSend(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	publisher := NewKafkaPublisherWithProducer(producer, "shop.events", nil)

	require.NoError(t, publisher.Publish(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, publisher.Publish(ctx, paidEvent()), context.Canceled)
	require.NoError(t, publisher.Close())
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(config.KafkaConfig{Topic: "t"}, nil)
	assert.EqualError(t, err, "kafka brokers are required")

	_, err = NewKafkaPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}}, nil)
	assert.EqualError(t, err, "kafka topic is required")
}

func TestSerializer_RoundTrip(t *testing.T) {
	s := NewSerializer()
	event := paidEvent()

	env, data, err := s.Encode(event)
	require.NoError(t, err)
	assert.Equal(t, "Payment:4", env.Key())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, payment.EventTypePaymentPaid, raw["type"])
	assert.Equal(t, "Payment", raw["aggregate_type"])

	decoded, err := s.Decode(data)
	require.NoError(t, err)
	paid, ok := decoded.(*payment.PaymentPaidEvent)
	require.True(t, ok)
	assert.Equal(t, int64(9), paid.OrderID)
	assert.True(t, decimal.NewFromInt(250).Equal(paid.Amount))
	assert.Equal(t, event.EventID(), paid.EventID())
}

func TestSerializer_UnknownType(t *testing.T) {
	s := NewSerializer()
	other := shared.NewBaseDomainEvent("Mystery", "Thing", 1)
	_, data, err := s.Encode(other)
	require.NoError(t, err)

	_, err = s.Decode(data)
	assert.EqualError(t, err, "unknown event type: Mystery")

	assert.Contains(t, s.registry, trade.EventTypeOrderCreated)
}

func TestNewProducerConfig(t *testing.T) {
	cfg := NewProducerConfig("shop-backend")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "shop-backend", cfg.ClientID)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
}
