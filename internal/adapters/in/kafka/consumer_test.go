package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	consumer_adapter "orderflow/internal/adapters/in/kafka"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeReader feeds a fixed set of messages and records commits. Once the
// queue is drained, FetchMessage blocks until the reader is closed or the
// context expires, mirroring kafka.Reader behavior.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []kafka.Message
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{
		msgs:   msgs,
		closed: make(chan struct{}),
	}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case <-r.closed:
		return kafka.Message{}, io.EOF
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closeOnce.Do(func() { close(r.closed) })
	return nil
}

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type MockProcessHandler struct{ mock.Mock }

func (m *MockProcessHandler) Handle(
	ctx context.Context, cmd commands.ProcessOrderCreatedCommand,
) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockDeadLetterPublisher struct{ mock.Mock }

func (m *MockDeadLetterPublisher) Publish(
	ctx context.Context, key, value []byte, reason string,
) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

func notificationMessage(t *testing.T, offset int64) (kafka.Message, kernel.UUID) {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Acme", "Widget", 2, 19.99)
	require.NoError(t, err)

	payload, err := json.Marshal(order.NewCreatedNotification(o))
	require.NoError(t, err)

	return kafka.Message{
		Key:    []byte(o.ID().String()),
		Value:  payload,
		Offset: offset,
	}, o.ID()
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestConsumer_ProcessesBatchAndCommits(t *testing.T) {
	msg1, id1 := notificationMessage(t, 1)
	msg2, id2 := notificationMessage(t, 2)
	reader := newFakeReader(msg1, msg2)

	handler := new(MockProcessHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderCreatedCommand) bool {
		return cmd.OrderID().IsEqual(id1)
	})).Return(nil).Once()
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderCreatedCommand) bool {
		return cmd.OrderID().IsEqual(id2)
	})).Return(nil).Once()

	deadLetter := new(MockDeadLetterPublisher)

	consumer := consumer_adapter.NewConsumer(reader, handler, deadLetter, testLogger(), 16)
	consumer.Start(t.Context())

	require.Eventually(t, func() bool { return reader.committedCount() == 2 },
		5*time.Second, 10*time.Millisecond)
	consumer.Stop()

	handler.AssertExpectations(t)
	deadLetter.AssertNumberOfCalls(t, "Publish", 0)
}

func TestConsumer_MalformedMessage_GoesToDeadLetter(t *testing.T) {
	malformed := kafka.Message{Key: []byte("k"), Value: []byte("{not json"), Offset: 1}
	reader := newFakeReader(malformed)

	handler := new(MockProcessHandler)
	deadLetter := new(MockDeadLetterPublisher)
	deadLetter.On("Publish", mock.Anything, []byte("k"), []byte("{not json"), "malformed payload").
		Return(nil).Once()

	consumer := consumer_adapter.NewConsumer(reader, handler, deadLetter, testLogger(), 16)
	consumer.Start(t.Context())

	require.Eventually(t, func() bool { return reader.committedCount() == 1 },
		5*time.Second, 10*time.Millisecond)
	consumer.Stop()

	handler.AssertNumberOfCalls(t, "Handle", 0)
	deadLetter.AssertExpectations(t)
}

func TestConsumer_UnexpectedEventType_SkippedAndCommitted(t *testing.T) {
	payload, err := json.Marshal(order.CreatedNotification{
		EventType: "Order.Cancelled",
		ID:        kernel.NewUUID().String(),
	})
	require.NoError(t, err)
	reader := newFakeReader(kafka.Message{Key: []byte("k"), Value: payload, Offset: 1})

	handler := new(MockProcessHandler)
	deadLetter := new(MockDeadLetterPublisher)

	consumer := consumer_adapter.NewConsumer(reader, handler, deadLetter, testLogger(), 16)
	consumer.Start(t.Context())

	require.Eventually(t, func() bool { return reader.committedCount() == 1 },
		5*time.Second, 10*time.Millisecond)
	consumer.Stop()

	handler.AssertNumberOfCalls(t, "Handle", 0)
	deadLetter.AssertNumberOfCalls(t, "Publish", 0)
}

func TestConsumer_OrderNotFound_GoesToDeadLetterAndCommits(t *testing.T) {
	msg, id := notificationMessage(t, 1)
	reader := newFakeReader(msg)

	handler := new(MockProcessHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewObjectNotFoundError("orderId", id)).Once()

	deadLetter := new(MockDeadLetterPublisher)
	deadLetter.On("Publish", mock.Anything, msg.Key, msg.Value, "order not found").
		Return(nil).Once()

	consumer := consumer_adapter.NewConsumer(reader, handler, deadLetter, testLogger(), 16)
	consumer.Start(t.Context())

	require.Eventually(t, func() bool { return reader.committedCount() == 1 },
		5*time.Second, 10*time.Millisecond)
	consumer.Stop()

	handler.AssertExpectations(t)
	deadLetter.AssertExpectations(t)
}

func TestConsumer_InfrastructureError_RetriesBatchBeforeCommit(t *testing.T) {
	msg, _ := notificationMessage(t, 1)
	reader := newFakeReader(msg)

	handler := new(MockProcessHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewInfrastructureError("update order", errors.New("db down"))).Once()
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(nil).Once()

	deadLetter := new(MockDeadLetterPublisher)

	consumer := consumer_adapter.NewConsumer(reader, handler, deadLetter, testLogger(), 16)
	consumer.Start(t.Context())

	// the failed attempt withholds the commit; the retry settles the batch
	require.Eventually(t, func() bool { return reader.committedCount() == 1 },
		10*time.Second, 10*time.Millisecond)
	consumer.Stop()

	handler.AssertExpectations(t)
	deadLetter.AssertNumberOfCalls(t, "Publish", 0)
}

func TestConsumer_StopWithoutMessages_ReturnsCleanly(t *testing.T) {
	reader := newFakeReader()

	consumer := consumer_adapter.NewConsumer(
		reader, new(MockProcessHandler), new(MockDeadLetterPublisher), testLogger(), 16)
	consumer.Start(t.Context())

	time.Sleep(50 * time.Millisecond)
	consumer.Stop()

	require.Zero(t, reader.committedCount())
}
