package commands_test

import (
	"context"
	"sync"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// The fakes below form an in-memory rendition of the store and transport so
// the whole pipeline can run in one test: create an order, capture the
// notification the publisher would put on the wire, feed it to the processing
// handler, and observe the terminal state.

type memoryStore struct {
	mu       sync.Mutex
	orders   map[string]*order.Order
	messages map[string]*outbox.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:   make(map[string]*order.Order),
		messages: make(map[string]*outbox.Message),
	}
}

type memoryUoW struct {
	store *memoryStore
}

func (u *memoryUoW) Begin(_ context.Context) error    { return nil }
func (u *memoryUoW) Commit(_ context.Context) error   { return nil }
func (u *memoryUoW) Rollback(_ context.Context) error { return nil }

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return &memoryOrderRepository{store: u.store}
}

func (u *memoryUoW) OutboxRepository() ports.OutboxRepository {
	return &memoryOutboxRepository{store: u.store}
}

type memoryOrderRepository struct {
	store *memoryStore
}

func (r *memoryOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memoryOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[aggregate.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memoryOrderRepository) Get(_ context.Context, orderID kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[orderID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", orderID)
	}
	return o, nil
}

func (r *memoryOrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*order.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		all = append(all, o)
	}
	return all, nil
}

type memoryOutboxRepository struct {
	store *memoryStore
}

func (r *memoryOutboxRepository) Add(_ context.Context, message *outbox.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages[message.ID().String()] = message
	return nil
}

func (r *memoryOutboxRepository) GetPending(_ context.Context, limit int) ([]*outbox.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pending := make([]*outbox.Message, 0)
	for _, m := range r.store.messages {
		if m.Status() == outbox.StatusPending && len(pending) < limit {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func (r *memoryOutboxRepository) MarkSent(_ context.Context, message *outbox.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.messages[message.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("messageId", message.ID())
	}
	r.store.messages[message.ID().String()] = message
	return nil
}

type memoryUoWFactory struct {
	store *memoryStore
}

func (f *memoryUoWFactory) Create() commands.UoW { return &memoryUoW{store: f.store} }

type memoryOrderUoWFactory struct {
	store *memoryStore
}

func (f *memoryOrderUoWFactory) Create() commands.OrderUoW { return &memoryUoW{store: f.store} }

// capturingPublisher records everything that would go on the wire.
type capturingPublisher struct {
	mu        sync.Mutex
	published []order.CreatedNotification
}

func (p *capturingPublisher) Publish(_ context.Context, n order.CreatedNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
	return nil
}

func TestOrderPipeline_CreateThenProcess_EndsProcessed(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	publisher := &capturingPublisher{}

	createHandler := commands.NewCreateOrderCommandHandler(&memoryUoWFactory{store: store}, publisher)
	processHandler := commands.NewProcessOrderCreatedCommandHandler(&memoryOrderUoWFactory{store: store})

	orderID := kernel.NewUUID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, "Alice Smith", "Mechanical Keyboard", 2, 159.90)
	require.NoError(t, err)

	created, err := createHandler.Handle(ctx, createCmd)
	require.NoError(t, err)
	require.Equal(t, order.Created, created.Status())

	// the publisher saw exactly the snapshot of the order just persisted
	require.Len(t, publisher.published, 1)
	notification := publisher.published[0]
	require.Equal(t, order.EventTypeOrderCreated, notification.EventType)
	require.Equal(t, orderID.String(), notification.ID)
	require.Equal(t, order.Created.String(), notification.Status)

	// the direct publish succeeded, so the outbox row is already settled
	pending, err := (&memoryOutboxRepository{store: store}).GetPending(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)

	// worker side: rebuild the command from the notification, as the consumer does
	consumedID, err := kernel.UUIDFromString(notification.ID)
	require.NoError(t, err)
	processCmd, err := commands.NewProcessOrderCreatedCommand(consumedID)
	require.NoError(t, err)

	require.NoError(t, processHandler.Handle(ctx, processCmd))

	stored, err := (&memoryOrderRepository{store: store}).Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Processed, stored.Status())

	// redelivery of the same notification is a no-op
	require.NoError(t, processHandler.Handle(ctx, processCmd))
	stored, err = (&memoryOrderRepository{store: store}).Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Processed, stored.Status())
}

func TestOrderPipeline_ValidationFailure_NothingPersistedOrPublished(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	publisher := &capturingPublisher{}

	createHandler := commands.NewCreateOrderCommandHandler(&memoryUoWFactory{store: store}, publisher)

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "Mechanical Keyboard", 2, 159.90)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateOrderCommand(kernel.NewUUID(), "Acme", "Widget", 0, 19.99)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	// an unconstructed command never reaches the store or the wire
	_, err = createHandler.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)

	all, err := (&memoryOrderRepository{store: store}).GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
	require.Empty(t, store.messages)
	require.Empty(t, publisher.published)
}
