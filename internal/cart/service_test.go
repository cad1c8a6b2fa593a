package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api"
	"storefront/internal/models"
)

// fakeRemote keeps a server-side cart in memory.
type fakeRemote struct {
	mu         sync.Mutex
	items      []models.CartItem
	nextItemID int64
	loggedOut  bool
	failNext   error
	calls      []string
	gate       chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextItemID: 100}
}

func product(id int64, price string) models.Product {
	return models.Product{ID: id, Name: "plant", Price: decimal.RequireFromString(price)}
}

func (f *fakeRemote) check(call string) error {
	f.calls = append(f.calls, call)
	if f.loggedOut {
		return api.ErrNotAuthenticated
	}
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeRemote) Cart(ctx context.Context) (models.CartSnapshot, error) {
	f.mu.Lock()
	if err := f.check("get"); err != nil {
		f.mu.Unlock()
		return models.CartSnapshot{}, err
	}
	items := make([]models.CartItem, len(f.items))
	copy(items, f.items)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return models.CartSnapshot{Items: items, Total: total}, nil
}

func (f *fakeRemote) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("add"); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].Product.ID == productID {
			f.items[i].Quantity += quantity
			return nil
		}
	}
	f.nextItemID++
	f.items = append(f.items, models.CartItem{ID: f.nextItemID, Product: product(productID, "100"), Quantity: quantity})
	return nil
}

func (f *fakeRemote) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("update"); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return &api.RequestError{Status: 404, Message: "Cart item not found"}
}

func (f *fakeRemote) DeleteCartItem(ctx context.Context, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("delete"); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &api.RequestError{Status: 404, Message: "Cart item not found"}
}

func (f *fakeRemote) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("clear"); err != nil {
		return err
	}
	f.items = nil
	return nil
}

func newTestService() (*Service, *fakeRemote) {
	remote := newFakeRemote()
	return NewService(remote, NewStore(), nil), remote
}

func TestAddItemReloadsAndNotifiesOnce(t *testing.T) {
	svc, remote := newTestService()
	events, unsubscribe := svc.Store().Subscribe(10)
	defer unsubscribe()

	require.NoError(t, svc.AddItem(context.Background(), 1, 2))

	snapshot := svc.Store().Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.Items[0].Quantity)
	assert.Equal(t, []string{"add", "get"}, remote.calls)

	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, EventItemAdded, event.Kind)
	assert.Equal(t, 2, event.Count)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.AddItem(context.Background(), 1, 0))
	assert.Equal(t, 1, svc.Store().Count())
}

func TestSetQuantityUsesCartItemID(t *testing.T) {
	svc, remote := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, 7, 1))

	require.NoError(t, svc.SetQuantity(ctx, 7, 5))

	assert.Equal(t, 5, svc.Store().Count())
	assert.Equal(t, int64(101), remote.items[0].ID)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	svc, remote := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, 7, 3))
	events, unsubscribe := svc.Store().Subscribe(10)
	defer unsubscribe()

	require.NoError(t, svc.SetQuantity(ctx, 7, 0))

	assert.True(t, svc.Store().Snapshot().IsEmpty())
	assert.Contains(t, remote.calls, "delete")
	assert.NotContains(t, remote.calls, "update")
	event := <-events
	assert.Equal(t, EventItemRemoved, event.Kind)
	assert.Len(t, events, 0)
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	err := svc.SetQuantity(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrItemNotInCart)
	assert.Equal(t, ReasonRequestFailed, ReasonOf(err))
}

func TestClearResetsMirror(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, 1, 1))
	require.NoError(t, svc.AddItem(ctx, 2, 4))
	assert.Equal(t, 5, svc.Store().Count())

	require.NoError(t, svc.Clear(ctx))

	assert.True(t, svc.Store().Snapshot().IsEmpty())
	assert.Zero(t, svc.Store().Count())
}

func TestFailedMutationLeavesMirrorAlone(t *testing.T) {
	svc, remote := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, 1, 2))
	before := svc.Store().Snapshot()
	events, unsubscribe := svc.Store().Subscribe(10)
	defer unsubscribe()

	remote.failNext = &api.RequestError{Status: 400, Message: "Not enough stock"}
	err := svc.AddItem(ctx, 1, 50)

	require.Error(t, err)
	assert.Equal(t, ReasonRequestFailed, ReasonOf(err))
	assert.Equal(t, "Not enough stock", api.Message(err))
	assert.Equal(t, before, svc.Store().Snapshot())
	assert.Len(t, events, 0)
}

func TestNotAuthenticatedReason(t *testing.T) {
	svc, remote := newTestService()
	remote.loggedOut = true

	err := svc.AddItem(context.Background(), 1, 1)
	assert.Equal(t, ReasonNotAuthenticated, ReasonOf(err))

	snapshot, err := svc.LoadCart(context.Background())
	assert.Equal(t, ReasonNotAuthenticated, ReasonOf(err))
	assert.True(t, snapshot.IsEmpty())

	err = svc.Clear(context.Background())
	assert.Equal(t, ReasonNotAuthenticated, ReasonOf(err))
	assert.True(t, errors.Is(err, api.ErrNotAuthenticated))
}

func TestLoadCartPublishesLoaded(t *testing.T) {
	svc, remote := newTestService()
	remote.items = []models.CartItem{{ID: 5, Product: product(1, "10"), Quantity: 3}}
	events, unsubscribe := svc.Store().Subscribe(1)
	defer unsubscribe()

	snapshot, err := svc.LoadCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.Count())
	assert.Equal(t, EventLoaded, (<-events).Kind)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	svc, remote := newTestService()
	ctx := context.Background()

	// An old load is held at the server while a mutation completes.
	gate := make(chan struct{})
	remote.gate = gate
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.LoadCart(ctx)
	}()
	require.Eventually(t, func() bool {
		remote.mu.Lock()
		defer remote.mu.Unlock()
		return len(remote.calls) == 1
	}, time.Second, time.Millisecond)

	remote.mu.Lock()
	remote.gate = nil
	remote.mu.Unlock()
	require.NoError(t, svc.AddItem(ctx, 9, 2))
	assert.Equal(t, 2, svc.Store().Count())

	close(gate)
	<-done

	assert.Equal(t, 2, svc.Store().Count())
}

func TestSlowSubscriberKeepsLatestEvent(t *testing.T) {
	store := NewStore()
	events, unsubscribe := store.Subscribe(1)
	defer unsubscribe()

	store.replace(models.CartSnapshot{Items: []models.CartItem{{ID: 1, Quantity: 1}}})
	store.publish(EventLoaded)
	store.replace(models.CartSnapshot{Items: []models.CartItem{{ID: 1, Quantity: 4}}})
	store.publish(EventQuantityChanged)

	event := <-events
	assert.Equal(t, EventQuantityChanged, event.Kind)
	assert.Equal(t, 4, event.Count)
}

func TestResetEmptiesMirror(t *testing.T) {
	store := NewStore()
	store.replace(models.CartSnapshot{Items: []models.CartItem{{ID: 1, Quantity: 2}}})
	events, unsubscribe := store.Subscribe(1)

	store.Reset()

	assert.Zero(t, store.Count())
	assert.Equal(t, EventReset, (<-events).Kind)
	unsubscribe()
	unsubscribe()
	_, open := <-events
	assert.False(t, open)
}
