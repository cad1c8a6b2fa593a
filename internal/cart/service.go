package cart

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"storefront/internal/models"
)

// Remote is the subset of the storefront API the cart needs.
type Remote interface {
	Cart(ctx context.Context) (models.CartSnapshot, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

// Service keeps the Store in sync with the server. Every successful
// mutation is followed by a full reload and exactly one Event.
type Service struct {
	remote Remote
	store  *Store
	logger log.FieldLogger
	loads  singleflight.Group
}

func NewService(remote Remote, store *Store, logger log.FieldLogger) *Service {
	if logger == nil {
		logger = log.WithField("component", "CART")
	}
	return &Service{remote: remote, store: store, logger: logger}
}

func (s *Service) Store() *Store {
	return s.store
}

// LoadCart replaces the mirror with the server's cart. Concurrent calls
// share one request. On failure the mirror is left as it was and an empty
// snapshot is returned.
func (s *Service) LoadCart(ctx context.Context) (models.CartSnapshot, error) {
	_, err, _ := s.loads.Do("load", func() (interface{}, error) {
		if err := s.reload(ctx); err != nil {
			return nil, err
		}
		s.store.publish(EventLoaded)
		return nil, nil
	})
	if err != nil {
		return models.CartSnapshot{Items: []models.CartItem{}}, newError("load", err)
	}
	return s.store.Snapshot(), nil
}

// AddItem adds quantity units of the product; a non-positive quantity adds
// one.
func (s *Service) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if err := s.remote.AddCartItem(ctx, productID, quantity); err != nil {
		s.logger.WithError(err).WithField("productId", productID).Warn("add item failed")
		return newError("add item", err)
	}
	return s.reloadAndPublish(ctx, "add item", EventItemAdded)
}

// SetQuantity sets the exact quantity of a product already in the cart.
// Zero or less removes it.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	item, err := s.resolve(ctx, productID)
	if err != nil {
		return newError("set quantity", err)
	}
	if err := s.remote.UpdateCartItem(ctx, item.ID, quantity); err != nil {
		s.logger.WithError(err).WithField("productId", productID).Warn("update quantity failed")
		return newError("set quantity", err)
	}
	return s.reloadAndPublish(ctx, "set quantity", EventQuantityChanged)
}

func (s *Service) RemoveItem(ctx context.Context, productID int64) error {
	item, err := s.resolve(ctx, productID)
	if err != nil {
		return newError("remove item", err)
	}
	if err := s.remote.DeleteCartItem(ctx, item.ID); err != nil {
		s.logger.WithError(err).WithField("productId", productID).Warn("remove item failed")
		return newError("remove item", err)
	}
	return s.reloadAndPublish(ctx, "remove item", EventItemRemoved)
}

// Clear empties the remote cart and resets the mirror.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.remote.ClearCart(ctx); err != nil {
		s.logger.WithError(err).Warn("clear cart failed")
		return newError("clear", err)
	}
	s.store.replace(models.CartSnapshot{Items: []models.CartItem{}})
	s.store.publish(EventCleared)
	return nil
}

func (s *Service) reload(ctx context.Context) error {
	seq := s.store.begin()
	snapshot, err := s.remote.Cart(ctx)
	if err != nil {
		return err
	}
	if snapshot.Items == nil {
		snapshot.Items = []models.CartItem{}
	}
	if !s.store.apply(seq, snapshot) {
		s.logger.WithField("seq", seq).Debug("discarding stale cart response")
	}
	return nil
}

func (s *Service) reloadAndPublish(ctx context.Context, op string, kind EventKind) error {
	if err := s.reload(ctx); err != nil {
		s.logger.WithError(err).WithField("op", op).Warn("cart reload after mutation failed")
		return newError(op, err)
	}
	s.store.publish(kind)
	return nil
}

// resolve finds the cart item holding productID, reloading once if the
// mirror does not know it yet.
func (s *Service) resolve(ctx context.Context, productID int64) (models.CartItem, error) {
	if item, ok := s.store.Snapshot().Find(productID); ok {
		return item, nil
	}
	if err := s.reload(ctx); err != nil {
		return models.CartItem{}, err
	}
	if item, ok := s.store.Snapshot().Find(productID); ok {
		return item, nil
	}
	return models.CartItem{}, ErrItemNotInCart
}
