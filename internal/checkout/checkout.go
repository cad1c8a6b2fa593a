package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/internal/api"
	"storefront/internal/delivery"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/validation"
)

var (
	ErrNoAddress       = errors.New("no shipping address selected")
	ErrNoPaymentMethod = errors.New("no payment method selected")
	ErrUnknownAddress  = errors.New("address not found")
	ErrCartEmpty       = errors.New("cart is empty")
)

var userMessages = map[error]string{
	ErrNoAddress:       "Please select or add a shipping address.",
	ErrNoPaymentMethod: "Please select a payment method.",
	ErrUnknownAddress:  "Please select one of your saved addresses.",
	ErrCartEmpty:       "Your cart is empty. Please add some products before checkout.",
}

// Message returns the text to show for a checkout error.
func Message(err error) string {
	for sentinel, message := range userMessages {
		if errors.Is(err, sentinel) {
			return message
		}
	}
	if fields, ok := validation.AsFieldErrors(err); ok && len(fields) > 0 {
		return "Please check the highlighted fields."
	}
	return api.Message(err)
}

// Cart is the cart synchronization client used by checkout.
type Cart interface {
	LoadCart(ctx context.Context) (models.CartSnapshot, error)
	Clear(ctx context.Context) error
}

// Remote is the subset of the storefront API checkout calls directly.
type Remote interface {
	Addresses(ctx context.Context) ([]models.Address, error)
	CreateAddress(ctx context.Context, input models.AddressInput) (models.Address, error)
	CreateOrder(ctx context.Context, req models.OrderRequest, idempotencyKey string) (models.Order, error)
}

// Backup persists the signed-in user and the completed order.
type Backup interface {
	User(ctx context.Context) (*models.User, error)
	SaveLastOrder(ctx context.Context, order models.CompletedOrder) error
}

type Dependencies struct {
	Cart             Cart
	Remote           Remote
	Backup           Backup
	Policy           pricing.Policy
	Payments         *validation.PaymentValidator
	Addresses        *validation.AddressValidator
	Logger           log.FieldLogger
	NowFunc          func() time.Time
	NewIdempotentKey func() string
}

// Session drives one checkout from cart review to a placed order.
// Payment details live only inside the session.
type Session struct {
	deps Dependencies

	mu              sync.Mutex
	state           State
	cart            models.CartSnapshot
	totals          pricing.Totals
	addresses       []models.Address
	selectedAddress int64
	method          models.PaymentMethod
	details         models.PaymentDetails
	fieldErrors     validation.FieldErrors
	message         string
	estimate        time.Time
	order           *models.Order
	completed       *models.CompletedOrder
	idempotencyKey  string
}

func New(deps Dependencies) *Session {
	if deps.Logger == nil {
		deps.Logger = log.WithField("component", "CHECKOUT")
	}
	if deps.NowFunc == nil {
		deps.NowFunc = time.Now
	}
	if deps.NewIdempotentKey == nil {
		deps.NewIdempotentKey = uuid.NewString
	}
	if deps.Payments == nil {
		deps.Payments = validation.NewPaymentValidator()
	}
	if deps.Addresses == nil {
		deps.Addresses = validation.NewAddressValidator()
	}
	return &Session{deps: deps, state: StateNew}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// transition must be called with mu held.
func (s *Session) transition(next State) error {
	if !s.state.CanTransitionTo(next) {
		return &IllegalTransitionError{From: s.state, To: next}
	}
	s.deps.Logger.WithFields(log.Fields{"from": s.state, "to": next}).Debug("checkout transition")
	s.state = next
	return nil
}

// Start loads the cart and the saved addresses and picks the first step.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if err := s.transition(StateLoading); err != nil {
		s.mu.Unlock()
		return err
	}
	s.message = ""
	s.fieldErrors = nil
	s.mu.Unlock()

	snapshot, err := s.deps.Cart.LoadCart(ctx)
	if err != nil {
		s.mu.Lock()
		s.message = api.Message(err)
		s.mu.Unlock()
		return errors.Wrap(err, "load cart for checkout")
	}

	s.mu.Lock()
	s.setCart(snapshot)
	if snapshot.IsEmpty() {
		s.message = Message(ErrCartEmpty)
		err := s.transition(StateEmptyCart)
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	addresses, err := s.deps.Remote.Addresses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idempotencyKey == "" {
		s.idempotencyKey = s.deps.NewIdempotentKey()
	}
	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			s.message = api.Message(err)
			return err
		}
		s.deps.Logger.WithError(err).Warn("address fetch failed, asking for a new address")
	}
	s.addresses = addresses
	if len(addresses) == 0 {
		return s.transition(StateProfileSetup)
	}
	s.selectedAddress = preferredAddress(addresses).ID
	return s.transition(StateAddress)
}

// setCart must be called with mu held.
func (s *Session) setCart(snapshot models.CartSnapshot) {
	s.cart = snapshot
	s.totals = s.deps.Policy.Calculate(snapshot)
	s.estimate = delivery.FromNow(s.deps.NowFunc(), s.deps.Policy)
}

func preferredAddress(addresses []models.Address) models.Address {
	for _, address := range addresses {
		if address.IsDefault {
			return address
		}
	}
	return addresses[0]
}

// AddAddress validates and saves a new address, then selects it.
func (s *Session) AddAddress(ctx context.Context, input models.AddressInput) (models.Address, error) {
	s.mu.Lock()
	if s.state != StateProfileSetup && s.state != StateAddress {
		err := &IllegalTransitionError{From: s.state, To: StateAddress}
		s.mu.Unlock()
		return models.Address{}, err
	}
	if err := s.deps.Addresses.Validate(&input); err != nil {
		s.fieldErrors, _ = validation.AsFieldErrors(err)
		s.mu.Unlock()
		return models.Address{}, err
	}
	s.fieldErrors = nil
	s.mu.Unlock()

	address, err := s.deps.Remote.CreateAddress(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.message = api.Message(err)
		return models.Address{}, errors.Wrap(err, "create address")
	}
	if address.IsDefault {
		for i := range s.addresses {
			s.addresses[i].IsDefault = false
		}
	}
	s.addresses = append(s.addresses, address)
	s.selectedAddress = address.ID
	s.message = ""
	if s.state == StateProfileSetup {
		if err := s.transition(StateAddress); err != nil {
			return address, err
		}
	}
	return address, nil
}

func (s *Session) SelectAddress(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAddress && s.state != StatePaymentEntry {
		return &IllegalTransitionError{From: s.state, To: StateAddress}
	}
	for _, address := range s.addresses {
		if address.ID == id {
			s.selectedAddress = id
			return nil
		}
	}
	return ErrUnknownAddress
}

func (s *Session) ProceedToPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedAddress == 0 {
		return ErrNoAddress
	}
	return s.transition(StatePaymentEntry)
}

func (s *Session) BackToAddress() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition(StateAddress)
}

func (s *Session) SelectPaymentMethod(method models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaymentEntry {
		return &IllegalTransitionError{From: s.state, To: StatePaymentEntry}
	}
	if !method.Valid() {
		return ErrNoPaymentMethod
	}
	s.method = method
	s.fieldErrors = nil
	return nil
}

// SetPaymentDetails stores the form values and returns the current field
// errors for them, without blocking anything.
func (s *Session) SetPaymentDetails(details models.PaymentDetails) validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = details
	s.fieldErrors = nil
	if s.method.Valid() {
		if fields, ok := validation.AsFieldErrors(s.deps.Payments.Validate(s.method, details)); ok {
			s.fieldErrors = fields
		}
	}
	return s.fieldErrors
}

// Submit places the order. The cart is cleared only once the order exists.
// On failure the session returns to payment entry with everything intact.
func (s *Session) Submit(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()
	if s.state != StatePaymentEntry {
		err := &IllegalTransitionError{From: s.state, To: StateSubmitting}
		s.mu.Unlock()
		return nil, err
	}
	if s.cart.IsEmpty() {
		s.message = Message(ErrCartEmpty)
		_ = s.transition(StateEmptyCart)
		s.mu.Unlock()
		return nil, ErrCartEmpty
	}
	address, ok := s.selected()
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoAddress
	}
	if !s.method.Valid() {
		s.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}
	if err := s.deps.Payments.Validate(s.method, s.details); err != nil {
		s.fieldErrors, _ = validation.AsFieldErrors(err)
		s.mu.Unlock()
		return nil, err
	}

	req := models.OrderRequest{
		ShippingAddress: address.AddressLine1,
		ShippingCity:    address.City,
		ShippingState:   address.State,
		ShippingZip:     address.ZipCode,
		ShippingCountry: address.Country,
		ContactPhone:    address.Phone,
		PaymentMethod:   s.method,
		CustomerEmail:   s.details.Email,
		TotalAmount:     s.totals.Total.Round(2),
	}
	key := s.idempotencyKey
	cart := s.cart
	totals := s.totals
	method := s.method
	_ = s.transition(StateSubmitting)
	s.fieldErrors = nil
	s.message = ""
	s.mu.Unlock()

	if req.CustomerEmail == "" {
		if user, err := s.deps.Backup.User(ctx); err == nil && user != nil {
			req.CustomerEmail = user.Email
		}
	}

	order, err := s.deps.Remote.CreateOrder(ctx, req, key)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = s.transition(StateFailed)
		s.message = api.Message(err)
		_ = s.transition(StatePaymentEntry)
		s.deps.Logger.WithError(err).Warn("order creation failed")
		return nil, errors.Wrap(err, "create order")
	}

	logger := s.deps.Logger.WithField("orderNumber", order.OrderNumber)
	if err := s.deps.Cart.Clear(ctx); err != nil {
		logger.WithError(err).Warn("order placed but cart clear failed")
	}

	total := order.TotalAmount
	if total.IsZero() {
		total = totals.Total.Round(2)
	}
	completed := models.CompletedOrder{
		OrderNumber:     order.OrderNumber,
		TotalAmount:     total,
		PaymentMethod:   method.Label(),
		Items:           cart.Items,
		ShippingAddress: address,
		PlacedAt:        s.deps.NowFunc(),
	}
	if err := s.deps.Backup.SaveLastOrder(ctx, completed); err != nil {
		logger.WithError(err).Warn("saving last order failed")
	}
	logger.Info("order placed")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = &order
	s.completed = &completed
	s.details = models.PaymentDetails{}
	s.idempotencyKey = ""
	if !order.CreatedAt.IsZero() {
		s.estimate = delivery.ForOrder(order, s.deps.Policy)
	}
	_ = s.transition(StateSuccess)
	return &order, nil
}

// selected must be called with mu held.
func (s *Session) selected() (models.Address, bool) {
	for _, address := range s.addresses {
		if address.ID == s.selectedAddress {
			return address, true
		}
	}
	return models.Address{}, false
}
