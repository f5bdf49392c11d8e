package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCartGateway keeps one cart per identity key in memory.
type fakeCartGateway struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart

	findCalls   int
	addCalls    int
	updateCalls int
	removeCalls int
	clearCalls  int

	failNext error
	clearErr error
}

func newFakeCartGateway() *fakeCartGateway {
	return &fakeCartGateway{carts: make(map[string]*entity.Cart)}
}

func (f *fakeCartGateway) seed(identity entity.Identity, items ...entity.CartItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[identity.Key()] = &entity.Cart{
		ID:        "cart-" + identity.Key(),
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
		Items:     items,
	}
}

func (f *fakeCartGateway) takeFailure() error {
	err := f.failNext
	f.failNext = nil

	return err
}

func (f *fakeCartGateway) Find(_ context.Context, identity entity.Identity) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	cart, ok := f.carts[identity.Key()]
	if !ok {
		return nil, errors.WithStack(gateway.ErrCartNotFound)
	}

	copied := *cart
	copied.Items = append([]entity.CartItem(nil), cart.Items...)

	return &copied, nil
}

func (f *fakeCartGateway) Add(_ context.Context, identity entity.Identity, item gateway.CartItemInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if err := f.takeFailure(); err != nil {
		return err
	}

	cart, ok := f.carts[identity.Key()]
	if !ok {
		cart = &entity.Cart{ID: "cart-" + identity.Key(), UserID: identity.UserID, SessionID: identity.SessionID}
		f.carts[identity.Key()] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity

			return nil
		}
	}
	cart.Items = append(cart.Items, entity.CartItem{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
		Price:     10,
		Name:      item.ProductID,
	})

	return nil
}

func (f *fakeCartGateway) Update(_ context.Context, identity entity.Identity, item gateway.CartItemInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if err := f.takeFailure(); err != nil {
		return err
	}

	cart, ok := f.carts[identity.Key()]
	if !ok {
		return errors.WithStack(gateway.ErrCartNotFound)
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity = item.Quantity
		}
	}

	return nil
}

func (f *fakeCartGateway) Remove(_ context.Context, identity entity.Identity, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if err := f.takeFailure(); err != nil {
		return err
	}

	cart, ok := f.carts[identity.Key()]
	if !ok {
		return errors.WithStack(gateway.ErrCartNotFound)
	}
	kept := cart.Items[:0]
	for _, line := range cart.Items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	cart.Items = kept

	return nil
}

func (f *fakeCartGateway) Clear(_ context.Context, identity entity.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.carts, identity.Key())

	return nil
}

// fakeShippingGateway returns sequential record ids.
type fakeShippingGateway struct {
	mu      sync.Mutex
	created []gateway.ShippingInput
	err     error
}

func (f *fakeShippingGateway) Create(_ context.Context, input gateway.ShippingInput) (*entity.ShippingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)

	return &entity.ShippingRecord{ID: "ship-1", FullName: input.FullName}, nil
}

// fakePaymentGateway returns a fixed masked record.
type fakePaymentGateway struct {
	mu      sync.Mutex
	created []gateway.PaymentInput
	err     error
}

func (f *fakePaymentGateway) Create(_ context.Context, input gateway.PaymentInput) (*entity.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)

	return &entity.PaymentRecord{ID: "pay-1", CardName: input.CardName, CardLast4: "4242"}, nil
}

// fakeOrderGateway records created orders and cancellations.
type fakeOrderGateway struct {
	mu        sync.Mutex
	created   []gateway.CreateOrderInput
	cancelled map[string]string
	orders    map[string]*entity.Order
	createErr error
	cancelErr error
}

func newFakeOrderGateway() *fakeOrderGateway {
	return &fakeOrderGateway{
		cancelled: make(map[string]string),
		orders:    make(map[string]*entity.Order),
	}
}

func (f *fakeOrderGateway) Create(_ context.Context, input gateway.CreateOrderInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, input)

	return "order-1", nil
}

func (f *fakeOrderGateway) Find(_ context.Context, orderID string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errors.WithStack(gateway.ErrOrderNotFound)
	}

	return order, nil
}

func (f *fakeOrderGateway) FindAll(context.Context) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]entity.Order, 0, len(f.orders))
	for _, order := range f.orders {
		all = append(all, *order)
	}

	return all, nil
}

func (f *fakeOrderGateway) Cancel(_ context.Context, orderID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled[orderID] = reason

	return nil
}

// fakeAuthGateway answers from fixed credential and token tables.
type fakeAuthGateway struct {
	mu          sync.Mutex
	loginErr    error
	registerErr error
	logoutErr   error
	logoutCalls int
	verifyCalls int
	result      *gateway.AuthResult
	tokens      map[string]*entity.User
}

func (f *fakeAuthGateway) Login(context.Context, gateway.Credentials) (*gateway.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}

	return f.result, nil
}

func (f *fakeAuthGateway) Register(context.Context, gateway.Registration) (*gateway.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}

	return f.result, nil
}

func (f *fakeAuthGateway) Logout(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++

	return f.logoutErr
}

func (f *fakeAuthGateway) Verify(_ context.Context, token string) (*entity.User, error) {
	f.mu.Lock()
	f.verifyCalls++
	f.mu.Unlock()
	user, ok := f.tokens[token]
	if !ok {
		return nil, errors.WithStack(gateway.ErrTokenInvalid)
	}

	return user, nil
}

func (f *fakeAuthGateway) Profile(ctx context.Context, token string) (*entity.User, error) {
	return f.Verify(ctx, token)
}

// fakeCatalogGateway serves a fixed product/category set.
type fakeCatalogGateway struct {
	products   map[string]entity.Product
	categories map[string]entity.Category
	listErr    error
}

func (f *fakeCatalogGateway) ListProducts(_ context.Context, query gateway.ProductQuery) ([]entity.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Product
	for _, p := range f.products {
		if query.CategorySlug == "" || p.CategorySlug == query.CategorySlug {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f *fakeCatalogGateway) FindProduct(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			found := p

			return &found, nil
		}
	}

	return nil, errors.WithStack(gateway.ErrProductNotFound)
}

func (f *fakeCatalogGateway) FindProducts(_ context.Context, ids []string) (map[string]entity.Product, error) {
	out := make(map[string]entity.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}

	return out, nil
}

func (f *fakeCatalogGateway) ListCategories(context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.categories {
		out = append(out, c)
	}

	return out, nil
}

func (f *fakeCatalogGateway) FindCategory(_ context.Context, slug string) (*entity.Category, error) {
	c, ok := f.categories[slug]
	if !ok {
		return nil, errors.WithStack(gateway.ErrCategoryNotFound)
	}

	return &c, nil
}
