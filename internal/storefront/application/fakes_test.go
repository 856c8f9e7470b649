package application

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

var errBoom = errors.New("boom")

// fakeAPI 内存版后端
type fakeAPI struct {
	mu       sync.Mutex
	catalog  *domain.Catalog
	cart     []domain.CartEntry
	wishlist []domain.WishlistEntry
	nextRow  int
	token    string
	orders   int

	failMutations bool
	failReads     bool
	lastCategory  string
	lastSearch    string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{catalog: domain.SeedCatalog(), nextRow: 100}
}

func (f *fakeAPI) Categories(context.Context) ([]domain.Category, error) {
	return f.catalog.Categories(), nil
}

func (f *fakeAPI) Products(_ context.Context, categoryID, search string) ([]domain.Product, error) {
	f.mu.Lock()
	f.lastCategory, f.lastSearch = categoryID, search
	f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.catalog.Products() {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeAPI) Product(_ context.Context, id domain.ProductID) (domain.Product, error) {
	p, ok := f.catalog.Product(id)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeAPI) Reviews(context.Context, domain.ProductID) ([]domain.Review, error) {
	return []domain.Review{{ID: "1", Rating: 5, Comment: "cute", UserName: "mia"}}, nil
}

func (f *fakeAPI) Cart(context.Context) ([]domain.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBoom
	}
	return append([]domain.CartEntry(nil), f.cart...), nil
}

func (f *fakeAPI) AddToCart(_ context.Context, id domain.ProductID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMutations {
		return errBoom
	}
	for i := range f.cart {
		if f.cart[i].ProductID == id {
			f.cart[i].Quantity += quantity
			return nil
		}
	}
	p, _ := f.catalog.Product(id)
	f.nextRow++
	f.cart = append(f.cart, domain.CartEntry{
		ProductID: id, Quantity: quantity, EntryID: strconv.Itoa(f.nextRow), UnitPrice: p.Price, Title: p.Title,
	})
	return nil
}

func (f *fakeAPI) RemoveCartItem(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMutations {
		return errBoom
	}
	for i := range f.cart {
		if f.cart[i].EntryID == entryID {
			f.cart = append(f.cart[:i], f.cart[i+1:]...)
			return nil
		}
	}
	return errors.New("cart item not found")
}

func (f *fakeAPI) Wishlist(context.Context) ([]domain.WishlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBoom
	}
	return append([]domain.WishlistEntry(nil), f.wishlist...), nil
}

func (f *fakeAPI) AddToWishlist(_ context.Context, id domain.ProductID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMutations {
		return errBoom
	}
	for _, w := range f.wishlist {
		if w.ProductID == id {
			return nil
		}
	}
	f.wishlist = append(f.wishlist, domain.WishlistEntry{ProductID: id})
	return nil
}

func (f *fakeAPI) RemoveFromWishlist(_ context.Context, id domain.ProductID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMutations {
		return errBoom
	}
	for i, w := range f.wishlist {
		if w.ProductID == id {
			f.wishlist = append(f.wishlist[:i], f.wishlist[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) PlaceOrder(context.Context) (*domain.OrderConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMutations {
		return nil, errBoom
	}
	f.orders++
	f.cart = nil
	return &domain.OrderConfirmation{OrderID: strconv.Itoa(f.orders), Message: "Order placed successfully"}, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrValidation
	}
	if password != "secret" {
		return "", errors.New("invalid credentials")
	}
	return "token-" + email, nil
}

func (f *fakeAPI) Register(context.Context, string, string, string) error { return nil }

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// failingKV 所有写入都失败
type failingKV struct{ domain.KeyValueStore }

func (failingKV) Set(context.Context, string, []byte) error { return errBoom }
