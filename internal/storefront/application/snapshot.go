package application

import "github.com/wyfcoding/storefront/internal/storefront/domain"

// ProductView 商品卡片：商品本身加上购物车数量与心愿单状态
type ProductView struct {
	domain.Product
	InCart     int
	InWishlist bool
}

// CartLine 购物车行
type CartLine struct {
	ProductID domain.ProductID
	Title     string
	ImageURL  string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// WishlistLine 心愿单行
type WishlistLine struct {
	ProductID domain.ProductID
	Title     string
	ImageURL  string
	Price     int64
}

// Snapshot 渲染层使用的只读视图
type Snapshot struct {
	Mode       domain.SessionMode
	Categories []domain.Category
	Category   string
	Search     string
	Products   []ProductView

	Cart          []CartLine
	CartCount     int
	Wishlist      []WishlistLine
	WishlistCount int
	Summary       domain.Summary
}

// CartEmpty 购物车是否为空
func (s Snapshot) CartEmpty() bool { return len(s.Cart) == 0 }

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Mode:          s.store.Mode(),
		Categories:    s.catalog.Categories(),
		Category:      s.category,
		Search:        s.search,
		CartCount:     s.cart.ItemCount(),
		WishlistCount: s.wishlist.Len(),
		Summary:       domain.Summarize(s.cart.Subtotal(s.priceOf)),
	}

	for _, p := range domain.Filter(s.catalog.Products(), s.category, s.search) {
		snap.Products = append(snap.Products, ProductView{
			Product:    p,
			InCart:     s.cart.Quantity(p.ID),
			InWishlist: s.wishlist.Contains(p.ID),
		})
	}

	for _, e := range s.cart.Entries() {
		line := CartLine{
			ProductID: e.ProductID,
			Title:     e.Title,
			ImageURL:  e.ImageURL,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
		}
		if p, ok := s.known[e.ProductID]; ok {
			line.Title, line.ImageURL, line.UnitPrice = p.Title, p.ImageURL, p.Price
		}
		line.LineTotal = s.cart.LineTotal(e, s.priceOf)
		snap.Cart = append(snap.Cart, line)
	}

	for _, e := range s.wishlist.Entries() {
		line := WishlistLine{ProductID: e.ProductID, Title: e.Title, ImageURL: e.ImageURL, Price: e.Price}
		if p, ok := s.known[e.ProductID]; ok {
			line.Title, line.ImageURL, line.Price = p.Title, p.ImageURL, p.Price
		}
		snap.Wishlist = append(snap.Wishlist, line)
	}
	return snap
}
