package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wyfcoding/storefront/internal/storefront/application"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

func money(v int64) string {
	return fmt.Sprintf("₹%d", v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderCategories 类目列表，当前类目前加 *
func RenderCategories(w io.Writer, snap application.Snapshot) {
	names := []string{domain.AllCategories}
	for _, c := range snap.Categories {
		names = append(names, c.Name)
	}
	for _, name := range names {
		marker := " "
		if name == snap.Category {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, name)
	}
}

// RenderProducts 商品卡片列表
func RenderProducts(w io.Writer, snap application.Snapshot) {
	if len(snap.Products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCT\tCATEGORY\tPRICE\tWISHLIST\tCART")
	for _, p := range snap.Products {
		heart := "♡"
		if p.InWishlist {
			heart = "♥"
		}
		inCart := "Add to Cart"
		if p.InCart > 0 {
			inCart = fmt.Sprintf("In Cart: %d", p.InCart)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, orDefault(p.CategoryName, "Uncategorized"), money(p.Price), heart, inCart)
	}
	tw.Flush()
}

// RenderProductDetail 商品详情与评价
func RenderProductDetail(w io.Writer, p domain.Product, reviews []domain.Review) {
	fmt.Fprintln(w, p.Title)
	fmt.Fprintln(w, orDefault(p.CategoryName, "Uncategorized"))
	fmt.Fprintln(w, money(p.Price))
	fmt.Fprintln(w)
	fmt.Fprintln(w, orDefault(p.Description, "No description available."))
	if len(reviews) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reviews:")
	for _, r := range reviews {
		fmt.Fprintf(w, "  %d/5 %s: %s\n", r.Rating, orDefault(r.UserName, "anonymous"), r.Comment)
	}
}

// RenderCart 购物车
func RenderCart(w io.Writer, snap application.Snapshot) {
	if snap.CartEmpty() {
		fmt.Fprintln(w, "Your cart is empty!")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tPRICE")
	for _, l := range snap.Cart {
		fmt.Fprintf(tw, "%s\t%s\t%d\tx %s\n", l.ProductID, orDefault(l.Title, string(l.ProductID)), l.Quantity, money(l.UnitPrice))
	}
	tw.Flush()
	fmt.Fprintf(w, "Subtotal: %s\n", money(snap.Summary.Subtotal))
}

// RenderWishlist 心愿单
func RenderWishlist(w io.Writer, snap application.Snapshot) {
	if len(snap.Wishlist) == 0 {
		fmt.Fprintln(w, "Your wishlist is empty!")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE")
	for _, l := range snap.Wishlist {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ProductID, orDefault(l.Title, string(l.ProductID)), money(l.Price))
	}
	tw.Flush()
}

// RenderCheckout 订单汇总
func RenderCheckout(w io.Writer, snap application.Snapshot) {
	if snap.CartEmpty() {
		fmt.Fprintln(w, "Your cart is empty!")
		return
	}
	for _, l := range snap.Cart {
		fmt.Fprintf(w, "%s × %d = %s\n", orDefault(l.Title, string(l.ProductID)), l.Quantity, money(l.LineTotal))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal: %s\n", money(snap.Summary.Subtotal))
	fmt.Fprintf(w, "Delivery: %s\n", money(snap.Summary.Delivery))
	fmt.Fprintf(w, "Total: %s\n", money(snap.Summary.Total))
}

// RenderBadges 购物车与心愿单角标
func RenderBadges(w io.Writer, snap application.Snapshot) {
	fmt.Fprintf(w, "[%s] cart: %d  wishlist: %d\n", snap.Mode, snap.CartCount, snap.WishlistCount)
}

// RenderOrder 下单结果
func RenderOrder(w io.Writer, conf *domain.OrderConfirmation) {
	fmt.Fprintln(w, orDefault(conf.Message, "Order placed successfully! Thank you 💜"))
	if conf.Guest {
		fmt.Fprintf(w, "Reference: %s (guest checkout, no order was sent)\n", conf.OrderID)
		return
	}
	fmt.Fprintf(w, "Order ID: %s\n", conf.OrderID)
}
