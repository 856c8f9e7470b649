package client

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

// 以下为后端接口的线上结构，字段名与后端 JSON 保持一致

type categoryDTO struct {
	CategoryID int64  `json:"CategoryID"`
	Name       string `json:"Name"`
}

type productDTO struct {
	ProductID    int64           `json:"ProductID"`
	Name         string          `json:"Name"`
	Description  string          `json:"Description"`
	Price        decimal.Decimal `json:"Price"`
	Stock        int             `json:"Stock"`
	CategoryID   *int64          `json:"CategoryID"`
	ImgURL       string          `json:"img_url"`
	CategoryName string          `json:"CategoryName"`
}

type cartItemDTO struct {
	CartItemID int64           `json:"CartItemID"`
	ProductID  int64           `json:"ProductID"`
	Quantity   int             `json:"Quantity"`
	Name       string          `json:"Name"`
	Price      decimal.Decimal `json:"Price"`
	ImgURL     string          `json:"img_url"`
}

type wishlistItemDTO struct {
	ProductID int64           `json:"ProductID"`
	Name      string          `json:"Name"`
	Price     decimal.Decimal `json:"Price"`
	ImgURL    string          `json:"img_url"`
}

type reviewDTO struct {
	ReviewID int64  `json:"ReviewID"`
	Rating   int    `json:"Rating"`
	Comment  string `json:"Comment"`
	Date     string `json:"Date"`
	UserName string `json:"UserName"`
}

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type addToWishlistRequest struct {
	ProductID int64 `json:"productId"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type orderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"OrderID"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ErrInvalidResponse 后端返回的数据不满足约束
var ErrInvalidResponse = errors.New("invalid response")

// price 价格必须为非负整数
func price(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative price %s", ErrInvalidResponse, d)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: non-integral price %s", ErrInvalidResponse, d)
	}
	return d.IntPart(), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// RemoteID 把商品 ID 转为后端使用的数字 ID
func RemoteID(id domain.ProductID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: product id %q is not a positive integer", domain.ErrValidation, id)
	}
	return n, nil
}

func (c categoryDTO) toDomain() domain.Category {
	return domain.Category{ID: formatID(c.CategoryID), Name: c.Name}
}

func (p productDTO) toDomain() (domain.Product, error) {
	amount, err := price(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", p.ProductID, err)
	}
	out := domain.Product{
		ID:           domain.ProductID(formatID(p.ProductID)),
		Title:        p.Name,
		CategoryName: p.CategoryName,
		Price:        amount,
		ImageURL:     p.ImgURL,
		Description:  p.Description,
		Stock:        p.Stock,
	}
	if p.CategoryID != nil {
		out.CategoryID = formatID(*p.CategoryID)
	}
	return out, nil
}

func (ci cartItemDTO) toDomain() (domain.CartEntry, error) {
	amount, err := price(ci.Price)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("cart item %d: %w", ci.CartItemID, err)
	}
	if ci.Quantity < 1 {
		return domain.CartEntry{}, fmt.Errorf("%w: cart item %d has quantity %d", ErrInvalidResponse, ci.CartItemID, ci.Quantity)
	}
	return domain.CartEntry{
		ProductID: domain.ProductID(formatID(ci.ProductID)),
		Quantity:  ci.Quantity,
		EntryID:   formatID(ci.CartItemID),
		UnitPrice: amount,
		Title:     ci.Name,
		ImageURL:  ci.ImgURL,
	}, nil
}

func (w wishlistItemDTO) toDomain() (domain.WishlistEntry, error) {
	amount, err := price(w.Price)
	if err != nil {
		return domain.WishlistEntry{}, fmt.Errorf("wishlist item %d: %w", w.ProductID, err)
	}
	return domain.WishlistEntry{
		ProductID: domain.ProductID(formatID(w.ProductID)),
		Title:     w.Name,
		Price:     amount,
		ImageURL:  w.ImgURL,
	}, nil
}

func (r reviewDTO) toDomain() domain.Review {
	return domain.Review{
		ID:       formatID(r.ReviewID),
		Rating:   r.Rating,
		Comment:  r.Comment,
		Date:     r.Date,
		UserName: r.UserName,
	}
}
