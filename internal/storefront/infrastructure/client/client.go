// Package client 店面后端 REST 接口的类型化客户端
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus 判断 err 是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client REST 客户端，不做自动重试
type Client struct {
	rc       *resty.Client
	validate *validator.Validate

	mu    sync.RWMutex
	token string
}

// New 创建客户端
func New(cfg config.APIConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		rc:       rc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SetToken 设置访问令牌，空串表示匿名
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token 当前访问令牌
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rc.R().SetContext(ctx).SetError(&errorResponse{})
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// do 执行请求并把非 2xx 响应转为 *APIError
func (c *Client) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := "API request failed"
		if body, ok := resp.Error().(*errorResponse); ok && body.Error != "" {
			msg = body.Error
		}
		logging.Debug(req.Context(), "api request rejected", "method", method, "path", path, "status", resp.StatusCode(), "error", msg)
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

// Categories 获取类目列表
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []categoryDTO
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/categories"); err != nil {
		return nil, err
	}
	cats := make([]domain.Category, 0, len(out))
	for _, dto := range out {
		cats = append(cats, dto.toDomain())
	}
	return cats, nil
}

// Products 获取商品列表；categoryID 为后端类目 ID，search 为名称子串，空串表示不过滤
func (c *Client) Products(ctx context.Context, categoryID, search string) ([]domain.Product, error) {
	req := c.request(ctx)
	if categoryID != "" {
		req.SetQueryParam("category", categoryID)
	}
	if term := strings.TrimSpace(search); term != "" {
		req.SetQueryParam("search", strings.ToLower(term))
	}

	var out []productDTO
	if err := c.do(req.SetResult(&out), http.MethodGet, "/products"); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(out))
	for _, dto := range out {
		p, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Product 获取商品详情
func (c *Client) Product(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	rid, err := RemoteID(id)
	if err != nil {
		return domain.Product{}, err
	}
	var out productDTO
	path := "/products/" + formatID(rid)
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, path); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		return domain.Product{}, err
	}
	return out.toDomain()
}

// Reviews 获取商品评价
func (c *Client) Reviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	rid, err := RemoteID(id)
	if err != nil {
		return nil, err
	}
	var out []reviewDTO
	path := "/products/" + formatID(rid) + "/reviews"
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, path); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(out))
	for _, dto := range out {
		reviews = append(reviews, dto.toDomain())
	}
	return reviews, nil
}

// Cart 获取当前用户购物车
func (c *Client) Cart(ctx context.Context) ([]domain.CartEntry, error) {
	var out []cartItemDTO
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/cart"); err != nil {
		return nil, err
	}
	entries := make([]domain.CartEntry, 0, len(out))
	for _, dto := range out {
		e, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AddToCart 加入购物车
func (c *Client) AddToCart(ctx context.Context, id domain.ProductID, quantity int) error {
	rid, err := RemoteID(id)
	if err != nil {
		return err
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	req := c.request(ctx).SetBody(addToCartRequest{ProductID: rid, Quantity: quantity}).SetResult(&messageResponse{})
	return c.do(req, http.MethodPost, "/cart")
}

// RemoveCartItem 按购物车行 ID 删除
func (c *Client) RemoveCartItem(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("%w: cart item id is required", domain.ErrValidation)
	}
	return c.do(c.request(ctx).SetResult(&messageResponse{}), http.MethodDelete, "/cart/item/"+entryID)
}

// Wishlist 获取当前用户心愿单
func (c *Client) Wishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	var out []wishlistItemDTO
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodGet, "/wishlist"); err != nil {
		return nil, err
	}
	entries := make([]domain.WishlistEntry, 0, len(out))
	for _, dto := range out {
		e, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AddToWishlist 加入心愿单
func (c *Client) AddToWishlist(ctx context.Context, id domain.ProductID) error {
	rid, err := RemoteID(id)
	if err != nil {
		return err
	}
	req := c.request(ctx).SetBody(addToWishlistRequest{ProductID: rid}).SetResult(&messageResponse{})
	return c.do(req, http.MethodPost, "/wishlist")
}

// RemoveFromWishlist 从心愿单移除
func (c *Client) RemoveFromWishlist(ctx context.Context, id domain.ProductID) error {
	rid, err := RemoteID(id)
	if err != nil {
		return err
	}
	return c.do(c.request(ctx).SetResult(&messageResponse{}), http.MethodDelete, "/wishlist/"+formatID(rid))
}

// Login 登录并返回访问令牌；不会自动保存令牌
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	in := LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrValidation, validationMessage(err))
	}
	var out loginResponse
	if err := c.do(c.request(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/auth/login"); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}
	return out.AccessToken, nil
}

// Register 注册新用户
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	in := RegisterRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, validationMessage(err))
	}
	return c.do(c.request(ctx).SetBody(in).SetResult(&messageResponse{}), http.MethodPost, "/auth/register")
}

// PlaceOrder 以当前购物车下单
func (c *Client) PlaceOrder(ctx context.Context) (*domain.OrderConfirmation, error) {
	var out orderResponse
	if err := c.do(c.request(ctx).SetResult(&out), http.MethodPost, "/orders"); err != nil {
		return nil, err
	}
	return &domain.OrderConfirmation{OrderID: formatID(out.OrderID), Message: out.Message}, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields = append(fields, strings.ToLower(fe.Field())+" is required")
		case "email":
			fields = append(fields, "email is invalid")
		default:
			fields = append(fields, strings.ToLower(fe.Field())+" is invalid")
		}
	}
	return strings.Join(fields, ", ")
}
