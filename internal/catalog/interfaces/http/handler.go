package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 商品目录 HTTP 处理器，所有接口无需登录
type Handler struct {
	query *application.CatalogQueryService
}

// NewHandler 创建 HTTP 处理器实例
func NewHandler(query *application.CatalogQueryService) *Handler {
	return &Handler{query: query}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/categories", h.ListCategories)
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/reviews", h.ListReviews)
	}
}

type categoryResponse struct {
	CategoryID uint   `json:"CategoryID"`
	Name       string `json:"Name"`
}

type productResponse struct {
	ProductID    uint    `json:"ProductID"`
	Name         string  `json:"Name"`
	Description  string  `json:"Description"`
	Price        float64 `json:"Price"`
	Stock        int     `json:"Stock"`
	CategoryID   *uint   `json:"CategoryID"`
	ImageURL     string  `json:"img_url"`
	CategoryName *string `json:"CategoryName"`
}

type reviewResponse struct {
	ReviewID uint   `json:"ReviewID"`
	Rating   int    `json:"Rating"`
	Comment  string `json:"Comment"`
	Date     string `json:"Date"`
	UserName string `json:"UserName"`
}

func toProductResponse(p *domain.Product) productResponse {
	resp := productResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
	if p.CategoryName != "" {
		name := p.CategoryName
		resp.CategoryName = &name
	}
	return resp
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list categories", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	out := make([]categoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = categoryResponse{CategoryID: cat.ID, Name: cat.Name}
	}
	response.Success(c, http.StatusOK, out)
}

// ListProducts 商品列表，支持 ?category=<id>&search=<term>
func (h *Handler) ListProducts(c *gin.Context) {
	var filter domain.ProductFilter
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid category")
			return
		}
		filter.CategoryID = uint(id)
	}
	filter.Search = c.Query("search")

	products, err := h.query.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load products")
		return
	}
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	response.Success(c, http.StatusOK, out)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	product, err := h.query.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProductResponse(product))
}

// ListReviews 商品评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	reviews, err := h.query.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	out := make([]reviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = reviewResponse{
			ReviewID: r.ID,
			Rating:   r.Rating,
			Comment:  r.Comment,
			Date:     r.CreatedAt.UTC().Format(time.RFC3339),
			UserName: r.UserName,
		}
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeProductError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		response.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	logging.Error(c.Request.Context(), "Failed to load product", "error", err)
	response.Error(c, http.StatusInternalServerError, "Failed to load product")
}

func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusNotFound, "Product not found")
		return 0, false
	}
	return uint(id), true
}
