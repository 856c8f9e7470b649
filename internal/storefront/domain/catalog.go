// Package domain 店面客户端的纯状态层：目录、筛选、购物车账本、心愿单与结算汇总。
package domain

// AllCategories 类目选择器的哨兵值，表示不按类目过滤
const AllCategories = "All"

// ProductID 商品标识
type ProductID string

// Category 商品类目
type Category struct {
	ID   string
	Name string
}

// Product 商品
type Product struct {
	ID           ProductID
	Title        string
	CategoryID   string
	CategoryName string
	Price        int64
	ImageURL     string
	Description  string
	Stock        int
}

// PriceLookup 按商品 ID 查询单价
type PriceLookup func(id ProductID) (int64, bool)

// Catalog 类目与商品的只读快照，构造后不再修改
type Catalog struct {
	categories []Category
	products   []Product
	byID       map[ProductID]int
}

// NewCatalog 构造目录。重复的商品 ID 保留第一次出现的条目，重复的类目名同理。
func NewCatalog(categories []Category, products []Product) *Catalog {
	c := &Catalog{byID: make(map[ProductID]int, len(products))}

	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if _, ok := seen[cat.Name]; ok {
			continue
		}
		seen[cat.Name] = struct{}{}
		c.categories = append(c.categories, cat)
	}

	for _, p := range products {
		if _, ok := c.byID[p.ID]; ok {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Categories 返回类目列表副本
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Products 返回商品列表副本，保持目录顺序
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Product 按 ID 查找商品
func (c *Catalog) Product(id ProductID) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// CategoryByName 按名称查找类目
func (c *Catalog) CategoryByName(name string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// PriceOf 实现 PriceLookup
func (c *Catalog) PriceOf(id ProductID) (int64, bool) {
	p, ok := c.Product(id)
	if !ok {
		return 0, false
	}
	return p.Price, true
}

// WithProducts 保留类目，替换商品列表
func (c *Catalog) WithProducts(products []Product) *Catalog {
	return NewCatalog(c.categories, products)
}

// SeedCatalog 离线模式下使用的静态目录
func SeedCatalog() *Catalog {
	categories := []Category{
		{ID: "1", Name: "Stationery"},
		{ID: "2", Name: "Plush Toys"},
		{ID: "3", Name: "Beauty"},
		{ID: "4", Name: "Home Decor"},
	}
	products := []Product{
		{
			ID: "1", Title: "Kawaii Cat Pen", CategoryID: "1", CategoryName: "Stationery", Price: 79, Stock: 100,
			ImageURL:    "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&w=400&q=80",
			Description: "Cute and comfy cat-shaped pen for your class notes or journal. Writes smoothly in blue ink.",
		},
		{
			ID: "2", Title: "Pastel Bunny Plush", CategoryID: "2", CategoryName: "Plush Toys", Price: 349, Stock: 100,
			ImageURL:    "https://images.pexels.com/photos/1462636/pexels-photo-1462636.jpeg?auto=compress&w=400",
			Description: "Soft, huggable bunny plush with pastel colors. Perfect for gifts and cozy naps.",
		},
		{
			ID: "3", Title: "Lavender Hand Cream", CategoryID: "3", CategoryName: "Beauty", Price: 139, Stock: 100,
			ImageURL:    "https://images.pexels.com/photos/2270834/pexels-photo-2270834.jpeg?auto=compress&w=400",
			Description: "Light lavender-scented hand cream. Moisturizes and softens for silky smooth hands.",
		},
		{
			ID: "4", Title: "Cloud Pillow", CategoryID: "4", CategoryName: "Home Decor", Price: 260, Stock: 100,
			ImageURL:    "https://images.unsplash.com/photo-1526178613658-3e1f28221885?auto=format&fit=crop&w=400&q=80",
			Description: "Dreamy pillow in cloud shape with smiley face. Ultra-soft for beds and sofas.",
		},
	}
	return NewCatalog(categories, products)
}

// Review 商品评价
type Review struct {
	ID       string
	Rating   int
	Comment  string
	Date     string
	UserName string
}
