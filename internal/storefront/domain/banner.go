package domain

// DefaultBanners 轮播横幅文案
var DefaultBanners = []string{
	"Festive Sale! 🎉 Buy 2 Get 1 Free!",
	"New Arrivals: Plushies & Stationery 🐰🖊️",
	"Free Shipping on Orders Over ₹499 🚚",
	"Limited Edition Pastel Gifts — Until Sunday!",
	"Kawaii Restocks: Cats, Bears, Bunnies! 🐱🐻🐰",
}

// Carousel 横幅轮播位置
type Carousel struct {
	slides []string
	idx    int
}

// NewCarousel 为空时使用 DefaultBanners
func NewCarousel(slides ...string) *Carousel {
	if len(slides) == 0 {
		slides = DefaultBanners
	}
	return &Carousel{slides: append([]string(nil), slides...)}
}

// Current 当前横幅
func (c *Carousel) Current() string {
	return c.slides[c.idx]
}

// Index 当前下标
func (c *Carousel) Index() int { return c.idx }

// Len 横幅数量
func (c *Carousel) Len() int { return len(c.slides) }

// Advance 前进一格并返回新横幅，末尾回绕到第一张
func (c *Carousel) Advance() string {
	c.idx = (c.idx + 1) % len(c.slides)
	return c.slides[c.idx]
}
