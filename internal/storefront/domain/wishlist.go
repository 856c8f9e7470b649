package domain

// WishlistEntry 心愿单条目；Title/Price/ImageURL 仅在远端联表时填充
type WishlistEntry struct {
	ProductID ProductID
	Title     string
	Price     int64
	ImageURL  string
}

// Wishlist 心愿单集合，保持加入顺序
type Wishlist struct {
	entries []WishlistEntry
	index   map[ProductID]struct{}
}

// NewWishlist 构造心愿单，重复条目只保留一个，空 ID 被丢弃
func NewWishlist(entries ...WishlistEntry) *Wishlist {
	w := &Wishlist{index: make(map[ProductID]struct{}, len(entries))}
	for _, e := range entries {
		if e.ProductID == "" {
			continue
		}
		if _, ok := w.index[e.ProductID]; ok {
			continue
		}
		w.index[e.ProductID] = struct{}{}
		w.entries = append(w.entries, e)
	}
	return w
}

// NewWishlistFromIDs 由商品 ID 列表构造
func NewWishlistFromIDs(ids ...ProductID) *Wishlist {
	entries := make([]WishlistEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, WishlistEntry{ProductID: id})
	}
	return NewWishlist(entries...)
}

// Toggle 存在则移除，否则加入；返回切换后是否在心愿单中
func (w *Wishlist) Toggle(id ProductID) bool {
	if _, ok := w.index[id]; ok {
		delete(w.index, id)
		for i, e := range w.entries {
			if e.ProductID == id {
				w.entries = append(w.entries[:i], w.entries[i+1:]...)
				break
			}
		}
		return false
	}
	w.index[id] = struct{}{}
	w.entries = append(w.entries, WishlistEntry{ProductID: id})
	return true
}

// Contains 成员判断
func (w *Wishlist) Contains(id ProductID) bool {
	_, ok := w.index[id]
	return ok
}

// Len 条目数
func (w *Wishlist) Len() int { return len(w.entries) }

// IDs 按加入顺序返回商品 ID
func (w *Wishlist) IDs() []ProductID {
	ids := make([]ProductID, 0, len(w.entries))
	for _, e := range w.entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}

// Entries 返回条目副本
func (w *Wishlist) Entries() []WishlistEntry {
	return append([]WishlistEntry(nil), w.entries...)
}

// Clone 深拷贝
func (w *Wishlist) Clone() *Wishlist {
	return NewWishlist(w.entries...)
}
