package domain

// CartEntry 购物车条目
type CartEntry struct {
	ProductID ProductID
	Quantity  int
	// EntryID 远端购物车行 ID，访客模式下为空
	EntryID string
	// UnitPrice 远端联表返回的单价，目录中找不到商品时用作兜底
	UnitPrice int64
	// Title / ImageURL 远端联表返回的展示字段
	Title    string
	ImageURL string
}

// Ledger 购物车账本：每个商品至多一条，数量 >= 1，按加入顺序排列
type Ledger struct {
	entries []CartEntry
	index   map[ProductID]int
}

// NewLedger 由已有条目构造账本。缺少商品 ID 或数量小于 1 的条目被丢弃，重复商品合并数量。
func NewLedger(entries ...CartEntry) *Ledger {
	l := &Ledger{index: make(map[ProductID]int, len(entries))}
	for _, e := range entries {
		if e.ProductID == "" || e.Quantity < 1 {
			continue
		}
		if i, ok := l.index[e.ProductID]; ok {
			l.entries[i].Quantity += e.Quantity
			continue
		}
		l.index[e.ProductID] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l
}

// Add 已有条目数量加 1，否则插入数量为 1 的新条目；返回新数量
func (l *Ledger) Add(id ProductID) int {
	if i, ok := l.index[id]; ok {
		l.entries[i].Quantity++
		return l.entries[i].Quantity
	}
	l.index[id] = len(l.entries)
	l.entries = append(l.entries, CartEntry{ProductID: id, Quantity: 1})
	return 1
}

// Remove 删除商品条目，不存在时为空操作
func (l *Ledger) Remove(id ProductID) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.entries); j++ {
		l.index[l.entries[j].ProductID] = j
	}
	return true
}

// Entry 查找条目
func (l *Ledger) Entry(id ProductID) (CartEntry, bool) {
	i, ok := l.index[id]
	if !ok {
		return CartEntry{}, false
	}
	return l.entries[i], true
}

// Quantity 返回商品数量，不存在时为 0
func (l *Ledger) Quantity(id ProductID) int {
	e, _ := l.Entry(id)
	return e.Quantity
}

// Entries 返回条目副本
func (l *Ledger) Entries() []CartEntry {
	return append([]CartEntry(nil), l.entries...)
}

// Len 条目数
func (l *Ledger) Len() int { return len(l.entries) }

// IsEmpty 是否为空
func (l *Ledger) IsEmpty() bool { return len(l.entries) == 0 }

// ItemCount 数量之和，用于购物车图标角标
func (l *Ledger) ItemCount() int {
	n := 0
	for _, e := range l.entries {
		n += e.Quantity
	}
	return n
}

// Subtotal 计算 Σ 单价 × 数量。单价优先取 lookup，查不到时使用条目自带的 UnitPrice。
func (l *Ledger) Subtotal(lookup PriceLookup) int64 {
	var sum int64
	for _, e := range l.entries {
		sum += l.unitPrice(e, lookup) * int64(e.Quantity)
	}
	return sum
}

// LineTotal 单个条目的小计
func (l *Ledger) LineTotal(e CartEntry, lookup PriceLookup) int64 {
	return l.unitPrice(e, lookup) * int64(e.Quantity)
}

func (l *Ledger) unitPrice(e CartEntry, lookup PriceLookup) int64 {
	if lookup != nil {
		if p, ok := lookup(e.ProductID); ok {
			return p
		}
	}
	return e.UnitPrice
}

// Clone 深拷贝
func (l *Ledger) Clone() *Ledger {
	return NewLedger(l.entries...)
}
