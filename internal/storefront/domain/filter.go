package domain

import "strings"

// Filter 按类目与搜索词筛选商品，结果保持目录顺序。
// category 为 AllCategories 时不限类目；term 去除首尾空白后不区分大小写，
// 作为子串匹配商品标题或类目名，空串匹配全部。
func Filter(products []Product, category, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != AllCategories && p.CategoryName != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.CategoryName), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}
