package domain

import "errors"

var (
	// ErrValidation 调用前的参数校验失败
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCart 空购物车不能下单
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrKeyNotFound 键值存储中没有该键
	ErrKeyNotFound = errors.New("key not found")
	// ErrStaleState 远端变更已生效，但重新拉取失败
	ErrStaleState = errors.New("local state is stale")
)
