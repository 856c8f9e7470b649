package domain

const (
	// FreeDeliveryThreshold 小计达到该值免运费
	FreeDeliveryThreshold int64 = 499
	// DeliveryFee 未达门槛时的运费
	DeliveryFee int64 = 59
)

// Summary 结算汇总
type Summary struct {
	Subtotal int64
	Delivery int64
	Total    int64
}

// Summarize 由小计计算运费与总价
func Summarize(subtotal int64) Summary {
	delivery := DeliveryFee
	if subtotal >= FreeDeliveryThreshold {
		delivery = 0
	}
	return Summary{Subtotal: subtotal, Delivery: delivery, Total: subtotal + delivery}
}

// OrderConfirmation 下单结果
type OrderConfirmation struct {
	OrderID string
	Message string
	// Guest 访客模式下没有真实订单
	Guest bool
}
