package models

type ShippingQuote struct {
	Fee           float64 `json:"fee"`
	FreeThreshold float64 `json:"free_threshold"`
	CartTotal     float64 `json:"cart_total"`
	IsFree        bool    `json:"is_free"`
}
