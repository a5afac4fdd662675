package models

type Wishlist struct {
	UserPhone string    `json:"user_phone"`
	Items     []Product `json:"items"`
}
