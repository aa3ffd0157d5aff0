package model

// 配送先住所
type Address struct {
	ID          string `json:"_id"`
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pin         int    `json:"pin"`
}

// ユーザーの住所帳（/user/address の address）
type AddressBook struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	AllAddress []Address `json:"allAddress"`
}
