package model

import (
	"encoding/json"
	"time"
)

// ウィッシュリスト（/user/wishlist の data[]）
type WishlistEntry struct {
	ID             string          `json:"_id"`
	UserDetails    json.RawMessage `json:"userDetails,omitempty"`
	ProductDetails []Product       `json:"productDetails"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
