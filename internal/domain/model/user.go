package model

// ログインユーザー（/user/login の user）
type User struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email"`
	Role        string     `json:"role,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Phone       FlexString `json:"phone,omitempty"`
	DateOfBirth string     `json:"dateOfBirth,omitempty"`
}
