package dto

type CreateSessionRequest struct {
	Phone string `json:"phone" binding:"required,max=32"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	Phone     string `json:"phone"`
	ExpiresIn int64  `json:"expires_in"`
}
