package domain

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	Token string `json:"-"`
	Email string `json:"email"`
	// ExpiresAt is a unix timestamp.
	ExpiresAt int64 `json:"expires_at"`
}
