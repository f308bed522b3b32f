package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenAuthRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type VerifyRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
