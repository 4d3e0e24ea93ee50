package dto

// TokenRequest credenciales para POST /api/auth/token.
type TokenRequest struct {
	Username string `json:"username" example:"first.customer"`
	Password string `json:"password" example:"secret"`
}

// TokenResponse JWT firmado.
type TokenResponse struct {
	Token string `json:"token"`
}
