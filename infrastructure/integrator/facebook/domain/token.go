package fbdomain

// TokenDebugData contém os dados relevantes da resposta de debug_token
type TokenDebugData struct {
	AppID     string `json:"app_id"`
	IsValid   bool   `json:"is_valid"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// TokenDebugResponse é o envelope retornado por /debug_token
type TokenDebugResponse struct {
	Data TokenDebugData `json:"data"`
}

// FacebookUser representa o usuário retornado por /me
type FacebookUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
