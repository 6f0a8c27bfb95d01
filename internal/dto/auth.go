package dto

// Identity is the caller identity the auth provider vouches for. A nil
// *Identity means an anonymous caller.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the provider-issued session after sign-in or code exchange.
type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// AuthUser is the provider's user record.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u AuthUser) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email}
}

type SignUpResponse struct {
	User AuthUser `json:"user"`
}
