package domain

// AuthSession is the token bundle returned by the identity provider after a
// successful signup, login or refresh.
type AuthSession struct {
	AccessToken  string       `json:"token"`
	IDToken      string       `json:"id_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int32        `json:"expires_in"`
	User         IdentityUser `json:"user"`
}

// IdentityUser is the provider-side view of an account.
type IdentityUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Username      string `json:"username,omitempty"`
	Phone         string `json:"phone,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}
