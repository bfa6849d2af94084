package entity

// UserProfile is the public view of a user, safe to return to clients.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Disabled bool   `json:"disabled"`
}

// UserCredential is a profile plus its password hash. It never leaves the
// credential store except for password verification.
type UserCredential struct {
	UserProfile
	HashedPassword string `json:"-"`
}

// Profile strips the password hash.
func (u *UserCredential) Profile() *UserProfile {
	p := u.UserProfile
	return &p
}

// Token is the response body of the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
