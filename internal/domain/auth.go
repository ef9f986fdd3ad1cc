package domain

// TokenPair is what a successful login hands back to the client as cookies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
