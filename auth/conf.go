package auth

import "golang.org/x/oauth2"

// Conf represents the configuration needed for provider authentication.
// Code is the one-time authorization code obtained through the provider's
// consent flow; RefreshToken seeds the refresh flow when no code is available.
type Conf struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURL     string `json:"token_url"`
	RedirectURL  string `json:"redirect_url"`
	Code         string `json:"code"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Conf) toOauth2Config() oauth2.Config {
	return oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     oauth2.Endpoint{TokenURL: c.TokenURL},
	}
}
