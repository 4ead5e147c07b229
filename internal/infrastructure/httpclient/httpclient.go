// Package httpclient builds the HTTP clients used against the backend
// services.
package httpclient

import (
	"context"
	"net/http"

	"github.com/kamande/caredesk-api/internal/config"
	"golang.org/x/oauth2/clientcredentials"
)

// NewServiceClient returns the client used for machine-to-machine calls to
// the rendering and relay backends. When OAuth2 client credentials are
// configured the client transparently fetches and refreshes a token;
// otherwise a plain client with the configured timeout is returned.
func NewServiceClient(cfg *config.ServicesConfig) *http.Client {
	if cfg.OAuthTokenURL == "" {
		return &http.Client{Timeout: cfg.Timeout}
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthSecret,
		TokenURL:     cfg.OAuthTokenURL,
	}
	client := cc.Client(context.Background())
	client.Timeout = cfg.Timeout
	return client
}
