package remote

import (
	"context"
	"net/http"

	"github.com/nikbrunner/studio/internal/model"
)

type googleAuthRequest struct {
	IDToken  string `json:"idToken"`
	Username string `json:"username"`
}

// SignIn exchanges an identity-provider credential for an access token.
func (c *Client) SignIn(ctx context.Context, idToken, username string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/google", nil, "", googleAuthRequest{IDToken: idToken, Username: username}, &resp)
	return resp, err
}

// Me returns the profile of the token's user.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, token, nil, &u)
	return u, err
}
