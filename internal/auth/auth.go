// Package auth manages Google OAuth credentials for remote sync.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"todo/internal/config"
)

const (
	// TasksScope grants read/write access to Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks"

	// CallbackStartPort is the first local port tried for the OAuth redirect.
	CallbackStartPort = 8085

	// CallbackMaxPortAttempts bounds the port search.
	CallbackMaxPortAttempts = 5

	validateTimeout = 10 * time.Second
)

// Credential errors. Both mean the user has to set up or run login first.
var (
	ErrNoClient    = errors.New("oauth_client.json not found")
	ErrNotLoggedIn = errors.New("not logged in (run: todo login)")
)

// IsAuthError reports whether err is a missing credential.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoClient) || errors.Is(err, ErrNotLoggedIn)
}

// LoadClientConfig reads oauth_client.json from the config directory.
func LoadClientConfig(cfg *config.Config) (*oauth2.Config, error) {
	data, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(data, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads a stored token from path.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token to path with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// TokenSource returns an auto-refreshing token source built from the
// stored client config and token.
func TokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("%w in %s", ErrNoClient, cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, ErrNotLoggedIn
	}
	oauthConfig, err := LoadClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}
	return oauthConfig.TokenSource(ctx, token), nil
}

// TokenValid reports whether the stored token has a refresh token and
// can currently produce an access token.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg.TokenPath())
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := LoadClientConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// Listen binds the first free callback port starting at CallbackStartPort.
func Listen() (int, net.Listener, error) {
	for i := 0; i < CallbackMaxPortAttempts; i++ {
		port := CallbackStartPort + i
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, ln, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// WaitForCode serves the OAuth redirect on ln and returns the authorization
// code from the first callback. The server is shut down before returning.
func WaitForCode(ctx context.Context, ln net.Listener, timeout time.Duration) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-time.After(timeout):
		return "", fmt.Errorf("oauth callback timed out")
	case <-ctx.Done():
		return "", fmt.Errorf("cancelled")
	}
}
