package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultAPIBase  = "https://api.dropboxapi.com"
	defaultAuthBase = "https://www.dropbox.com"

	oauthScopes = "account_info.read files.metadata.read files.metadata.write files.content.read files.content.write sharing.write"
)

// Config holds Dropbox app credentials and folder settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BaseFolder   string
	Timeout      time.Duration
}

// FolderLinks are the shared links for a provisioned project
type FolderLinks struct {
	RawPhotos   string
	EditedMedia string
	FinalMedia  string
}

// Client talks to the Dropbox HTTP API using tokens from a TokenStore
type Client struct {
	config     Config
	store      TokenStore
	httpClient *http.Client

	apiBase  string
	authBase string
}

// NewClient creates a Dropbox client
func NewClient(config Config, store TokenStore) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if config.BaseFolder == "" {
		config.BaseFolder = "/Projects"
	}
	return &Client{
		config:     config,
		store:      store,
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    defaultAPIBase,
		authBase:   defaultAuthBase,
	}
}

// AuthorizeURL builds the OAuth consent URL. Offline access is requested so
// a refresh token is issued.
func (c *Client) AuthorizeURL() string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.config.ClientID)
	q.Set("redirect_uri", c.config.RedirectURI)
	q.Set("token_access_type", "offline")
	q.Set("scope", oauthScopes)
	return c.authBase + "/oauth2/authorize?" + q.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode trades an OAuth authorization code for tokens and stores them.
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	form := url.Values{}
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.config.ClientID)
	form.Set("client_secret", c.config.ClientSecret)
	form.Set("redirect_uri", c.config.RedirectURI)

	tokens, err := c.requestToken(ctx, form)
	if err != nil {
		return err
	}

	ttl := time.Duration(tokens.ExpiresIn) * time.Second
	if err := c.store.SaveAccessToken(ctx, tokens.AccessToken, ttl); err != nil {
		return err
	}
	if tokens.RefreshToken != "" {
		if err := c.store.SaveRefreshToken(ctx, tokens.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// RefreshAccessToken obtains a fresh access token using the stored refresh
// token and saves it.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	refresh, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refresh)
	form.Set("client_id", c.config.ClientID)
	form.Set("client_secret", c.config.ClientSecret)

	tokens, err := c.requestToken(ctx, form)
	if err != nil {
		return "", err
	}
	if tokens.AccessToken == "" {
		return "", fmt.Errorf("dropbox refresh returned no access token")
	}

	ttl := time.Duration(tokens.ExpiresIn) * time.Second
	if err := c.store.SaveAccessToken(ctx, tokens.AccessToken, ttl); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiBase+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dropbox token endpoint returned %d: %s", resp.StatusCode, string(detail))
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	return &tokens, nil
}

// EnsureProjectFolders creates the project folder tree for a booking and
// returns shared links for each subfolder. Existing folders and links are
// reused, so the call is safe to repeat.
func (c *Client) EnsureProjectFolders(ctx context.Context, street, agentName string) (*FolderLinks, error) {
	street = strings.TrimSpace(street)
	if street == "" {
		return nil, fmt.Errorf("property street is required for folder provisioning")
	}

	project := fmt.Sprintf("%s/%s - %s", c.config.BaseFolder, street, strings.TrimSpace(agentName))
	subfolders := []string{"Raw Photos", "Edited Media", "Final Media"}

	if err := c.ensureFolder(ctx, project); err != nil {
		return nil, err
	}

	links := make([]string, 0, len(subfolders))
	for _, name := range subfolders {
		path := project + "/" + name
		if err := c.ensureFolder(ctx, path); err != nil {
			return nil, err
		}
		link, err := c.sharedLink(ctx, path)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return &FolderLinks{
		RawPhotos:   links[0],
		EditedMedia: links[1],
		FinalMedia:  links[2],
	}, nil
}

func (c *Client) ensureFolder(ctx context.Context, path string) error {
	body := map[string]interface{}{"path": path, "autorename": false}

	status, _, err := c.call(ctx, "/2/files/create_folder_v2", body)
	if err != nil {
		return err
	}
	// 409 means the folder already exists
	if status >= 400 && status != http.StatusConflict {
		return fmt.Errorf("create folder %s: status %d", path, status)
	}
	return nil
}

func (c *Client) sharedLink(ctx context.Context, path string) (string, error) {
	body := map[string]interface{}{
		"path": path,
		"settings": map[string]interface{}{
			"requested_visibility": "public",
			"allow_download":       true,
		},
	}

	status, respBody, err := c.call(ctx, "/2/sharing/create_shared_link_with_settings", body)
	if err != nil {
		return "", err
	}

	if status == http.StatusConflict {
		// Link already exists; look it up instead
		return c.existingLink(ctx, path)
	}
	if status >= 400 {
		return "", fmt.Errorf("create shared link %s: status %d", path, status)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode shared link response: %w", err)
	}
	return result.URL, nil
}

func (c *Client) existingLink(ctx context.Context, path string) (string, error) {
	body := map[string]interface{}{"path": path, "direct_only": true}

	status, respBody, err := c.call(ctx, "/2/sharing/list_shared_links", body)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("list shared links %s: status %d", path, status)
	}

	var result struct {
		Links []struct {
			URL string `json:"url"`
		} `json:"links"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode shared links response: %w", err)
	}
	if len(result.Links) == 0 {
		return "", fmt.Errorf("no shared link found for %s", path)
	}
	return result.Links[0].URL, nil
}

// call posts a JSON RPC request to the Dropbox API. On a 401 the access
// token is refreshed once and the request retried.
func (c *Client) call(ctx context.Context, endpoint string, body interface{}) (int, []byte, error) {
	token, err := c.store.AccessToken(ctx)
	if err == ErrNoToken {
		token, err = c.RefreshAccessToken(ctx)
	}
	if err != nil {
		return 0, nil, err
	}

	status, respBody, err := c.doCall(ctx, endpoint, token, body)
	if err != nil {
		return 0, nil, err
	}

	if status == http.StatusUnauthorized {
		log.Info().Str("endpoint", endpoint).Msg("Dropbox access token expired, refreshing")
		token, err = c.RefreshAccessToken(ctx)
		if err != nil {
			return 0, nil, err
		}
		return c.doCall(ctx, endpoint, token, body)
	}

	return status, respBody, nil
}

func (c *Client) doCall(ctx context.Context, endpoint, token string, body interface{}) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiBase+endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("dropbox request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
