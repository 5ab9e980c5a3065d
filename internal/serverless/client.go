// Package serverless implements the user-listing function that calls the
// backend's service-only endpoint with a signed request.
package serverless

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/accounthub/account-service/pkg/signature"
)

const (
	usersPath       = "/api/users"
	signatureHeader = "serverlessSignature"
	maxBodyBytes    = 4 << 20
)

// ErrBackendStatus is returned when the backend answers with a non-200 status.
var ErrBackendStatus = errors.New("backend returned unexpected status")

// BackendClient fetches the user directory from the account backend.
type BackendClient struct {
	baseURL    string
	signer     *signature.Authority
	httpClient *http.Client
}

// NewBackendClient signs every call with signer. A zero timeout means 10s.
func NewBackendClient(baseURL string, signer *signature.Authority, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		signer:     signer,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUsers calls GET /api/users and returns the raw JSON array.
func (c *BackendClient) FetchUsers(ctx context.Context) (json.RawMessage, error) {
	target := c.baseURL + usersPath

	sig, err := c.signer.Sign(target)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(signatureHeader, sig)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d: %s", ErrBackendStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !json.Valid(body) {
		return nil, errors.New("backend returned invalid JSON")
	}
	return json.RawMessage(body), nil
}
