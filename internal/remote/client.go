package remote

import (
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/models"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnauthorized marks an auth-rejection from the remote service. It is
// propagated unmodified so the caller can force re-authentication.
var ErrUnauthorized = errors.New("unauthorized")

// AuthProvider supplies request headers for the remote API. The session layer
// that implements it is outside this core.
type AuthProvider interface {
	AuthHeaders() (map[string]string, error)
}

// NoAuth is an AuthProvider for unauthenticated deployments and tests.
type NoAuth struct{}

func (NoAuth) AuthHeaders() (map[string]string, error) { return nil, nil }

// Client talks to the remote bulk-fetch endpoints. Every call pulls a full
// snapshot of one entity collection; there is no incremental protocol.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Auth       AuthProvider

	log zerolog.Logger
}

func NewClient(baseURL string, auth AuthProvider) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Auth:       auth,
		log:        logger.WithComponent("remote"),
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	headers, err := c.Auth.AuthHeaders()
	if err != nil {
		return fmt.Errorf("auth headers: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug().Str("endpoint", endpoint).Msg("remote fetch")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("request %s: %w", endpoint, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request %s failed with status %d: %s", endpoint, resp.StatusCode, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchDocuments pulls receivable documents for a seller scope (one code or
// a comma-joined list).
func (c *Client) FetchDocuments(ctx context.Context, sellerCode string) ([]models.Document, error) {
	var out []models.Document
	err := c.post(ctx, "/import/documentos/", map[string]string{"sellerCode": sellerCode}, &out)
	return out, err
}

// FetchEvents pulls recent-activity records for a seller scope.
func (c *Client) FetchEvents(ctx context.Context, sellerCode string) ([]models.Event, error) {
	var out []models.Event
	err := c.post(ctx, "/import/eventos/", map[string]string{"sellerCode": sellerCode}, &out)
	return out, err
}

// FetchClients pulls the client records for an explicit code set. The remote
// endpoint takes the codes as a single quoted comma-joined string.
func (c *Client) FetchClients(ctx context.Context, clientCodes []string) ([]models.Client, error) {
	quoted := make([]string, len(clientCodes))
	for i, code := range clientCodes {
		quoted[i] = "'" + code + "'"
	}
	var out []models.Client
	err := c.post(ctx, "/import/clientes/", map[string]string{"list_codes": strings.Join(quoted, ",")}, &out)
	return out, err
}

// FetchSellers pulls the full seller list.
func (c *Client) FetchSellers(ctx context.Context) ([]models.Seller, error) {
	var out []models.Seller
	err := c.post(ctx, "/import/sellers/", map[string]string{}, &out)
	return out, err
}

// FetchDocumentLines pulls line items for a seller scope.
func (c *Client) FetchDocumentLines(ctx context.Context, sellerCode string) ([]models.DocumentLine, error) {
	var out []models.DocumentLine
	err := c.post(ctx, "/import/document-details/", map[string]string{"sellerCode": sellerCode}, &out)
	return out, err
}

// FetchMonthlySales pulls the latest monthly sales figures for a seller scope.
func (c *Client) FetchMonthlySales(ctx context.Context, sellerCode string) ([]models.MonthlySale, error) {
	var out []models.MonthlySale
	err := c.post(ctx, "/import/month-sales/", map[string]string{"sellerCode": sellerCode}, &out)
	return out, err
}
