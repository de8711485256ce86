// Package upstream fetches broker and sale collections from the CRM API,
// with a synthetic source standing in whenever live data is unavailable.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/placarvendas/placar/internal/domain/adapt"
)

const defaultHTTPTimeout = 30 * time.Second

// Client is the REST client for the CRM API. Requests go through an opaque
// proxy boundary: the client only needs "GET with query params -> JSON body
// or error with status and payload". The access key travels in the "chave"
// header; app-level calls additionally attach "codigoacesso".
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a CRM API client for the given base URL and access key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// ListEngagements requests one page of the sale listing. Filters select the
// sale purpose and the closed-deal status; date bounds are optional
// YYYY-MM-DD strings. The response body wraps the row list under "lista" or
// "Lista", or is a bare array; all three shapes are accepted.
func (c *Client) ListEngagements(ctx context.Context, page, pageSize int, startDate, endDate string) ([]adapt.Raw, error) {
	params := url.Values{}
	params.Set("numeroPagina", fmt.Sprint(page))
	params.Set("numeroRegistros", fmt.Sprint(pageSize))
	params.Set("finalidade", "2") // sale
	params.Set("situacao", "3")   // closed deal
	if startDate != "" {
		params.Set("dataInicial", startDate)
	}
	if endDate != "" {
		params.Set("dataFinal", endDate)
	}

	body, err := c.doGet(ctx, "/Atendimento/RetornarAtendimentos?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("upstream: list engagements page %d: %w", page, err)
	}
	return decodeRowList(body)
}

// Authenticate exchanges the configured user/password for an app-level
// access token and stores it on the client. A failed call leaves the token
// empty; app-level endpoints are then simply not used.
func (c *Client) Authenticate(ctx context.Context, user, password string) error {
	params := url.Values{}
	params.Set("usuario", user)
	params.Set("senha", password)

	body, err := c.doGet(ctx, "/Usuario/App_ValidarAcesso?"+params.Encode())
	if err != nil {
		return fmt.Errorf("upstream: validate access: %w", err)
	}

	var payload struct {
		CodigoAcesso  string `json:"CodigoAcesso"`
		CodigoacessoL string `json:"codigoacesso"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("upstream: decode access token: %w", err)
	}
	if payload.CodigoAcesso != "" {
		c.accessToken = payload.CodigoAcesso
	} else {
		c.accessToken = payload.CodigoacessoL
	}
	return nil
}

// HasAccessToken reports whether an app-level token is available.
func (c *Client) HasAccessToken() bool {
	return c.accessToken != ""
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("chave", c.apiKey)
	if c.accessToken != "" {
		req.Header.Set("codigoacesso", c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: truncate(body, 512)}
	}
	return body, nil
}

// decodeRowList accepts {"lista": [...]}, {"Lista": [...]} or a bare array.
func decodeRowList(body []byte) ([]adapt.Raw, error) {
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err == nil {
		for _, key := range []string{"lista", "Lista"} {
			if raw, ok := wrapped[key]; ok {
				return decodeRawSlice(raw)
			}
		}
		// An object without a list key means zero rows, not an error shape.
		return nil, nil
	}
	return decodeRawSlice(body)
}

func decodeRawSlice(raw []byte) ([]adapt.Raw, error) {
	var rows []adapt.Raw
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("upstream: decode row list: %w", err)
	}
	return rows, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// StatusError carries an upstream non-2xx status and a payload excerpt.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}
