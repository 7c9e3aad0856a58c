package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/changebot/internal/config"
	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/DanielPopoola/changebot/internal/core/ports"
)

type HTTPChangeClient struct {
	baseURL      string
	apiKeyHeader string
	apiKey       string
	httpClient   *http.Client
}

func NewChangeClient(cfg config.ServiceNowConfig) ports.ChangeClient {
	return &HTTPChangeClient{
		baseURL:      cfg.ChangeURL(),
		apiKeyHeader: cfg.APIKeyHeader,
		apiKey:       cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPChangeClient) Create(ctx context.Context, draft domain.ChangeRequestDraft) (*domain.ChangeResponse, error) {
	return sendRequest(c, ctx, http.MethodPost, c.baseURL, &draft, true)
}

// UpdateState accepts any 2xx body, including an empty or non-JSON one.
func (c *HTTPChangeClient) UpdateState(ctx context.Context, sysID string, req domain.StateUpdateRequest) (*domain.ChangeResponse, error) {
	return sendRequest(c, ctx, http.MethodPatch, c.recordURL(sysID), &req, false)
}

func (c *HTTPChangeClient) Get(ctx context.Context, sysID string) (*domain.ChangeResponse, error) {
	return sendRequest[any](c, ctx, http.MethodGet, c.recordURL(sysID), nil, true)
}

func (c *HTTPChangeClient) recordURL(sysID string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(sysID))
}

func sendRequest[Req any](c *HTTPChangeClient, ctx context.Context, method, endpoint string, reqBody *Req, strict bool) (*domain.ChangeResponse, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(c.apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
		var errResp APIErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			apiErr.Message = errResp.Error.Message
			apiErr.Detail = errResp.Error.Detail
		}
		return nil, apiErr
	}

	changeResp := &domain.ChangeResponse{Raw: json.RawMessage(body)}
	if len(bytes.TrimSpace(body)) == 0 {
		if strict {
			return nil, fmt.Errorf("empty response body (status: %d)", resp.StatusCode)
		}
		return changeResp, nil
	}

	if err := json.Unmarshal(body, changeResp); err != nil {
		if strict {
			return nil, fmt.Errorf("error decoding json response: %w", err)
		}
		return &domain.ChangeResponse{Raw: json.RawMessage(body)}, nil
	}

	return changeResp, nil
}
