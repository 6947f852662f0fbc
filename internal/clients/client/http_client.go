package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/tracing"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

const traceIDHeader = "X-Request-Id"

type HttpClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	Path    string
	// TemplatePath labels metrics, e.g. /v1/units/{id}/deposits
	TemplatePath string
	Headers      map[string]string
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// SendRequest sends an HTTP request and decodes the JSON response into R.
// Non 2xx responses are returned as *types.Error carrying the server's
// error code and message.
func SendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	status, raw, err := SendRawRequest(ctx, client, method, opts, input)
	if err != nil {
		return nil, err
	}

	var output R
	if len(raw) == 0 || status == http.StatusNoContent {
		return &output, nil
	}
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to decode response: %w", err))
	}
	return &output, nil
}

// SendRawRequest sends an HTTP request and returns the status and the body of
// a 2xx response as is. Failures are reported like SendRequest does.
func SendRawRequest[I any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (int, []byte, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return 0, nil, types.NewErrorWithMsg(
				http.StatusInternalServerError, types.InternalServiceError, "failed to marshal request body",
			)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, types.NewInternalServiceError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if id := tracing.TraceID(ctx); id != "" {
		req.Header.Set(traceIDHeader, id)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	timer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		timer(0)
		return 0, nil, fmt.Errorf("request to %s failed: %w", opts.TemplatePath, err)
	}
	defer resp.Body.Close()
	timer(resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil, decodeError(ctx, resp.StatusCode, raw)
	}
	return resp.StatusCode, raw, nil
}

func decodeError(ctx context.Context, status int, raw []byte) *types.Error {
	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil || errResp.ErrorCode == "" {
		log.Ctx(ctx).Debug().Int("status", status).Str("body", string(raw)).Msg("unexpected error body")
		return types.NewErrorWithMsg(status, types.InternalServiceError, http.StatusText(status))
	}
	return types.NewErrorWithMsg(status, types.ErrorCode(errResp.ErrorCode), errResp.Message)
}
