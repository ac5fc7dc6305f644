package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Gateway is a Store backed by an IPFS-style HTTP API. Uploads go through the
// add endpoint as multipart form data; the gateway's response carries the
// assigned content identifier.
type Gateway struct {
	baseURL string
	client  *http.Client
}

// GatewayOptions configures a Gateway client.
type GatewayOptions struct {
	// BaseURL is the API root, e.g. "http://127.0.0.1:5001".
	BaseURL string
	// Timeout bounds each upload call. Zero selects a 120s default.
	Timeout time.Duration
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewGateway constructs a gateway-backed store.
func NewGateway(opts GatewayOptions) *Gateway {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Gateway{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
	}
}

type addResponse struct {
	Hash string `json:"Hash"`
	Name string `json:"Name"`
}

// Upload posts the bytes to the gateway add endpoint, forwarding byte-counted
// progress to onProgress as the request body drains.
func (g *Gateway) Upload(ctx context.Context, data []byte, onProgress ProgressFunc) (string, error) {
	return g.add(ctx, data, "payload.bin", onProgress)
}

// UploadJSON marshals doc and uploads it under the given filename.
func (g *Gateway) UploadJSON(ctx context.Context, doc any, filename string) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", filename, err)
	}
	if strings.TrimSpace(filename) == "" {
		filename = "document.json"
	}
	return g.add(ctx, data, filename, nil)
}

func (g *Gateway) add(ctx context.Context, data []byte, filename string, onProgress ProgressFunc) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize upload form: %w", err)
	}

	endpoint := g.baseURL + "/api/v0/add?cid-version=1&raw-leaves=true"
	reader := &progressReader{
		reader:     bytes.NewReader(body.Bytes()),
		total:      int64(body.Len()),
		onProgress: onProgress,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = int64(body.Len())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload to gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var added addResponse
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if added.Hash == "" {
		return "", fmt.Errorf("gateway response missing content identifier")
	}
	return added.Hash, nil
}

// progressReader forwards read progress as a 0-100 percentage. The final 100%
// event fires when the body is fully drained, not when the response arrives.
type progressReader struct {
	reader     *bytes.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 && r.onProgress != nil && r.total > 0 {
		r.read += int64(n)
		pct := int(r.read * 100 / r.total)
		if pct > 100 {
			pct = 100
		}
		if pct != r.lastPct {
			r.lastPct = pct
			r.onProgress(pct)
		}
	}
	return n, err
}
