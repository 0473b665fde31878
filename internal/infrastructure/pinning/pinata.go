package pinning

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

	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/infrastructure/metrics"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// PinataClient pins content to IPFS through the Pinata HTTP API.
type PinataClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	gateway    string
	httpClient *http.Client
	log        zerolog.Logger
}

// pinFileResponse is the Pinata pinFileToIPFS response body.
type pinFileResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

func NewPinataClient(cfg *config.Config, log zerolog.Logger) *PinataClient {
	return &PinataClient{
		baseURL:   strings.TrimSuffix(cfg.PinataAPIURL, "/"),
		apiKey:    cfg.PinataAPIKey,
		apiSecret: cfg.PinataAPISecret,
		gateway:   cfg.PinataIPFSGateway,
		httpClient: &http.Client{
			Timeout: cfg.PinataTimeout,
		},
		log: log.With().Str("component", "pinata-client").Logger(),
	}
}

// Pin uploads content via pinFileToIPFS and returns the IPFS hash.
func (p *PinataClient) Pin(ctx context.Context, content io.Reader, filename string) (string, error) {
	start := time.Now()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to build pin request", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to read pin content", err)
	}
	if err := writer.Close(); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to build pin request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to build pin request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	p.setAuth(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.RecordPinOperation("pin", "error", time.Since(start).Seconds())
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "pinning service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordPinOperation("pin", "error", time.Since(start).Seconds())
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError,
			fmt.Sprintf("pinning service returned status %d", resp.StatusCode),
			nil,
			map[string]any{"status": resp.StatusCode},
		)
	}

	var decoded pinFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.RecordPinOperation("pin", "error", time.Since(start).Seconds())
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "failed to decode pin response", err)
	}

	metrics.RecordPinOperation("pin", "success", time.Since(start).Seconds())
	p.log.Debug().Str("hash", decoded.IpfsHash).Int64("pin_size", decoded.PinSize).Msg("content pinned")
	return decoded.IpfsHash, nil
}

// Unpin removes a pin by hash. A 404 from Pinata still surfaces as an error;
// callers decide whether to treat it as fatal.
func (p *PinataClient) Unpin(ctx context.Context, hash string) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.baseURL+"/pinning/unpin/"+hash, nil)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to build unpin request", err)
	}
	p.setAuth(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.RecordPinOperation("unpin", "error", time.Since(start).Seconds())
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "pinning service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordPinOperation("unpin", "error", time.Since(start).Seconds())
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError,
			fmt.Sprintf("pinning service returned status %d", resp.StatusCode),
			nil,
			map[string]any{"status": resp.StatusCode, "hash": hash},
		)
	}

	metrics.RecordPinOperation("unpin", "success", time.Since(start).Seconds())
	return nil
}

// PublicURL builds the gateway URL for a pinned hash.
func (p *PinataClient) PublicURL(hash string) string {
	return fmt.Sprintf("https://%s/ipfs/%s", p.gateway, hash)
}

func (p *PinataClient) setAuth(req *http.Request) {
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.apiSecret)
}
