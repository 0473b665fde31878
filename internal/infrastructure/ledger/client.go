package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	domain "github.com/veecerts/asset-api/internal/domain/ledger"
	"github.com/veecerts/asset-api/internal/infrastructure/metrics"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

const (
	methodCreate = "create_nft"
	methodMint   = "mint_nft"
	methodBurn   = "burn_nft"
)

// Client invokes canister methods over the ledger agent's HTTP gateway. Each
// call posts JSON arguments to /api/v1/canister/{principal}/{method} and
// decodes an Ok/Err union. A transport, status or decoding failure is
// reported as a distinct error; the Err arm of the union is returned to the
// caller for domain-level handling.
type Client struct {
	endpoint    string
	principalID string
	httpClient  *http.Client
	log         zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		endpoint:    strings.TrimSuffix(cfg.LedgerEndpoint, "/"),
		principalID: cfg.LedgerPrincipalID,
		httpClient: &http.Client{
			Timeout: cfg.LedgerTimeout,
		},
		log: log.With().Str("component", "ledger-client").Logger(),
	}
}

type createArgs struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	Logo        *string `json:"logo"`
}

type mintArgs struct {
	CollectionID int64  `json:"collection_id"`
	Metadata     string `json:"metadata"`
}

type burnArgs struct {
	TokenID string `json:"token_id"`
}

// tokenMetadata is embedded as a JSON string in the minted token.
type tokenMetadata struct {
	UUID      string `json:"uuid"`
	IpfsHash  string `json:"ipfs_hash"`
	DateAdded string `json:"date_added"`
}

func (c *Client) CreateCollection(ctx context.Context, name, symbol, description string, logoURL *string) (*domain.CollectionResult, error) {
	var result domain.CollectionResult
	args := createArgs{Name: name, Symbol: symbol, Description: description, Logo: logoURL}
	if err := c.call(ctx, methodCreate, args, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) MintToken(ctx context.Context, collectionID int64, externalRef, contentHash string) (*domain.MintResult, error) {
	metadata, err := json.Marshal(tokenMetadata{
		UUID:      externalRef,
		IpfsHash:  contentHash,
		DateAdded: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to encode token metadata", err)
	}

	var result domain.MintResult
	args := mintArgs{CollectionID: collectionID, Metadata: string(metadata)}
	if err := c.call(ctx, methodMint, args, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) BurnToken(ctx context.Context, ref string) (*domain.BurnResult, error) {
	var result domain.BurnResult
	if err := c.call(ctx, methodBurn, burnArgs{TokenID: ref}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) call(ctx context.Context, method string, args any, result any) error {
	start := time.Now()

	body, err := json.Marshal(args)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to encode ledger call", err)
	}

	url := fmt.Sprintf("%s/api/v1/canister/%s/%s", c.endpoint, c.principalID, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to build ledger request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordLedgerCall(method, "error", time.Since(start).Seconds())
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "ledger canister unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLedgerCall(method, "error", time.Since(start).Seconds())
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError,
			fmt.Sprintf("ledger canister returned status %d", resp.StatusCode),
			nil,
			map[string]any{"method": method, "status": resp.StatusCode},
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.RecordLedgerCall(method, "error", time.Since(start).Seconds())
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "failed to decode ledger response", err)
	}

	// a 200 body that decodes but fills neither union arm is not a canister
	// result; surface it like any other decode failure
	if union, ok := result.(interface{ Empty() bool }); ok && union.Empty() {
		metrics.RecordLedgerCall(method, "error", time.Since(start).Seconds())
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeTransportError, "malformed ledger response", nil,
			map[string]any{"method": method})
	}

	metrics.RecordLedgerCall(method, "success", time.Since(start).Seconds())
	c.log.Debug().Str("method", method).Dur("took", time.Since(start)).Msg("ledger call completed")
	return nil
}
