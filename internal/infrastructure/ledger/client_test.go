package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	domain "github.com/veecerts/asset-api/internal/domain/ledger"
	"github.com/veecerts/asset-api/internal/infrastructure/ledger"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

func newClient(serverURL string) *ledger.Client {
	cfg := &config.Config{
		LedgerEndpoint:    serverURL,
		LedgerPrincipalID: "aaaaa-aa",
		LedgerTimeout:     5 * time.Second,
	}
	return ledger.NewClient(cfg, zerolog.Nop())
}

func TestMintTokenPostsMetadata(t *testing.T) {
	var gotPath string
	var gotArgs struct {
		CollectionID int64  `json:"collection_id"`
		Metadata     string `json:"metadata"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotArgs); err != nil {
			t.Errorf("decode args: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Ok":{"txn_id":"9","token":{"id":42,"collection_id":7}}}`))
	}))
	defer server.Close()

	client := newClient(server.URL)
	result, err := client.MintToken(context.Background(), 7, "2b0c6f7a-0000-0000-0000-000000000000", "QmHash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v1/canister/aaaaa-aa/mint_nft" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotArgs.CollectionID != 7 {
		t.Fatalf("expected collection 7, got %d", gotArgs.CollectionID)
	}

	var metadata map[string]string
	if err := json.Unmarshal([]byte(gotArgs.Metadata), &metadata); err != nil {
		t.Fatalf("metadata is not a JSON string: %v", err)
	}
	if metadata["uuid"] != "2b0c6f7a-0000-0000-0000-000000000000" || metadata["ipfs_hash"] != "QmHash" {
		t.Fatalf("unexpected metadata %v", metadata)
	}
	if _, err := time.Parse(time.RFC3339, metadata["date_added"]); err != nil {
		t.Fatalf("date_added is not RFC3339: %v", err)
	}

	if result.Ok == nil || result.Ok.Token.ID != 42 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestMintTokenErrUnion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Err":"CollectionNotFound"}`))
	}))
	defer server.Close()

	client := newClient(server.URL)
	result, err := client.MintToken(context.Background(), 7, "ref", "QmHash")
	if err != nil {
		t.Fatalf("an application-level rejection must not be a call error: %v", err)
	}
	if result.Err == nil || *result.Err != domain.ReasonCollectionNotFound {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Err.String() != "Collection not found" {
		t.Fatalf("unexpected reason rendering %q", result.Err.String())
	}
}

func TestBurnTokenSendsCompositeRef(t *testing.T) {
	var gotPath string
	var gotArgs struct {
		TokenID string `json:"token_id"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotArgs)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Ok":{"txn_id":"3"}}`))
	}))
	defer server.Close()

	client := newClient(server.URL)
	result, err := client.BurnToken(context.Background(), domain.BurnRef(13, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/v1/canister/aaaaa-aa/burn_nft" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotArgs.TokenID != "13x7" {
		t.Fatalf("expected composite ref 13x7, got %q", gotArgs.TokenID)
	}
	if result.Ok == nil || result.Ok.TxnID != "3" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCreateCollectionSendsLogoURL(t *testing.T) {
	var gotArgs struct {
		Name        string  `json:"name"`
		Symbol      string  `json:"symbol"`
		Description string  `json:"description"`
		Logo        *string `json:"logo"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotArgs)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Ok":{"txn_id":"1","collection":{"id":314,"name":"certs","symbol":"VEC-#0000001"}}}`))
	}))
	defer server.Close()

	logoURL := "https://gateway.test/ipfs/QmLogo"
	client := newClient(server.URL)
	result, err := client.CreateCollection(context.Background(), "certs", "VEC-#0000001", "issued certs", &logoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs.Symbol != "VEC-#0000001" || gotArgs.Logo == nil || *gotArgs.Logo != logoURL {
		t.Fatalf("unexpected args %+v", gotArgs)
	}
	if result.Ok == nil || result.Ok.Collection.ID != 314 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCallNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newClient(server.URL)
	_, err := client.BurnToken(context.Background(), "13x7")

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeTransportError {
		t.Fatalf("expected transport error, got %v", err)
	}
	if platformErr.Context["method"] != "burn_nft" {
		t.Fatalf("expected method in context, got %v", platformErr.Context)
	}
}

func TestCallRejectsEmptyUnion(t *testing.T) {
	bodies := map[string]string{
		"empty object": `{}`,
		"null ok arm":  `{"Ok":null}`,
		"foreign keys": `{"status":"accepted"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer server.Close()

			client := newClient(server.URL)
			result, err := client.MintToken(context.Background(), 7, "ref", "QmHash")
			if result != nil {
				t.Fatalf("a malformed body must not produce a result, got %+v", result)
			}

			var platformErr *platformerrors.PlatformError
			if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeTransportError {
				t.Fatalf("expected transport error, got %v", err)
			}
			if platformErr.Message != "malformed ledger response" {
				t.Fatalf("unexpected message %q", platformErr.Message)
			}
		})
	}
}

func TestBurnRejectsEmptyUnion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newClient(server.URL)
	if _, err := client.BurnToken(context.Background(), "13x7"); err == nil {
		t.Fatal("an empty burn union must be rejected")
	}
	if _, err := client.CreateCollection(context.Background(), "certs", "VEC-#0000001", "d", nil); err == nil {
		t.Fatal("an empty create union must be rejected")
	}
}

func TestCallUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newClient(server.URL)
	_, err := client.MintToken(context.Background(), 1, "ref", "hash")

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeTransportError {
		t.Fatalf("expected transport error, got %v", err)
	}
	if platformErr.Message != "ledger canister unreachable" {
		t.Fatalf("unexpected message %q", platformErr.Message)
	}
}
