package pinning_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/infrastructure/pinning"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

func newPinataClient(serverURL string) *pinning.PinataClient {
	cfg := &config.Config{
		PinataAPIURL:      serverURL,
		PinataAPIKey:      "test-key",
		PinataAPISecret:   "test-secret",
		PinataIPFSGateway: "gateway.pinata.cloud",
		PinataTimeout:     5 * time.Second,
	}
	return pinning.NewPinataClient(cfg, zerolog.Nop())
}

func TestPinSendsMultipartWithAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pinning/pinFileToIPFS" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("pinata_api_key") != "test-key" {
			t.Errorf("missing api key header, got %q", r.Header.Get("pinata_api_key"))
		}
		if r.Header.Get("pinata_secret_api_key") != "test-secret" {
			t.Errorf("missing secret header, got %q", r.Header.Get("pinata_secret_api_key"))
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "cert.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"IpfsHash":"QmTestHash","PinSize":1234,"Timestamp":"2024-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	client := newPinataClient(server.URL)
	hash, err := client.Pin(context.Background(), strings.NewReader("file content"), "cert.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != "QmTestHash" {
		t.Fatalf("expected QmTestHash, got %q", hash)
	}
}

func TestPinNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newPinataClient(server.URL)
	_, err := client.Pin(context.Background(), strings.NewReader("x"), "x.bin")

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeTransportError {
		t.Fatalf("expected transport error, got %v", err)
	}
	if platformErr.Context["status"] != http.StatusTooManyRequests {
		t.Fatalf("expected status in context, got %v", platformErr.Context)
	}
}

func TestPinServiceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := newPinataClient(server.URL)
	_, err := client.Pin(context.Background(), strings.NewReader("x"), "x.bin")

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeTransportError {
		t.Fatalf("expected transport error, got %v", err)
	}
	if platformErr.Message != "pinning service unavailable" {
		t.Fatalf("unexpected message %q", platformErr.Message)
	}
}

func TestUnpinDeletesByHash(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
	}))
	defer server.Close()

	client := newPinataClient(server.URL)
	if err := client.Unpin(context.Background(), "QmOldHash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/pinning/unpin/QmOldHash" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestPublicURLUsesGateway(t *testing.T) {
	client := newPinataClient("https://api.pinata.cloud")
	url := client.PublicURL("QmHash")
	if url != "https://gateway.pinata.cloud/ipfs/QmHash" {
		t.Fatalf("unexpected url %q", url)
	}
}
