package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/domain/ledger"
	"github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/metrics"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/handlers"
)

type stubRepo struct{}

func (stubRepo) FindByUUID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	return nil, nil
}
func (stubRepo) Create(ctx context.Context, a *asset.Asset) error { return nil }
func (stubRepo) Update(ctx context.Context, id int64, patch asset.UpdatePatch) (*asset.Asset, error) {
	return nil, nil
}
func (stubRepo) ListByFolder(ctx context.Context, folderID int64) ([]asset.Asset, error) {
	return nil, nil
}

type stubFolders struct {
	folder *folder.Folder
}

func (s stubFolders) FindByUUID(ctx context.Context, id uuid.UUID) (*folder.Folder, error) {
	return s.folder, nil
}

type stubClients struct {
	capacityMb int64
}

func (s stubClients) FindByUserID(ctx context.Context, userID int64) (*account.Client, error) {
	return &account.Client{ID: 1, UserID: userID}, nil
}

func (s stubClients) ActivePackage(ctx context.Context, clientID int64) (*subscription.Package, error) {
	return &subscription.Package{ID: 1, StorageCapacityMb: s.capacityMb}, nil
}

type stubUsages struct{}

func (stubUsages) Get(ctx context.Context, clientID int64) (*asset.Usage, error) { return nil, nil }
func (stubUsages) GetOrCreate(ctx context.Context, clientID int64) (*asset.Usage, error) {
	return &asset.Usage{ClientID: clientID}, nil
}
func (stubUsages) UpdateUsedStorage(ctx context.Context, clientID int64, usedMb float64) error {
	return nil
}

type countingPinner struct {
	pinCalls int
}

func (p *countingPinner) Pin(ctx context.Context, content io.Reader, filename string) (string, error) {
	p.pinCalls++
	return "QmHash", nil
}
func (p *countingPinner) Unpin(ctx context.Context, hash string) error { return nil }
func (p *countingPinner) PublicURL(hash string) string                 { return hash }

type stubLedger struct{}

func (stubLedger) CreateCollection(ctx context.Context, name, symbol, description string, logoURL *string) (*ledger.CollectionResult, error) {
	return nil, errors.New("not implemented")
}
func (stubLedger) MintToken(ctx context.Context, collectionID int64, externalRef, contentHash string) (*ledger.MintResult, error) {
	return &ledger.MintResult{Ok: &ledger.MintSuccess{TxnID: "1", Token: ledger.Token{ID: 1}}}, nil
}
func (stubLedger) BurnToken(ctx context.Context, ref string) (*ledger.BurnResult, error) {
	return &ledger.BurnResult{Ok: &ledger.BurnSuccess{TxnID: "1"}}, nil
}

func uploadContext(t *testing.T, folderUUID uuid.UUID, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("name", "report")
	writer.WriteField("description", "quarterly report")
	writer.WriteField("folder_uuid", folderUUID.String())
	part, err := writer.CreateFormFile("file", "report.pdf")
	if err != nil {
		t.Fatalf("build multipart: %v", err)
	}
	part.Write(content)
	writer.Close()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/assets", &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Set("currentUser", &account.User{ID: 10, Email: "user@example.com"})
	return c, recorder
}

func TestUpsertOverQuotaCountsRejection(t *testing.T) {
	folderUUID := uuid.New()
	pinner := &countingPinner{}
	// zero capacity: any non-empty upload is over quota
	service := asset.NewService(stubRepo{}, stubFolders{&folder.Folder{ID: 7, UUID: folderUUID, ClientID: 1}},
		stubClients{capacityMb: 0}, stubUsages{}, pinner, stubLedger{}, zerolog.Nop())
	handler := handlers.NewAssetHandler(&config.Config{MaxUploadBytes: 1 << 20}, service, zerolog.Nop())

	before := testutil.ToFloat64(metrics.QuotaRejectionsTotal)
	c, recorder := uploadContext(t, folderUUID, []byte("content"))
	handler.Upsert(c)

	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if got := testutil.ToFloat64(metrics.QuotaRejectionsTotal); got != before+1 {
		t.Fatalf("expected one quota rejection recorded, got delta %v", got-before)
	}
	if pinner.pinCalls != 0 {
		t.Fatal("over-quota upload must not pin")
	}
}

func TestUpsertOversizedFileIsValidationNotQuota(t *testing.T) {
	folderUUID := uuid.New()
	service := asset.NewService(stubRepo{}, stubFolders{&folder.Folder{ID: 7, UUID: folderUUID, ClientID: 1}},
		stubClients{capacityMb: 100}, stubUsages{}, &countingPinner{}, stubLedger{}, zerolog.Nop())
	handler := handlers.NewAssetHandler(&config.Config{MaxUploadBytes: 4}, service, zerolog.Nop())

	before := testutil.ToFloat64(metrics.QuotaRejectionsTotal)
	c, recorder := uploadContext(t, folderUUID, []byte("more than four bytes"))
	handler.Upsert(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if got := testutil.ToFloat64(metrics.QuotaRejectionsTotal); got != before {
		t.Fatal("an oversized request must not count as a quota rejection")
	}
}
