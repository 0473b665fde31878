package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/domain/ledger"
	"github.com/veecerts/asset-api/internal/domain/pinning"
	"github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// Repository defines asset persistence operations needed by the service.
type Repository interface {
	FindByUUID(ctx context.Context, id uuid.UUID) (*Asset, error)
	Create(ctx context.Context, asset *Asset) error
	Update(ctx context.Context, id int64, patch UpdatePatch) (*Asset, error)
	ListByFolder(ctx context.Context, folderID int64) ([]Asset, error)
}

// FolderStore resolves target folders.
type FolderStore interface {
	FindByUUID(ctx context.Context, id uuid.UUID) (*folder.Folder, error)
}

// ClientStore resolves the caller's client row and its active package.
type ClientStore interface {
	FindByUserID(ctx context.Context, userID int64) (*account.Client, error)
	// ActivePackage joins through the client's active subscription; a nil
	// package with nil error means the client has no active subscription.
	ActivePackage(ctx context.Context, clientID int64) (*subscription.Package, error)
}

// UsageStore persists the per-client storage counter.
type UsageStore interface {
	Get(ctx context.Context, clientID int64) (*Usage, error)
	GetOrCreate(ctx context.Context, clientID int64) (*Usage, error)
	UpdateUsedStorage(ctx context.Context, clientID int64, usedMb float64) error
}

// Service orchestrates the upload/mint and replace/burn+mint workflows.
//
// The multi-step sequence is deliberately not transactional: each database
// write and each external call commits independently, and no compensation of
// pin/mint/burn side effects is attempted on partial failure. Two concurrent
// uploads may both pass the quota check against a stale usage row.
type Service struct {
	repo    Repository
	folders FolderStore
	clients ClientStore
	usages  UsageStore
	pinner  pinning.Pinner
	ledger  ledger.Service
	log     zerolog.Logger
}

func NewService(repo Repository, folders FolderStore, clients ClientStore, usages UsageStore, pinner pinning.Pinner, ledgerClient ledger.Service, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		folders: folders,
		clients: clients,
		usages:  usages,
		pinner:  pinner,
		ledger:  ledgerClient,
		log:     log.With().Str("component", "asset-service").Logger(),
	}
}

// Upsert creates or replaces an asset for the authenticated caller.
func (s *Service) Upsert(ctx context.Context, actor *account.User, params UpsertParams) (*Asset, error) {
	target, err := s.folders.FindByUUID(ctx, params.FolderUUID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Folder with uuid %s was not found", params.FolderUUID), nil)
	}

	if actor == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "You must be authenticated to perform this action", nil)
	}

	client, err := s.clients.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "User Client not found", nil)
	}

	pkg, err := s.clients.ActivePackage(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNoActiveSubscription, "You do not currently have an active subscription", nil)
	}

	usage, err := s.usages.GetOrCreate(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	if params.AssetUUID != nil {
		return s.replace(ctx, client, pkg, usage, target, params)
	}
	return s.create(ctx, client, pkg, usage, target, params)
}

// replace burns the asset's current token and mints a replacement. The old
// content is unpinned before the burn; if the mint afterwards fails, the row
// keeps pointing at the burned token and the freshly pinned content stays
// pinned.
func (s *Service) replace(ctx context.Context, client *account.Client, pkg *subscription.Package, usage *Usage, target *folder.Folder, params UpsertParams) (*Asset, error) {
	existing, err := s.repo.FindByUUID(ctx, *params.AssetUUID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Entity with uuid %s was not found", params.AssetUUID), nil)
	}
	if existing.ClientID != client.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "You are not authorized to perform this action", nil)
	}

	delta := params.SizeMb - existing.SizeMb
	newTotal, err := CheckAndReserve(ctx, usage.UsedStorageMb, delta, float64(pkg.StorageCapacityMb), params.SizeMb)
	if err != nil {
		return nil, err
	}

	if err := s.pinner.Unpin(ctx, existing.IpfsHash); err != nil {
		return nil, err
	}

	burnRes, err := s.ledger.BurnToken(ctx, ledger.BurnRef(existing.NftID, existing.FolderID))
	if err != nil {
		return nil, err
	}
	if burnRes.Err != nil {
		return nil, contractError(ctx, *burnRes.Err)
	}

	hash, err := s.pinner.Pin(ctx, params.Content, params.Filename)
	if err != nil {
		return nil, err
	}

	mintRes, err := s.ledger.MintToken(ctx, target.ID, existing.UUID.String(), hash)
	if err != nil {
		return nil, err
	}
	if mintRes.Err != nil {
		return nil, contractError(ctx, *mintRes.Err)
	}

	if params.ContentType == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeMissingContentType, "Failed to identify content_type", nil)
	}

	updated, err := s.repo.Update(ctx, existing.ID, UpdatePatch{
		NftID:       mintRes.Ok.Token.ID,
		FolderID:    target.ID,
		IpfsHash:    hash,
		SizeMb:      params.SizeMb,
		ContentType: params.ContentType,
		Name:        params.Name,
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.usages.UpdateUsedStorage(ctx, client.ID, newTotal); err != nil {
		return nil, err
	}

	s.log.Info().Str("asset", updated.UUID.String()).Int64("nft", updated.NftID).Msg("asset replaced")
	return updated, nil
}

func (s *Service) create(ctx context.Context, client *account.Client, pkg *subscription.Package, usage *Usage, target *folder.Folder, params UpsertParams) (*Asset, error) {
	newTotal, err := CheckAndReserve(ctx, usage.UsedStorageMb, params.SizeMb, float64(pkg.StorageCapacityMb), params.SizeMb)
	if err != nil {
		return nil, err
	}

	id := uuid.New()

	hash, err := s.pinner.Pin(ctx, params.Content, params.Filename)
	if err != nil {
		return nil, err
	}

	mintRes, err := s.ledger.MintToken(ctx, target.ID, id.String(), hash)
	if err != nil {
		return nil, err
	}
	if mintRes.Err != nil {
		return nil, contractError(ctx, *mintRes.Err)
	}

	if params.ContentType == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeMissingContentType, "Failed to identify content_type", nil)
	}

	created := &Asset{
		UUID:        id,
		ClientID:    client.ID,
		FolderID:    target.ID,
		NftID:       mintRes.Ok.Token.ID,
		IpfsHash:    hash,
		SizeMb:      params.SizeMb,
		ContentType: params.ContentType,
		Name:        params.Name,
		Description: params.Description,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	if err := s.usages.UpdateUsedStorage(ctx, client.ID, newTotal); err != nil {
		return nil, err
	}

	s.log.Info().Str("asset", id.String()).Int64("nft", created.NftID).Msg("asset created")
	return created, nil
}

// Get resolves an asset owned by the caller.
func (s *Service) Get(ctx context.Context, actor *account.User, id uuid.UUID) (*Asset, error) {
	client, err := s.requireClient(ctx, actor)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Entity with uuid %s was not found", id), nil)
	}
	if found.ClientID != client.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "You are not authorized to perform this action", nil)
	}
	return found, nil
}

// ListByFolder returns the caller's assets in a folder.
func (s *Service) ListByFolder(ctx context.Context, actor *account.User, folderUUID uuid.UUID) ([]Asset, error) {
	client, err := s.requireClient(ctx, actor)
	if err != nil {
		return nil, err
	}

	target, err := s.folders.FindByUUID(ctx, folderUUID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Folder with uuid %s was not found", folderUUID), nil)
	}
	if target.ClientID != client.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "You are not authorized to perform this action", nil)
	}
	return s.repo.ListByFolder(ctx, target.ID)
}

// Usage returns the caller's storage counter. A client that never uploaded
// gets a zero-valued row without one being persisted.
func (s *Service) Usage(ctx context.Context, actor *account.User) (*Usage, error) {
	client, err := s.requireClient(ctx, actor)
	if err != nil {
		return nil, err
	}

	usage, err := s.usages.Get(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		return &Usage{ClientID: client.ID}, nil
	}
	return usage, nil
}

func (s *Service) requireClient(ctx context.Context, actor *account.User) (*account.Client, error) {
	if actor == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "You must be authenticated to perform this action", nil)
	}
	client, err := s.clients.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "User Client not found", nil)
	}
	return client, nil
}

func contractError(ctx context.Context, reason ledger.Reason) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeContractError,
		fmt.Sprintf("Contract error: %s", reason),
		nil,
		map[string]any{"reason": string(reason)},
	)
}
