package folder

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/ledger"
	"github.com/veecerts/asset-api/internal/domain/pinning"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
	"github.com/veecerts/asset-api/utils/symbol"
)

// Repository defines folder persistence operations needed by the service.
// Create must insert the row with the caller-assigned ID.
type Repository interface {
	FindByUUID(ctx context.Context, id uuid.UUID) (*Folder, error)
	ListByClient(ctx context.Context, clientID int64) ([]Folder, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, folder *Folder) error
	UpdateNameDescription(ctx context.Context, id int64, name, description string) (*Folder, error)
}

// ClientStore resolves the caller's client row.
type ClientStore interface {
	FindByUserID(ctx context.Context, userID int64) (*account.Client, error)
}

// Service implements folder creation (pin logo, create collection) and the
// name/description update path.
type Service struct {
	repo    Repository
	clients ClientStore
	pinner  pinning.Pinner
	ledger  ledger.Service
	log     zerolog.Logger
}

func NewService(repo Repository, clients ClientStore, pinner pinning.Pinner, ledgerClient ledger.Service, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		pinner:  pinner,
		ledger:  ledgerClient,
		log:     log.With().Str("component", "folder-service").Logger(),
	}
}

// Upsert creates or renames a folder for the authenticated caller.
func (s *Service) Upsert(ctx context.Context, actor *account.User, params UpsertParams) (*Folder, error) {
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
			platformerrors.ErrorTypeNoActiveSubscription, "You do not currently have an active subscription", nil)
	}

	if params.FolderUUID != nil {
		return s.rename(ctx, client, params)
	}
	return s.create(ctx, client, params)
}

func (s *Service) rename(ctx context.Context, client *account.Client, params UpsertParams) (*Folder, error) {
	existing, err := s.repo.FindByUUID(ctx, *params.FolderUUID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Folder with uuid %s was not found", params.FolderUUID), nil)
	}
	if existing.ClientID != client.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "You are not authorized to perform this action", nil)
	}
	return s.repo.UpdateNameDescription(ctx, existing.ID, params.Name, params.Description)
}

// create pins the logo and creates the backing collection before inserting
// the row. The local primary key is the collection id the ledger returns.
func (s *Service) create(ctx context.Context, client *account.Client, params UpsertParams) (*Folder, error) {
	contentType := params.LogoContentType
	if contentType == "" {
		if len(params.Logo) == 0 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeInvalidContent, "Unable to verify image type", nil)
		}
		contentType = mimetype.Detect(params.Logo).String()
	}
	if !strings.HasPrefix(contentType, "image") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInvalidContent, "Please provide a valid image", nil)
	}

	logoHash, err := s.pinner.Pin(ctx, bytes.NewReader(params.Logo), params.LogoFilename)
	if err != nil {
		return nil, err
	}
	logoURL := s.pinner.PublicURL(logoHash)

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	sym := symbol.FormatID(uint64(count + 1))

	result, err := s.ledger.CreateCollection(ctx, params.Name, sym, params.Description, &logoURL)
	if err != nil {
		return nil, err
	}
	if result.Err != nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeContractError,
			fmt.Sprintf("Contract error: %s", *result.Err),
			nil,
			map[string]any{"reason": string(*result.Err)},
		)
	}

	created := &Folder{
		ID:          result.Ok.Collection.ID,
		UUID:        uuid.New(),
		ClientID:    client.ID,
		Name:        params.Name,
		Description: params.Description,
		LogoHash:    logoHash,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	s.log.Info().Str("folder", created.UUID.String()).Int64("collection", created.ID).Str("symbol", sym).Msg("folder created")
	return created, nil
}

// Get resolves a folder owned by the caller.
func (s *Service) Get(ctx context.Context, actor *account.User, id uuid.UUID) (*Folder, error) {
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
			fmt.Sprintf("Folder with uuid %s was not found", id), nil)
	}
	if found.ClientID != client.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "You are not authorized to perform this action", nil)
	}
	return found, nil
}

// List returns the caller's folders.
func (s *Service) List(ctx context.Context, actor *account.User) ([]Folder, error) {
	client, err := s.requireClient(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, client.ID)
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
			platformerrors.ErrorTypeNoActiveSubscription, "You do not currently have an active subscription", nil)
	}
	return client, nil
}
