package subscription

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// PackageRepository defines persistence operations for subscription packages.
type PackageRepository interface {
	FindByUUID(ctx context.Context, id uuid.UUID) (*Package, error)
	List(ctx context.Context) ([]Package, error)
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, id int64, patch PackagePatch) (*Package, error)
}

// ClientRepository defines the client persistence operations the service needs.
type ClientRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*account.Client, error)
	Create(ctx context.Context, client *account.Client) error
	SetActiveSubscription(ctx context.Context, clientID, subscriptionID int64) error
}

// SubscriptionRepository persists package purchases.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
}

// Service manages subscription packages and client subscriptions.
type Service struct {
	packages      PackageRepository
	clients       ClientRepository
	subscriptions SubscriptionRepository
	subTTL        time.Duration
	log           zerolog.Logger
}

func NewService(packages PackageRepository, clients ClientRepository, subscriptions SubscriptionRepository, subTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		packages:      packages,
		clients:       clients,
		subscriptions: subscriptions,
		subTTL:        subTTL,
		log:           log.With().Str("component", "subscription-service").Logger(),
	}
}

// UpsertPackage creates a package or, when a UUID is supplied, overwrites the
// mutable fields of the existing one.
func (s *Service) UpsertPackage(ctx context.Context, params UpsertPackageParams) (*Package, error) {
	if params.UUID != nil {
		existing, err := s.packages.FindByUUID(ctx, *params.UUID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("SubscriptionPackage with id %s not found", params.UUID), nil)
		}
		return s.packages.Update(ctx, existing.ID, PackagePatch{
			Name:               params.Name,
			Price:              params.Price,
			StorageCapacityMb:  params.StorageCapacityMb,
			MonthlyRequests:    params.MonthlyRequests,
			MaxAllowedSessions: params.MaxAllowedSessions,
		})
	}

	pkg := &Package{
		UUID:               uuid.New(),
		Name:               params.Name,
		Price:              params.Price,
		StorageCapacityMb:  params.StorageCapacityMb,
		MonthlyRequests:    params.MonthlyRequests,
		MaxAllowedSessions: params.MaxAllowedSessions,
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// GetPackage resolves a package by its public id.
func (s *Service) GetPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	pkg, err := s.packages.FindByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("SubscriptionPackage with id %s not found", id), nil)
	}
	return pkg, nil
}

// ListPackages returns all packages.
func (s *Service) ListPackages(ctx context.Context) ([]Package, error) {
	return s.packages.List(ctx)
}

// Subscribe purchases a package for the caller. The client row is created on
// first purchase together with an API secret; the plaintext secret is
// returned exactly once, only its bcrypt hash is stored.
func (s *Service) Subscribe(ctx context.Context, actor *account.User, packageUUID uuid.UUID) (*Subscription, string, error) {
	if actor == nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "You must be authenticated to perform this action", nil)
	}

	pkg, err := s.packages.FindByUUID(ctx, packageUUID)
	if err != nil {
		return nil, "", err
	}
	if pkg == nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("SubscriptionPackage with id %s not found", packageUUID), nil)
	}

	apiSecret := ""
	client, err := s.clients.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		secret, hash, err := newAPISecret()
		if err != nil {
			return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeInternal, "failed to generate api secret", err)
		}
		client = &account.Client{
			UUID:          uuid.New(),
			UserID:        actor.ID,
			APISecretHash: hash,
		}
		if err := s.clients.Create(ctx, client); err != nil {
			return nil, "", err
		}
		apiSecret = secret
	}

	sub := &Subscription{
		UUID:      uuid.New(),
		ClientID:  client.ID,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		ExpiresAt: time.Now().Add(s.subTTL),
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, "", err
	}
	if err := s.clients.SetActiveSubscription(ctx, client.ID, sub.ID); err != nil {
		return nil, "", err
	}

	s.log.Info().Str("client", client.UUID.String()).Str("package", pkg.UUID.String()).Msg("client subscribed")
	return sub, apiSecret, nil
}

func newAPISecret() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	secret := hex.EncodeToString(raw)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return secret, string(hash), nil
}
