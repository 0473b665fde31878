package subscription_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

type mockPackages struct {
	FindByUUIDFunc func(ctx context.Context, id uuid.UUID) (*subscription.Package, error)

	created   *subscription.Package
	updatedID int64
	lastPatch subscription.PackagePatch
}

func (m *mockPackages) FindByUUID(ctx context.Context, id uuid.UUID) (*subscription.Package, error) {
	if m.FindByUUIDFunc != nil {
		return m.FindByUUIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPackages) List(ctx context.Context) ([]subscription.Package, error) {
	return nil, nil
}

func (m *mockPackages) Create(ctx context.Context, pkg *subscription.Package) error {
	pkg.ID = 1
	m.created = pkg
	return nil
}

func (m *mockPackages) Update(ctx context.Context, id int64, patch subscription.PackagePatch) (*subscription.Package, error) {
	m.updatedID = id
	m.lastPatch = patch
	return &subscription.Package{ID: id, Name: patch.Name, Price: patch.Price, StorageCapacityMb: patch.StorageCapacityMb}, nil
}

type mockClients struct {
	clients []*account.Client

	activeSubs map[int64]int64
}

func (m *mockClients) FindByUserID(ctx context.Context, userID int64) (*account.Client, error) {
	for _, c := range m.clients {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockClients) Create(ctx context.Context, client *account.Client) error {
	client.ID = int64(len(m.clients) + 1)
	m.clients = append(m.clients, client)
	return nil
}

func (m *mockClients) SetActiveSubscription(ctx context.Context, clientID, subscriptionID int64) error {
	if m.activeSubs == nil {
		m.activeSubs = map[int64]int64{}
	}
	m.activeSubs[clientID] = subscriptionID
	return nil
}

type mockSubscriptions struct {
	created []*subscription.Subscription
}

func (m *mockSubscriptions) Create(ctx context.Context, sub *subscription.Subscription) error {
	sub.ID = int64(len(m.created) + 1)
	m.created = append(m.created, sub)
	return nil
}

type fixture struct {
	packages *mockPackages
	clients  *mockClients
	subs     *mockSubscriptions
	service  *subscription.Service
	user     *account.User
	pkgUUID  uuid.UUID
}

func newFixture() *fixture {
	pkgUUID := uuid.New()
	f := &fixture{
		packages: &mockPackages{
			FindByUUIDFunc: func(ctx context.Context, id uuid.UUID) (*subscription.Package, error) {
				if id == pkgUUID {
					return &subscription.Package{ID: 3, UUID: pkgUUID, Name: "starter", Price: 9.99, StorageCapacityMb: 100}, nil
				}
				return nil, nil
			},
		},
		clients: &mockClients{},
		subs:    &mockSubscriptions{},
		user:    &account.User{ID: 10, Email: "user@example.com"},
		pkgUUID: pkgUUID,
	}
	f.service = subscription.NewService(f.packages, f.clients, f.subs, 30*24*time.Hour, zerolog.Nop())
	return f
}

var hexSecret = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSubscribeFirstPurchaseCreatesClientWithSecret(t *testing.T) {
	f := newFixture()

	sub, secret, err := f.service.Subscribe(context.Background(), f.user, f.pkgUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hexSecret.MatchString(secret) {
		t.Fatalf("expected 64 hex chars of api secret, got %q", secret)
	}
	if len(f.clients.clients) != 1 {
		t.Fatalf("expected one client created, got %d", len(f.clients.clients))
	}
	client := f.clients.clients[0]
	if client.APISecretHash == secret {
		t.Fatal("plaintext secret must not be stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(client.APISecretHash), []byte(secret)) != nil {
		t.Fatal("stored hash does not verify the returned secret")
	}
	if sub.PackageID != 3 || sub.Amount != 9.99 {
		t.Fatalf("unexpected subscription %+v", sub)
	}
	if f.clients.activeSubs[client.ID] != sub.ID {
		t.Fatalf("active subscription pointer not moved: %v", f.clients.activeSubs)
	}
}

func TestSubscribeAgainReturnsNoSecret(t *testing.T) {
	f := newFixture()

	_, first, err := f.service.Subscribe(context.Background(), f.user, f.pkgUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" {
		t.Fatal("first purchase must return the secret")
	}

	sub, second, err := f.service.Subscribe(context.Background(), f.user, f.pkgUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second != "" {
		t.Fatalf("secret must be returned exactly once, got %q", second)
	}
	if len(f.clients.clients) != 1 {
		t.Fatalf("second purchase must reuse the client, got %d rows", len(f.clients.clients))
	}
	if f.clients.activeSubs[f.clients.clients[0].ID] != sub.ID {
		t.Fatal("active subscription must point at the newest purchase")
	}
}

func TestSubscribeUnknownPackage(t *testing.T) {
	f := newFixture()

	_, _, err := f.service.Subscribe(context.Background(), f.user, uuid.New())

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSubscribeRequiresAuthentication(t *testing.T) {
	f := newFixture()

	_, _, err := f.service.Subscribe(context.Background(), nil, f.pkgUUID)

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestUpsertPackageCreate(t *testing.T) {
	f := newFixture()

	pkg, err := f.service.UpsertPackage(context.Background(), subscription.UpsertPackageParams{
		Name:               "pro",
		Price:              29.99,
		StorageCapacityMb:  1000,
		MonthlyRequests:    100000,
		MaxAllowedSessions: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pkg.UUID == uuid.Nil {
		t.Fatal("created package must get a public id")
	}
	if f.packages.created == nil || f.packages.created.StorageCapacityMb != 1000 {
		t.Fatalf("package was not persisted: %+v", f.packages.created)
	}
}

func TestUpsertPackageUpdate(t *testing.T) {
	f := newFixture()
	id := f.pkgUUID

	updated, err := f.service.UpsertPackage(context.Background(), subscription.UpsertPackageParams{
		UUID:              &id,
		Name:              "starter v2",
		Price:             11.99,
		StorageCapacityMb: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.packages.updatedID != 3 {
		t.Fatalf("expected update of package 3, got %d", f.packages.updatedID)
	}
	if updated.Name != "starter v2" || updated.StorageCapacityMb != 200 {
		t.Fatalf("unexpected updated package %+v", updated)
	}
}

func TestUpsertPackageUpdateUnknown(t *testing.T) {
	f := newFixture()
	id := uuid.New()

	_, err := f.service.UpsertPackage(context.Background(), subscription.UpsertPackageParams{UUID: &id, Name: "ghost"})

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Type != platformerrors.ErrorTypeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
	if platformErr.Message != "SubscriptionPackage with id "+id.String()+" not found" {
		t.Fatalf("unexpected message %q", platformErr.Message)
	}
}
