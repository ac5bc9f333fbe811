package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mazadcars/mazad-backend/internal/auctions"
	"github.com/mazadcars/mazad-backend/internal/catalogs"
	"github.com/mazadcars/mazad-backend/internal/users"
	"github.com/mazadcars/mazad-backend/internal/vehicles"
	pkgAuth "github.com/mazadcars/mazad-backend/pkg/auth"
	"github.com/mazadcars/mazad-backend/internal/bidding"
	"github.com/mazadcars/mazad-backend/pkg/config"
	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
	pkgredis "github.com/mazadcars/mazad-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *memStore) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = fmt.Sprint(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *memStore) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	if value, ok := m.values[key]; ok {
		cmd.SetVal(value)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *memStore) SetNX(ctx context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewBoolCmd(ctx)
	if _, held := m.values[key]; held {
		cmd.SetVal(false)
		return cmd
	}
	m.values[key] = fmt.Sprint(value)
	cmd.SetVal(true)
	return cmd
}

func (m *memStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

func (m *memStore) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func (m *memStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

type stubAuctionService struct {
	bidCalls int
}

func (s *stubAuctionService) Create(context.Context, auctions.CreateInput) (*models.Auction, error) {
	return &models.Auction{}, nil
}

func (s *stubAuctionService) PlaceBid(_ context.Context, input auctions.PlaceBidInput) (*auctions.BidResult, error) {
	s.bidCalls++
	return &auctions.BidResult{Amount: input.Amount, EndTime: time.Now().Add(time.Hour)}, nil
}

func (s *stubAuctionService) PayEntry(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *stubAuctionService) SetStatus(context.Context, uuid.UUID, enums.AuctionStatus) (*models.Auction, error) {
	return &models.Auction{}, nil
}

func (s *stubAuctionService) ExtendTime(context.Context, uuid.UUID, int) (*models.Auction, error) {
	return &models.Auction{}, nil
}

func (s *stubAuctionService) Get(context.Context, uuid.UUID) (*auctions.Detail, error) {
	return &auctions.Detail{}, nil
}

func (s *stubAuctionService) List(context.Context, []enums.AuctionStatus, pagination.Params) (*auctions.Page, error) {
	return &auctions.Page{Items: []models.Auction{}}, nil
}

func (s *stubAuctionService) ListBids(context.Context, uuid.UUID, pagination.Params) (*auctions.BidPage, error) {
	return &auctions.BidPage{Items: []models.Bid{}}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Create(context.Context, catalogs.CreateInput) (*models.Catalog, error) {
	return &models.Catalog{}, nil
}

func (stubCatalogService) Start(context.Context, uuid.UUID) (*models.Catalog, error) {
	return &models.Catalog{}, nil
}

func (stubCatalogService) AdvanceLot(context.Context, uuid.UUID, enums.LotOutcome) (*catalogs.AdvanceResult, error) {
	return &catalogs.AdvanceResult{}, nil
}

func (stubCatalogService) ExtendLot(context.Context, uuid.UUID, int) (*models.CatalogLot, error) {
	return &models.CatalogLot{}, nil
}

func (stubCatalogService) PlaceBid(_ context.Context, input catalogs.PlaceBidInput) (*catalogs.BidResult, error) {
	return &catalogs.BidResult{Amount: input.Amount}, nil
}

func (stubCatalogService) Get(context.Context, uuid.UUID) (*models.Catalog, error) {
	return &models.Catalog{}, nil
}

func (stubCatalogService) List(context.Context, []enums.CatalogStatus, pagination.Params) (*catalogs.Page, error) {
	return &catalogs.Page{Items: []models.Catalog{}}, nil
}

func (stubCatalogService) ListLotBids(context.Context, uuid.UUID, pagination.Params) (*catalogs.BidPage, error) {
	return &catalogs.BidPage{Items: []models.CatalogBid{}}, nil
}

type stubVehicleService struct{}

func (stubVehicleService) Create(context.Context, vehicles.CreateInput) (*models.Vehicle, error) {
	return &models.Vehicle{}, nil
}

func (stubVehicleService) Get(context.Context, uuid.UUID) (*models.Vehicle, error) {
	return &models.Vehicle{}, nil
}

type stubUserService struct{}

func (stubUserService) TierStatus(context.Context, uuid.UUID) (*users.TierStatus, error) {
	return &users.TierStatus{DepositBalance: 10_000, Tier: bidding.TierOf(10_000)}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "mazad-test",
			ExpirationMinutes: 30,
		},
	}
}

func newTestRouter(t *testing.T, auctionSvc auctions.Service) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled, Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		pkgredis.NewFromStore(newMemStore()),
		auctionSvc,
		stubCatalogService{},
		stubVehicleService{},
		stubUserService{},
		nil,
	)
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, resp.Code)
		}
		if env := resp.Header().Get("X-Mazad-Env"); env != "test" {
			t.Fatalf("missing env header, got %q", env)
		}
	}
}

func TestPublicListingsNeedNoToken(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/public/auctions?status=active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("public listing returned %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBidderRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auctions/"+uuid.NewString()+"/bids", strings.NewReader(`{"amount":5000}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestBidRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auctions/"+uuid.NewString()+"/bids", strings.NewReader(`{"amount":5000}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleBidder))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBidReplayReturnsStoredResponse(t *testing.T) {
	svc := &stubAuctionService{}
	router := newTestRouter(t, svc)

	token := mintToken(t, enums.RoleBidder)
	target := "/api/v1/auctions/" + uuid.NewString() + "/bids"

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"amount":5000}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "bid-1")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", first.Code, first.Body.String())
	}
	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("replay expected 201 got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body mismatch:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if svc.bidCalls != 1 {
		t.Fatalf("expected a single service call, got %d", svc.bidCalls)
	}
}

func TestOperatorRoutesRejectBidders(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/vehicles", strings.NewReader(`{"make":"Kia","model":"Sportage","year":2021,"mileage":1000}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleBidder))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/v1/vehicles", strings.NewReader(`{"make":"Kia","model":"Sportage","year":2021,"mileage":1000}`))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleOperator))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMyTier(t *testing.T) {
	router := newTestRouter(t, &stubAuctionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/tier", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleBidder))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data users.TierStatus `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.DepositBalance != 10_000 {
		t.Fatalf("unexpected deposit balance %d", envelope.Data.DepositBalance)
	}
}
