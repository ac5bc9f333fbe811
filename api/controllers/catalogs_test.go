package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/internal/catalogs"
	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

type testCatalogService struct {
	createFn   func(ctx context.Context, input catalogs.CreateInput) (*models.Catalog, error)
	advanceFn  func(ctx context.Context, catalogID uuid.UUID, outcome enums.LotOutcome) (*catalogs.AdvanceResult, error)
	placeBidFn func(ctx context.Context, input catalogs.PlaceBidInput) (*catalogs.BidResult, error)
}

func (s *testCatalogService) Create(ctx context.Context, input catalogs.CreateInput) (*models.Catalog, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &models.Catalog{}, nil
}

func (s *testCatalogService) Start(context.Context, uuid.UUID) (*models.Catalog, error) {
	return &models.Catalog{}, nil
}

func (s *testCatalogService) AdvanceLot(ctx context.Context, catalogID uuid.UUID, outcome enums.LotOutcome) (*catalogs.AdvanceResult, error) {
	if s.advanceFn != nil {
		return s.advanceFn(ctx, catalogID, outcome)
	}
	return &catalogs.AdvanceResult{}, nil
}

func (s *testCatalogService) ExtendLot(context.Context, uuid.UUID, int) (*models.CatalogLot, error) {
	return &models.CatalogLot{}, nil
}

func (s *testCatalogService) PlaceBid(ctx context.Context, input catalogs.PlaceBidInput) (*catalogs.BidResult, error) {
	if s.placeBidFn != nil {
		return s.placeBidFn(ctx, input)
	}
	return &catalogs.BidResult{Amount: input.Amount}, nil
}

func (s *testCatalogService) Get(context.Context, uuid.UUID) (*models.Catalog, error) {
	return &models.Catalog{}, nil
}

func (s *testCatalogService) List(context.Context, []enums.CatalogStatus, pagination.Params) (*catalogs.Page, error) {
	return &catalogs.Page{}, nil
}

func (s *testCatalogService) ListLotBids(context.Context, uuid.UUID, pagination.Params) (*catalogs.BidPage, error) {
	return &catalogs.BidPage{}, nil
}

func TestCreateCatalogMapsLots(t *testing.T) {
	firstVehicle := uuid.New()
	secondVehicle := uuid.New()
	var got catalogs.CreateInput
	svc := &testCatalogService{
		createFn: func(ctx context.Context, input catalogs.CreateInput) (*models.Catalog, error) {
			got = input
			return &models.Catalog{}, nil
		},
	}

	body := `{
		"title": "Tuesday Session",
		"scheduled_at": "2026-09-01T18:00:00Z",
		"bid_increment": 500,
		"lots": [
			{"vehicle_id": "` + firstVehicle.String() + `", "starting_price": 20000},
			{"vehicle_id": "` + secondVehicle.String() + `", "starting_price": 35000}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalogs", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateCatalog(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.BidIncrement != 500 {
		t.Fatalf("unexpected increment %d", got.BidIncrement)
	}
	if len(got.Lots) != 2 {
		t.Fatalf("expected 2 lots got %d", len(got.Lots))
	}
	if got.Lots[0].VehicleID != firstVehicle || got.Lots[1].VehicleID != secondVehicle {
		t.Fatalf("lot order not preserved: %+v", got.Lots)
	}
}

func TestCreateCatalogRequiresLots(t *testing.T) {
	body := `{"title":"Empty","scheduled_at":"2026-09-01T18:00:00Z","bid_increment":500,"lots":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalogs", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateCatalog(&testCatalogService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdvanceCatalogLotParsesOutcome(t *testing.T) {
	catalogID := uuid.New()
	var got enums.LotOutcome
	svc := &testCatalogService{
		advanceFn: func(ctx context.Context, id uuid.UUID, outcome enums.LotOutcome) (*catalogs.AdvanceResult, error) {
			got = outcome
			return &catalogs.AdvanceResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalogs/"+catalogID.String()+"/advance", strings.NewReader(`{"outcome":"sold"}`))
	req = addRouteParam(req, "catalogId", catalogID.String())
	resp := httptest.NewRecorder()
	AdvanceCatalogLot(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got != enums.LotOutcomeSold {
		t.Fatalf("unexpected outcome %s", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalogs/"+catalogID.String()+"/advance", strings.NewReader(`{"outcome":"maybe"}`))
	req = addRouteParam(req, "catalogId", catalogID.String())
	resp = httptest.NewRecorder()
	AdvanceCatalogLot(svc, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPlaceLotBidRequiresIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalogs/lots/"+uuid.NewString()+"/bids", strings.NewReader(`{"amount":100}`))
	req = addRouteParam(req, "lotId", uuid.NewString())
	resp := httptest.NewRecorder()
	PlaceLotBid(&testCatalogService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPlaceLotBidSuccess(t *testing.T) {
	lotID := uuid.New()
	bidderID := uuid.New()
	svc := &testCatalogService{
		placeBidFn: func(ctx context.Context, input catalogs.PlaceBidInput) (*catalogs.BidResult, error) {
			if input.LotID != lotID || input.BidderID != bidderID {
				t.Fatalf("unexpected input %+v", input)
			}
			return &catalogs.BidResult{Amount: input.Amount}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalogs/lots/"+lotID.String()+"/bids", strings.NewReader(`{"amount":20500}`))
	req = asBidder(req, bidderID)
	req = addRouteParam(req, "lotId", lotID.String())
	resp := httptest.NewRecorder()
	PlaceLotBid(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}
