package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "collectrent/internal/api/http"
	"collectrent/internal/domain"
	"collectrent/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret-key-at-least-32-characters"

const testTick = domain.Tick(7)

// MockAssetOps
type MockAssetOps struct {
	mock.Mock
}

func (m *MockAssetOps) MintAsset(ctx context.Context, owner uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetOps) BurnAsset(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) error {
	args := m.Called(ctx, caller, assetID)
	return args.Error(0)
}
func (m *MockAssetOps) SetRentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, terms domain.TermsTemplate) (*domain.Asset, error) {
	args := m.Called(ctx, caller, assetID, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetOps) SetUnrentable(ctx context.Context, caller uuid.UUID, assetID domain.AssetID) (*domain.Asset, error) {
	args := m.Called(ctx, caller, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetOps) GetAsset(ctx context.Context, assetID domain.AssetID) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetOps) ListAssetsByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Asset, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetOps) ListRentableAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

// MockRentalOps
type MockRentalOps struct {
	mock.Mock
}

func (m *MockRentalOps) Rent(ctx context.Context, lessee uuid.UUID, assetID domain.AssetID, periodLength domain.Tick, numPeriods uint32, autoRenew bool) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, lessee, assetID, periodLength, numPeriods, autoRenew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}
func (m *MockRentalOps) ExtendRent(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, additionalPeriods uint32) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, caller, assetID, additionalPeriods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}
func (m *MockRentalOps) SetRecurring(ctx context.Context, caller uuid.UUID, assetID domain.AssetID, autoRenew bool) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, caller, assetID, autoRenew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}
func (m *MockRentalOps) GetAgreement(ctx context.Context, assetID domain.AssetID) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}
func (m *MockRentalOps) ListRentalsByLessee(ctx context.Context, lessee uuid.UUID) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx, lessee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

// MockShareOps
type MockShareOps struct {
	mock.Mock
}

func (m *MockShareOps) EquipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID, value decimal.Decimal) (*domain.Share, error) {
	args := m.Called(ctx, caller, holder, assetID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Share), args.Error(1)
}
func (m *MockShareOps) UnequipShare(ctx context.Context, caller, holder uuid.UUID, assetID domain.AssetID) error {
	args := m.Called(ctx, caller, holder, assetID)
	return args.Error(0)
}
func (m *MockShareOps) ListShares(ctx context.Context, assetID domain.AssetID) ([]domain.Share, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Share), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateAccount(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockGateway) Account(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockGateway) Deposit(ctx context.Context, id uuid.UUID, amount domain.Balance, tick domain.Tick) error {
	args := m.Called(ctx, id, amount, tick)
	return args.Error(0)
}
func (m *MockGateway) Transfer(ctx context.Context, from, to uuid.UUID, amount domain.Balance, tick domain.Tick, memo string) error {
	args := m.Called(ctx, from, to, amount, tick, memo)
	return args.Error(0)
}
func (m *MockGateway) ListTransactions(ctx context.Context, account uuid.UUID) ([]domain.Transaction, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockHistory
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) History(ctx context.Context, assetID domain.AssetID) ([]domain.Event, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

type fixedClock domain.Tick

func (c fixedClock) CurrentTick() domain.Tick { return domain.Tick(c) }

// testServer drives the full router, middleware included, against
// mocked engine and ledger backends.
type testServer struct {
	assets  *MockAssetOps
	rentals *MockRentalOps
	shares  *MockShareOps
	bank    *MockGateway
	history *MockHistory
	tokens  security.TokenManager
	router  *mux.Router
}

func newTestServer() *testServer {
	return newTestServerWithLimiter(rate.NewLimiter(rate.Inf, 0))
}

func newTestServerWithLimiter(limiter *rate.Limiter) *testServer {
	s := &testServer{
		assets:  new(MockAssetOps),
		rentals: new(MockRentalOps),
		shares:  new(MockShareOps),
		bank:    new(MockGateway),
		history: new(MockHistory),
		tokens:  security.NewTokenManager(testSecret, time.Hour),
	}
	s.router = httpapi.NewRouter(
		httpapi.NewSystemHandler(fixedClock(testTick)),
		httpapi.NewAccountHandler(s.bank, s.tokens, fixedClock(testTick)),
		httpapi.NewAssetHandler(s.assets),
		httpapi.NewRentalHandler(s.rentals),
		httpapi.NewShareHandler(s.shares),
		httpapi.NewHistoryHandler(s.history),
		httpapi.NewAuthMiddleware(s.tokens),
		limiter,
	)
	return s
}

func (s *testServer) tokenFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(id, "")
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("error marshaling request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	return s.doRaw(t, method, path, token, reader)
}

func (s *testServer) doRaw(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("error decoding response %q: %v", rec.Body.String(), err)
	}
}
