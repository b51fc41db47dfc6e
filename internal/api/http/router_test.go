package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/security"
	"retail-pos-backend/internal/service"
)

// MockEmployeeService
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, input service.CreateEmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, id int64, input service.UpdateEmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) DeactivateEmployee(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCouponService
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}
func (m *MockCouponService) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Coupon), args.Error(1)
}
func (m *MockCouponService) UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}
func (m *MockCouponService) DeactivateCoupon(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.Employee, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Employee), args.Error(2)
}

// MockCustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, input service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ReturnRental(ctx context.Context, rentalID int64, returnItems []service.LineInput) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, returnItems)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, filters repository.RentalFilters) ([]domain.Rental, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetOutstandingRentals(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) CheckOverdueRentals(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func testEmployee(position domain.Position) *domain.Employee {
	return &domain.Employee{
		ID:       1,
		Username: "alice",
		Name:     "Alice",
		Position: position,
		IsActive: true,
	}
}

// newTestRouter wires a real token manager with mocked services so requests
// can carry genuine bearer tokens.
func newTestRouter(t *testing.T, employee *domain.Employee, svcs Services) (http.Handler, string) {
	t.Helper()
	svcs.Tokens = security.NewTokenManager("test-secret-long-enough-for-hs256-use", time.Hour)

	if svcs.Employee == nil {
		employeeSvc := new(MockEmployeeService)
		if employee != nil {
			employeeSvc.On("GetEmployee", mock.Anything, employee.ID).Return(employee, nil)
		}
		svcs.Employee = employeeSvc
	}

	router := NewRouter(svcs)

	var token string
	if employee != nil {
		var err error
		token, err = svcs.Tokens.Generate(employee)
		assert.NoError(t, err)
	}
	return router, token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthenticationRequired(t *testing.T) {
	router, _ := newTestRouter(t, nil, Services{})

	t.Run("Missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRoleGating(t *testing.T) {
	t.Run("Cashier cannot delete coupons", func(t *testing.T) {
		couponSvc := new(MockCouponService)
		router, token := newTestRouter(t, testEmployee(domain.PositionCashier), Services{Coupon: couponSvc})

		req := httptest.NewRequest(http.MethodDelete, "/api/coupons/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		couponSvc.AssertNotCalled(t, "DeactivateCoupon", mock.Anything, mock.Anything)
	})

	t.Run("Admin can delete coupons", func(t *testing.T) {
		couponSvc := new(MockCouponService)
		couponSvc.On("DeactivateCoupon", mock.Anything, int64(7)).Return(nil)
		router, token := newTestRouter(t, testEmployee(domain.PositionAdmin), Services{Coupon: couponSvc})

		req := httptest.NewRequest(http.MethodDelete, "/api/coupons/7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCouponLookupStatuses(t *testing.T) {
	employee := testEmployee(domain.PositionCashier)

	t.Run("Unknown code is 404", func(t *testing.T) {
		couponSvc := new(MockCouponService)
		couponSvc.On("GetCouponByCode", mock.Anything, "NOPE").Return(nil, service.ErrCouponNotFound)
		router, token := newTestRouter(t, employee, Services{Coupon: couponSvc})

		req := httptest.NewRequest(http.MethodGet, "/api/coupons/NOPE", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Expired code is 400", func(t *testing.T) {
		couponSvc := new(MockCouponService)
		expired := &domain.Coupon{ID: 7, CouponCode: "OLD", ExpiryDate: time.Now().Add(-time.Hour), IsActive: true}
		couponSvc.On("GetCouponByCode", mock.Anything, "OLD").Return(expired, service.ErrCouponInvalid)
		router, token := newTestRouter(t, employee, Services{Coupon: couponSvc})

		req := httptest.NewRequest(http.MethodGet, "/api/coupons/OLD", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func postLogin(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginStatuses(t *testing.T) {
	t.Run("Bad credentials are 401", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, "alice", "wrong").Return("", nil, service.ErrInvalidCredentials)
		router, _ := newTestRouter(t, nil, Services{Auth: authSvc})

		rec := postLogin(router, `{"username":"alice","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Deactivated account is 403", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, "alice", "hunter2").Return("", nil, service.ErrEmployeeInactive)
		router, _ := newTestRouter(t, nil, Services{Auth: authSvc})

		rec := postLogin(router, `{"username":"alice","password":"hunter2"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLoginResponseShape(t *testing.T) {
	authSvc := new(MockAuthService)
	employee := testEmployee(domain.PositionCashier)
	authSvc.On("Login", mock.Anything, "alice", "hunter2").Return("signed.jwt.token", employee, nil)
	router, _ := newTestRouter(t, nil, Services{Auth: authSvc})

	rec := postLogin(router, `{"username":"alice","password":"hunter2"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The client binds to "user" with just the identity fields; no hash,
	// activity flag, or timestamps leak through.
	assert.JSONEq(t, `{
		"token": "signed.jwt.token",
		"user": {"id": 1, "username": "alice", "name": "Alice", "position": "cashier"}
	}`, rec.Body.String())
}

func TestReturnRentalWithoutBody(t *testing.T) {
	closed := &domain.Rental{ID: 5, RentalID: "RENTAL-AB12CD34", Status: domain.RentalStatusReturned}
	rentalSvc := new(MockRentalService)
	rentalSvc.On("ReturnRental", mock.Anything, int64(5), mock.MatchedBy(func(items []service.LineInput) bool {
		return len(items) == 0
	})).Return(closed, nil)
	router, token := newTestRouter(t, testEmployee(domain.PositionCashier), Services{Rental: rentalSvc})

	// No body at all: the register sends nothing when every item comes back.
	req := httptest.NewRequest(http.MethodPost, "/api/rentals/5/return", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	rentalSvc.AssertExpectations(t)
}

func TestCustomerSearchMiss(t *testing.T) {
	customerSvc := new(MockCustomerService)
	customerSvc.On("FindByPhoneNumber", mock.Anything, "555-0199").Return(nil, service.ErrCustomerNotFound)
	router, token := newTestRouter(t, testEmployee(domain.PositionCashier), Services{Customer: customerSvc})

	req := httptest.NewRequest(http.MethodGet, "/api/customers/search?phoneNumber=555-0199", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "customer not found", "customer": null}`, rec.Body.String())
}
