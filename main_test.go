package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hairbook/config"
	"hairbook/database/docstore"
	"hairbook/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{
		JWTSecret:                 "test-secret",
		Timezone:                  "UTC",
		MaxRequestsPerMin:         1000,
		ReviewRequiresPastBooking: true,
	}

	a, err := newApp(appDeps{
		Store: docstore.NewMemoryStore(),
		Now:   func() time.Time { return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return &testServer{t: t, router: a.Router()}
}

func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func (s *testServer) signUp(email string, role models.Role) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/auth/sign-up", "", models.SignUpRequest{
		Email:     email,
		Password:  "secret123",
		Role:      string(role),
		FirstName: "Sam",
		LastName:  "Doe",
	})
	require.Equal(s.t, http.StatusCreated, code, body)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func nested(body map[string]any, key string) map[string]any {
	m, _ := body[key].(map[string]any)
	return m
}

func sundayWeek(hours ...string) []models.Weekday {
	week := make([]models.Weekday, models.DaysPerWeek)
	week[0] = models.Weekday{Open: true, Hours: hours}
	return week
}

func (s *testServer) createShop(token, name string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/owner/create-shop", token, models.ShopInput{
		Name: name,
		Week: sundayWeek("10:00", "11:00"),
	})
	require.Equal(s.t, http.StatusCreated, code, body)
	id, _ := nested(body, "shop")["id"].(string)
	require.NotEmpty(s.t, id)
	return id
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)

	ownerA := s.signUp("a@shop.test", models.RoleOwner)
	ownerB := s.signUp("b@shop.test", models.RoleOwner)
	customer1 := s.signUp("one@mail.test", models.RoleCustomer)
	customer2 := s.signUp("two@mail.test", models.RoleCustomer)

	shopA := s.createShop(ownerA, "Fade Factory")
	s.createShop(ownerB, "Clip Joint")

	code, body := s.do(http.MethodPost, "/owner/create-service?shopId="+shopA, ownerA,
		models.ServiceInput{Name: "Cut", Price: 20, Duration: 30})
	require.Equal(t, http.StatusCreated, code, body)
	serviceID, _ := nested(body, "service")["id"].(string)
	require.NotEmpty(t, serviceID)

	req := models.BookingRequest{ShopID: shopA, ServiceID: serviceID, Date: "01-06-2025 10:00"}

	code, body = s.do(http.MethodPost, "/booking/book-haircut", customer1, req)
	require.Equal(t, http.StatusOK, code, body)
	bookingID, _ := nested(body, "booking")["id"].(string)
	require.NotEmpty(t, bookingID)

	code, _ = s.do(http.MethodPost, "/booking/book-haircut", customer2, req)
	assert.Equal(t, http.StatusBadRequest, code)

	req.Date = "01-06-2025 11:00"
	code, body = s.do(http.MethodPut, "/booking/update-booking?bookingId="+bookingID, customer1, req)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "01-06-2025 11:00", nested(body, "booking")["date"])

	// The freed hour can be taken again.
	req.Date = "01-06-2025 10:00"
	code, body = s.do(http.MethodPost, "/booking/book-haircut", customer2, req)
	assert.Equal(t, http.StatusOK, code, body)

	code, _ = s.do(http.MethodDelete, "/owner/delete-booking?shopId="+shopA+"&bookingId="+bookingID, ownerB, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodDelete, "/booking/delete-booking?bookingId="+bookingID, customer2, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodDelete, "/owner/delete-booking?shopId="+shopA+"&bookingId="+bookingID, ownerA, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRoleAndTokenChecks(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp("owner@shop.test", models.RoleOwner)
	customer := s.signUp("cust@mail.test", models.RoleCustomer)

	code, _ := s.do(http.MethodGet, "/booking/user-bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/booking/user-bookings", owner, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/owner/get-my-shops", customer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/shared/get-all-shops", customer, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/auth/sign-out", customer, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/shared/get-all-shops", customer, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: "CUST@mail.test", Password: "secret123"})
	require.Equal(t, http.StatusOK, code, body)
	assert.NotEmpty(t, body["accessToken"])
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hi, I'm hairbook", body["message"])
}
