package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"car-rental/pkg/auth"
	"car-rental/pkg/config"
	"car-rental/pkg/email"
	"car-rental/pkg/model"
	"car-rental/pkg/redis"
	"car-rental/pkg/storage"
	rentalRepo "car-rental/service-api/internal/repository/rental"
	requestRepo "car-rental/service-api/internal/repository/request"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "owner@example.com"
	adminPassword = "correct horse battery staple"
)

type testServer struct {
	router *gin.Engine
	mail   *email.NoOpProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })

	store, err := storage.NewLocalProvider(t.TempDir(), "http://localhost:8080/api/v1/admin/files")
	require.NoError(t, err)

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:       "0",
		JWTSecret:  "jwt-secret",
		LinkSecret: "link-secret",
		App:        config.AppConfig{Name: "Car Rental", BaseURL: "https://rent.example.com"},
		Admin:      config.AdminConfig{Email: adminEmail, PasswordHash: hash},
		RateLimit:  config.RateLimitConfig{Requests: 2, Window: time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://rent.example.com"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}

	mail := email.NewNoOpProvider("silent")
	server, err := newAppServer(cfg, dependencies{
		requestRepo: requestRepo.NewMemoryRepository(),
		rentalRepo:  rentalRepo.NewMemoryRepository(),
		redis:       client,
		storage:     store,
		email:       mail,
	})
	require.NoError(t, err)

	return &testServer{router: server.RegisterHandlers(), mail: mail}
}

func (s *testServer) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) multipart(t *testing.T, target string, fields map[string]string, files map[string][2]string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, file := range files {
		part, err := mw.CreateFormFile(field, file[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(file[1]))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/admin/login", model.LoginRequest{Email: adminEmail, Password: adminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

// linkTarget turns an emailed link into the API route that serves it
func linkTarget(t *testing.T, link string) string {
	t.Helper()

	u, err := url.Parse(link)
	require.NoError(t, err)
	return "/api/v1/links" + u.Path + "?" + u.RawQuery
}

func emailedLink(t *testing.T, mail *email.NoOpProvider, template, route string) string {
	t.Helper()

	pattern := regexp.MustCompile(`https://rent\.example\.com/` + regexp.QuoteMeta(route) + `\?t=[A-Za-z0-9_.\-]+`)
	sent := mail.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].Template != template {
			continue
		}
		if link := pattern.FindString(sent[i].Body.Text); link != "" {
			return link
		}
	}
	t.Fatalf("no %s link in %s emails", route, template)
	return ""
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     any
		wantCode int
	}{
		{name: "valid", body: model.LoginRequest{Email: adminEmail, Password: adminPassword}, wantCode: http.StatusOK},
		{name: "wrong password", body: model.LoginRequest{Email: adminEmail, Password: "nope"}, wantCode: http.StatusUnauthorized},
		{name: "malformed", body: map[string]string{"email": "not-an-email"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/admin/login", tt.body, "")
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/v1/admin/requests", "/api/v1/admin/rentals", "/api/v1/admin/me"} {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, target, nil, "").Code)
			assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, target, nil, "forged").Code)
		})
	}

	token := s.login(t)
	w := s.do(t, http.MethodGet, "/api/v1/admin/me", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminEmail, decode(t, w)["email"])

	// a logged out session is refused
	w = s.do(t, http.MethodPost, "/api/v1/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/admin/me", nil, token).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/admin/me", nil, s.login(t)).Code)
}

func TestRequestForm_RateLimited(t *testing.T) {
	s := newTestServer(t)

	req := model.CreateRentalRequestRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-05",
	}

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/api/v1/requests", req, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodPost, "/api/v1/requests", req, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// admins see both stored requests
	list := s.do(t, http.MethodGet, "/api/v1/admin/requests", nil, s.login(t))
	require.Equal(t, http.StatusOK, list.Code)
	assert.EqualValues(t, 2, decode(t, list)["total_count"])
}

func TestRequestForm_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/requests", map[string]string{"name": "Jane"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["error"])
}

func TestRentalWorkflow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	// admin creates the draft
	w := s.do(t, http.MethodPost, "/api/v1/admin/rentals", model.CreateRentalRequest{
		VIN:           "1HGCM82633A004352",
		Make:          "Honda",
		Model:         "Accord",
		Color:         "Blue",
		CustomerEmail: "jane@example.com",
		CostPerDay:    "$45",
		StartDate:     "2024-06-01",
		EndDate:       "2024-06-05",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.CreateRentalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	folder := created.Rental.FolderID
	draftTarget := linkTarget(t, created.CustomerInfoLink)

	// the customer opens the link
	w = s.do(t, http.MethodGet, draftTarget, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	preview := decode(t, w)
	assert.Equal(t, "Blue Honda Accord", preview["vehicle"])

	// a draft link does not open the pickup page
	w = s.do(t, http.MethodGet, strings.Replace(draftTarget, "customer-info", "pickup-instructions", 1), nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "invalid_phase", decode(t, w)["error"])

	// tampered token
	w = s.do(t, http.MethodGet, "/api/v1/links/customer-info?t=AAAA.BBBB.CCCC", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid link", decode(t, w)["message"])

	// customer packet with a photo
	packet := `{"renter":{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","licenseNumber":"D1234567"},` +
		`"insurance":{"company":"Acme Mutual","policyNumber":"P-42"},"agreedToTerms":true}`
	w = s.multipart(t, draftTarget, map[string]string{"packet": packet}, map[string][2]string{
		model.PhotoLicenseFront: {"front.jpg", "jpeg bytes"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// admin pickup instructions
	pickup := linkTarget(t, emailedLink(t, s.mail, email.TemplateAdminLinks, "pickup-instructions"))
	w = s.do(t, http.MethodPost, pickup, model.Instructions{Address: "1 Main St", Time: "9am"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, pickup, map[string]string{"time": "9am"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// renter records the pickup mileage
	out := linkTarget(t, emailedLink(t, s.mail, email.TemplatePickupInstructions, "mileage-out"))
	w = s.multipart(t, out, map[string]string{"mileage": "1200", "fuelLevel": "full"}, map[string][2]string{
		"photo": {"odometer.png", "png bytes"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.multipart(t, out, map[string]string{"mileage": "1200", "fuelLevel": "half"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the out link cannot be replayed against the mileage-in page
	w = s.do(t, http.MethodGet, strings.Replace(out, "mileage-out", "mileage-in", 1), nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// renter uploads the signed contract
	signed := linkTarget(t, emailedLink(t, s.mail, email.TemplateContractReady, "signed-contract"))
	w = s.multipart(t, signed, nil, map[string][2]string{"contract": {"signed.pdf", "%PDF-1.4"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.multipart(t, signed, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// admin reviews the folder
	w = s.do(t, http.MethodGet, "/api/v1/admin/rentals/"+folder, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var detail model.RentalDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, model.RentalStatusOut, detail.Rental.Status)
	assert.Len(t, detail.Documents, 4)
	assert.Len(t, detail.Events, 5)

	w = s.do(t, http.MethodGet, "/api/v1/admin/files/"+folder+"/signed-contract.pdf", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/admin/files/"+folder+"/missing.pdf", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/rentals/unknown-folder", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRental_UnusableVIN(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/v1/admin/rentals", model.CreateRentalRequest{
		VIN:           "1HGCM82633A00435O",
		Make:          "Honda",
		Model:         "Accord",
		CustomerEmail: "jane@example.com",
		CostPerDay:    "$45",
		StartDate:     "2024-06-01",
		EndDate:       "2024-06-05",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "validation_error", body["error"])
	assert.Equal(t, "vin", body["field"])

	list := s.do(t, http.MethodGet, "/api/v1/admin/rentals", nil, token)
	require.Equal(t, http.StatusOK, list.Code)
	assert.EqualValues(t, 0, decode(t, list)["total_count"])
}

func TestEventFeed(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	submit := func(name string) {
		w := s.do(t, http.MethodPost, "/api/v1/requests", model.CreateRentalRequestRequest{
			Name: name, Email: "jane@example.com", Phone: "555-0100",
			StartDate: "2024-06-01", EndDate: "2024-06-05",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	submit("Before")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/admin/events?token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() model.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		var event model.Event
		require.NoError(t, conn.ReadJSON(&event))
		return event
	}

	replayed := read()
	assert.Equal(t, model.EventRequestCreated, replayed.Type)
	assert.Contains(t, replayed.Summary, "Before")

	submit("After")
	live := read()
	assert.Equal(t, model.EventRequestCreated, live.Type)
	assert.Contains(t, live.Summary, "After")
}

func TestEventFeed_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/admin/events"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
