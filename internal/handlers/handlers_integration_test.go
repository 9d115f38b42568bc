package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/intrackhq/intrack-backend/internal/config"
	"github.com/intrackhq/intrack-backend/internal/database"
	"github.com/intrackhq/intrack-backend/internal/handlers"
	"github.com/intrackhq/intrack-backend/internal/models"
	"github.com/intrackhq/intrack-backend/internal/notes"
	"github.com/intrackhq/intrack-backend/internal/routes"
	"github.com/intrackhq/intrack-backend/internal/services"
	"github.com/intrackhq/intrack-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gofiber/fiber/v2"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// newTestApp builds the full application against an in-memory database.
// mutate, when non-nil, adjusts the config before services are constructed,
// e.g. to point external clients at a stub server.
func newTestApp(t *testing.T, mutate func(*config.Config)) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		SessionSecret: "integration-test-secret",
		SessionCookie: "intrack_session",
		AITimeout:     5 * time.Second,
		PublicDir:     t.TempDir(),
	}
	if mutate != nil {
		mutate(cfg)
	}

	sessions := session.NewService(db, cfg.SessionSecret)
	authService := services.NewAuthService(db, sessions)
	jobService := services.NewJobService(db, nil)
	applicationService := services.NewApplicationService(db)
	notificationService := services.NewNotificationService(db)
	chatService := services.NewChatService(cfg)
	externalService := services.NewExternalJobService(cfg)

	app := fiber.New()
	routes.Setup(app, cfg, sessions, routes.Handlers{
		Auth:         handlers.NewAuthHandler(cfg, authService, sessions),
		Job:          handlers.NewJobHandler(jobService, externalService),
		Application:  handlers.NewApplicationHandler(applicationService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Note:         handlers.NewNoteHandler(notes.NewMemoryStore()),
		Chat:         handlers.NewChatHandler(chatService),
		Page:         handlers.NewPageHandler(cfg, sessions),
		Health:       handlers.NewHealthHandler(db),
	})

	return &testApp{app: app, db: db, cfg: cfg}
}

func (ta *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ta *testApp) jsonRequest(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// signup registers a fresh account and returns its session cookie.
func (ta *testApp) signup(t *testing.T, name, email string) *http.Cookie {
	t.Helper()
	resp := ta.postForm(t, "/post", url.Values{
		"FullName": {name},
		"Email":    {email},
		"Password": {"password123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/profile", resp.Header.Get(fiber.HeaderLocation))
	cookie := sessionCookie(resp, ta.cfg.SessionCookie)
	require.NotNil(t, cookie)
	return cookie
}

func sessionCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSignupAndProfile(t *testing.T) {
	ta := newTestApp(t, nil)

	cookie := ta.signup(t, "Ada Lovelace", "ada@example.com")

	// Without the cookie the profile API is unauthorized.
	resp := ta.jsonRequest(t, fiber.MethodGet, "/api/profile", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/profile", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeBody(t, resp, &profile)
	assert.Equal(t, "Ada Lovelace", profile["full_name"])
	assert.Equal(t, "ada@example.com", profile["email"])

	// Password hashes never leave the server.
	_, leaked := profile["password"]
	assert.False(t, leaked)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.signup(t, "First", "taken@example.com")

	resp := ta.postForm(t, "/post", url.Values{
		"FullName": {"Second"},
		"Email":    {"taken@example.com"},
		"Password": {"password123"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Email already exists.", body["message"])

	var count int64
	ta.db.Model(&models.User{}).Where("email = ?", "taken@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.signup(t, "Ada", "ada@example.com")

	resp := ta.postForm(t, "/login", url.Values{
		"Email":    {"nobody@example.com"},
		"Password": {"password123"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "User not found", body["message"])

	resp = ta.postForm(t, "/login", url.Values{
		"Email":    {"ada@example.com"},
		"Password": {"wrong-password"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Incorrect password", body["message"])

	resp = ta.postForm(t, "/login", url.Values{
		"Email":    {"ada@example.com"},
		"Password": {"password123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get(fiber.HeaderLocation))
	assert.NotNil(t, sessionCookie(resp, ta.cfg.SessionCookie))
}

func TestLogoutRevokesSession(t *testing.T) {
	ta := newTestApp(t, nil)
	cookie := ta.signup(t, "Ada", "ada@example.com")

	resp := ta.jsonRequest(t, fiber.MethodGet, "/logout", nil, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	// The old cookie still carries a valid signature, but the server-side
	// session row is gone.
	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/profile", nil, cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	ta := newTestApp(t, nil)
	cookie := ta.signup(t, "Ada", "ada@example.com")

	resp := ta.jsonRequest(t, fiber.MethodPut, "/api/profile/update", map[string]string{
		"FullName": "Ada King",
		"Email":    "ada.king@example.com",
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ada King", user["full_name"])
	assert.Equal(t, "ada.king@example.com", user["email"])
}

func TestDeleteAccountLeavesApplications(t *testing.T) {
	ta := newTestApp(t, nil)
	cookie := ta.signup(t, "Ada", "ada@example.com")

	resp := ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/create", map[string]any{
		"title":   "Backend Engineer",
		"company": "Initech",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created map[string]any
	decodeBody(t, resp, &created)
	jobID := created["job"].(map[string]any)["id"].(string)

	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/apply/"+jobID, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodDelete, "/api/profile/delete", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, true, body["success"])

	// The session is revoked but the application row survives; there is no
	// cascading cleanup on account deletion.
	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/profile", nil, cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var applications int64
	ta.db.Model(&models.Application{}).Count(&applications)
	assert.EqualValues(t, 1, applications)
}

func TestJobCreateFansOutNotifications(t *testing.T) {
	ta := newTestApp(t, nil)
	adaCookie := ta.signup(t, "Ada", "ada@example.com")
	graceCookie := ta.signup(t, "Grace", "grace@example.com")

	// Anyone may post a listing; no cookie attached on purpose.
	resp := ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/create", map[string]any{
		"title":    "Platform Engineer",
		"company":  "Globex",
		"location": "Dublin",
		"type":     "Full-time",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, cookie := range []*http.Cookie{adaCookie, graceCookie} {
		resp = ta.jsonRequest(t, fiber.MethodGet, "/api/notifications", nil, cookie)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var list []map[string]any
		decodeBody(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "New job posted: Platform Engineer at Globex", list[0]["message"])
		assert.Equal(t, false, list[0]["read"])
	}
}

func TestMarkNotificationRead(t *testing.T) {
	ta := newTestApp(t, nil)
	cookie := ta.signup(t, "Ada", "ada@example.com")

	resp := ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/create", map[string]any{
		"title":   "SRE",
		"company": "Hooli",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/notifications", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	id := list[0]["id"].(string)

	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/notifications/read/"+id, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/notifications", nil, cookie)
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["read"])
}

func TestApplyFlow(t *testing.T) {
	ta := newTestApp(t, nil)
	cookie := ta.signup(t, "Ada", "ada@example.com")

	resp := ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/create", map[string]any{
		"title":   "Data Engineer",
		"company": "Initrode",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created map[string]any
	decodeBody(t, resp, &created)
	jobID := created["job"].(map[string]any)["id"].(string)

	// Applying requires a login.
	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/apply/"+jobID, nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/apply/"+jobID, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, true, body["success"])

	// A second apply is reported, not persisted.
	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/apply/"+jobID, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Already applied", body["message"])

	// Unknown jobs are a 404.
	resp = ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/apply/00000000-0000-0000-0000-000000000000", nil, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/applications", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var applications []map[string]any
	decodeBody(t, resp, &applications)
	require.Len(t, applications, 1)
	job := applications[0]["job"].(map[string]any)
	assert.Equal(t, "Data Engineer", job["title"])
}

func TestJobSearch(t *testing.T) {
	ta := newTestApp(t, nil)

	for _, spec := range []map[string]any{
		{"title": "Senior Go Developer", "company": "Globex", "salary": 90000.0},
		{"title": "Frontend Developer", "company": "Initech", "salary": 60000.0},
		{"title": "Accountant", "company": "Initech", "salary": 55000.0},
	} {
		resp := ta.jsonRequest(t, fiber.MethodPost, "/api/jobs/create", spec, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp := ta.jsonRequest(t, fiber.MethodGet, "/api/jobs/search?title=developer", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var jobs []map[string]any
	decodeBody(t, resp, &jobs)
	assert.Len(t, jobs, 2)

	resp = ta.jsonRequest(t, fiber.MethodGet, "/api/jobs/search?title=developer&minSalary=70000", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Go Developer", jobs[0]["title"])
}

func TestNotesScratchpad(t *testing.T) {
	ta := newTestApp(t, nil)

	resp := ta.jsonRequest(t, fiber.MethodGet, "/get-notes", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []string
	decodeBody(t, resp, &list)
	assert.Empty(t, list)

	for _, note := range []string{"first", "second"} {
		resp = ta.jsonRequest(t, fiber.MethodPost, "/add-note", map[string]string{"note": note}, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp = ta.jsonRequest(t, fiber.MethodGet, "/get-notes", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &list)
	assert.Equal(t, []string{"first", "second"}, list)
}

func TestChatReply(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Use the jobs page to add listings."}}]}`)
	}))
	defer upstream.Close()

	ta := newTestApp(t, func(cfg *config.Config) {
		cfg.OpenAIAPIKey = "test-key"
		cfg.OpenAIAPIURL = upstream.URL
		cfg.OpenAIModel = "gpt-4o-mini"
	})

	resp := ta.jsonRequest(t, fiber.MethodPost, "/chat", map[string]string{"message": "How do I add a job?"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Use the jobs page to add listings.", body["reply"])
}

func TestChatDegradesOnUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	ta := newTestApp(t, func(cfg *config.Config) {
		cfg.OpenAIAPIKey = "test-key"
		cfg.OpenAIAPIURL = upstream.URL
		cfg.OpenAIModel = "gpt-4o-mini"
	})

	// Upstream trouble never surfaces as an HTTP error; the widget gets a
	// canned reply instead.
	resp := ta.jsonRequest(t, fiber.MethodPost, "/chat", map[string]string{"message": "hello"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Error: unable to generate response.", body["reply"])
}

func TestExternalJobsProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{
			"title":"Go Developer",
			"company":{"display_name":"Acme"},
			"location":{"display_name":"Cork, Ireland"},
			"description":"Build services.",
			"redirect_url":"https://example.com/job/1",
			"salary_min":55000,
			"contract_time":"full_time"
		}]}`)
	}))
	defer upstream.Close()

	ta := newTestApp(t, func(cfg *config.Config) {
		cfg.AdzunaAppID = "app-id"
		cfg.AdzunaAppKey = "app-key"
		cfg.AdzunaBaseURL = upstream.URL
	})

	resp := ta.jsonRequest(t, fiber.MethodGet, "/api/jobs/external?what=golang", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var jobs []map[string]any
	decodeBody(t, resp, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0]["title"])
	assert.Equal(t, "Acme", jobs[0]["company"])
}

func TestProtectedPageRedirectsToSignup(t *testing.T) {
	ta := newTestApp(t, nil)

	resp := ta.jsonRequest(t, fiber.MethodGet, "/profile", nil, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signup", resp.Header.Get(fiber.HeaderLocation))
}

func TestHealthEndpoint(t *testing.T) {
	ta := newTestApp(t, nil)

	resp := ta.jsonRequest(t, fiber.MethodGet, "/api/health", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
