package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/internal/notify"
	"github.com/akeren/waitlist-api/internal/store"
	"github.com/akeren/waitlist-api/pkg/besteffort"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Content notify.Content
}

// mailbox stands in for the SMTP server.
type mailbox struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *mailbox) Send(_ context.Context, to string, content notify.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Content: content})
	return nil
}

func (m *mailbox) reset(fail error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.fail = fail
}

func (m *mailbox) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type WaitlistAPITestSuite struct {
	suite.Suite
	store      *store.Manager
	db         *gorm.DB
	mailbox    *mailbox
	dispatcher *besteffort.Dispatcher
	server     *httptest.Server
	baseURL    string
	appConfig  *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	suite.T().Setenv("METRICS_ENABLED", "false")

	logger := log.NewLogger(io.Discard, slog.LevelError)

	suite.store = store.NewManager(logger,
		&store.Config{URL: "sqlite://:memory:", Name: "integration_waitlist"},
		store.WithConnectHook(config.AutoMigrateHook(logger)),
	)

	var err error
	suite.db, err = suite.store.Acquire(context.Background())
	suite.Require().NoError(err)

	suite.mailbox = &mailbox{}
	suite.dispatcher = besteffort.NewDispatcher(logger, 5*time.Second)

	suite.appConfig = &config.ApplicationConfig{
		Store:      suite.store,
		Logger:     logger,
		Notifier:   notify.NewNotifier(logger, suite.mailbox, notify.Options{}),
		Dispatcher: suite.dispatcher,
		Config:     &config.AppConfig{RequestTimeout: 30 * time.Second, SeenEmailTTL: time.Hour},
	}
	suite.appConfig.RouterService = router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: 30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.store != nil {
		suite.NoError(suite.store.Close())
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.Require().NoError(suite.db.AutoMigrate(&models.WaitlistEntry{}))
	suite.Require().NoError(suite.db.Exec("DELETE FROM waitlist_entries").Error)
	suite.mailbox.reset(nil)
}

func (suite *WaitlistAPITestSuite) submit(path, name, email string) (int, envelope) {
	body, err := json.Marshal(map[string]string{"name": name, "email": email})
	suite.Require().NoError(err)

	resp, err := http.Post(suite.baseURL+path, "application/json", bytes.NewReader(body))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (suite *WaitlistAPITestSuite) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.Require().NoError(suite.dispatcher.Wait(ctx))
}

func (suite *WaitlistAPITestSuite) entries() []models.WaitlistEntry {
	var rows []models.WaitlistEntry
	suite.Require().NoError(suite.db.Order("id").Find(&rows).Error)
	return rows
}

func (suite *WaitlistAPITestSuite) TestSubmit_AddsEntryAndSendsConfirmation() {
	status, env := suite.submit("/api/submit", "  ada lovelace ", " Ada@Example.com ")
	suite.drain()

	suite.Equal(http.StatusOK, status)
	suite.Equal(http.StatusOK, env.Code)
	suite.Equal("Added to waitlist!", env.Message)

	var data map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &data))
	suite.Equal("Ada Lovelace", data["name"])
	suite.Equal("ada@example.com", data["email"])
	suite.NotEmpty(data["created_at"])

	rows := suite.entries()
	suite.Require().Len(rows, 1)
	suite.Equal("Ada Lovelace", rows[0].Name)
	suite.Equal("ada@example.com", rows[0].Email)
	suite.True(rows[0].IsPublic)

	sent := suite.mailbox.messages()
	suite.Require().Len(sent, 1)
	suite.Equal("ada@example.com", sent[0].To)
	suite.Equal(notify.ConfirmationSubject, sent[0].Content.Subject)
	suite.Contains(sent[0].Content.HTML, "hey Ada Lovelace,")
}

func (suite *WaitlistAPITestSuite) TestSubmit_VersionedPath() {
	status, env := suite.submit("/v1/waitlist", "grace", "grace@example.com")
	suite.drain()

	suite.Equal(http.StatusOK, status)
	suite.Equal("Added to waitlist!", env.Message)
	suite.Len(suite.entries(), 1)
}

func (suite *WaitlistAPITestSuite) TestSubmit_DuplicateIsRejectedEveryTime() {
	status, _ := suite.submit("/api/submit", "ada", "ada@example.com")
	suite.Require().Equal(http.StatusOK, status)

	for _, email := range []string{"ada@example.com", "ADA@example.com", "  Ada@Example.Com"} {
		status, env := suite.submit("/api/submit", "someone else", email)
		suite.Equal(http.StatusConflict, status, email)
		suite.Equal("Email already added.", env.Message, email)
	}
	suite.drain()

	rows := suite.entries()
	suite.Require().Len(rows, 1)
	suite.Equal("Ada", rows[0].Name)
	suite.Len(suite.mailbox.messages(), 1)
}

func (suite *WaitlistAPITestSuite) TestSubmit_MissingFields() {
	tests := []struct {
		name  string
		email string
	}{
		{name: "", email: "ada@example.com"},
		{name: "ada", email: ""},
		{name: "   ", email: "ada@example.com"},
		{name: "ada", email: "\t"},
	}

	for _, tt := range tests {
		status, env := suite.submit("/api/submit", tt.name, tt.email)
		suite.Equal(http.StatusBadRequest, status)
		suite.Equal("Name and Email are required.", env.Message)
	}
	suite.drain()

	suite.Empty(suite.entries())
	suite.Empty(suite.mailbox.messages())
}

func (suite *WaitlistAPITestSuite) TestSubmit_EmptyBodyIsMissingFields() {
	resp, err := http.Post(suite.baseURL+"/api/submit", "application/json", strings.NewReader(""))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("Name and Email are required.", env.Message)
	suite.Empty(suite.entries())
}

func (suite *WaitlistAPITestSuite) TestSubmit_StoreFailureSkipsNotification() {
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.WaitlistEntry{}))

	status, env := suite.submit("/api/submit", "ada", "ada@example.com")
	suite.drain()

	suite.Equal(http.StatusInternalServerError, status)
	suite.Equal("Something went wrong.", env.Message)
	suite.Empty(suite.mailbox.messages())
}

func (suite *WaitlistAPITestSuite) TestSubmit_NotificationFailureKeepsEntry() {
	suite.mailbox.reset(errors.New("smtp: connection refused"))
	failedBefore := suite.dispatcher.Stats().Failed

	status, env := suite.submit("/api/submit", "ada", "ada@example.com")
	suite.drain()

	suite.Equal(http.StatusOK, status)
	suite.Equal("Added to waitlist!", env.Message)
	suite.Len(suite.entries(), 1)
	suite.Equal(failedBefore+1, suite.dispatcher.Stats().Failed)
}

func (suite *WaitlistAPITestSuite) TestSubmit_MalformedBody() {
	resp, err := http.Post(suite.baseURL+"/api/submit", "application/json", strings.NewReader(`{"name":`))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Empty(suite.entries())
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var env envelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	suite.Contains(env.Message, "health check completed")

	var data map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &data))
	suite.Equal(float64(1), data["store"])
	suite.Equal(float64(0), data["cache"])
	suite.Contains(data, "notifications")
	suite.Contains(data, "uptime")
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
