package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jammapp/waitlist-api/config"
	"github.com/jammapp/waitlist-api/config/router"
	"github.com/jammapp/waitlist-api/domain"
	"github.com/jammapp/waitlist-api/domain/waitlist"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	"github.com/jammapp/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAdminToken = "test-admin-token"

// fakeSender stands in for the SMTP transport so the suite can observe
// welcome and broadcast traffic without a mail server.
type fakeSender struct {
	mu         sync.Mutex
	configured bool
	welcomes   []string
	broadcasts [][]string
}

func (f *fakeSender) IsConfigured() bool { return f.configured }

func (f *fakeSender) Send(to string, msg *mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeSender) SendToAll(recipients []string, msg *mailer.Message) *mailer.BroadcastResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, recipients)

	if len(recipients) == 0 {
		return &mailer.BroadcastResult{Success: false, Message: "No active subscribers found"}
	}
	return &mailer.BroadcastResult{
		Success:   true,
		Message:   fmt.Sprintf("Sent %d out of %d emails", len(recipients), len(recipients)),
		SentCount: len(recipients),
	}
}

func (f *fakeSender) WelcomeMessage(email string) *mailer.Message {
	return &mailer.Message{Subject: "Welcome to Jamm - You're on the waitlist!", HTML: "<p>welcome</p>"}
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = nil
	f.broadcasts = nil
}

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	sender    *fakeSender
	appConfig *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	os.Setenv("ADMIN_TOKEN", testAdminToken)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.WaitlistEntry{})
	suite.Require().NoError(err)

	suite.logger = log.NewLoggerWithJSONOutput()
	suite.sender = &fakeSender{configured: true}

	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Store:  waitlist.NewDBEntryStore(suite.db, suite.logger),
		Mailer: suite.sender,
		Logger: suite.logger,
	}

	suite.appConfig.RouterService = router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
	os.Unsetenv("ADMIN_TOKEN")
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_entries")
	suite.sender.reset()
}

func (suite *WaitlistAPITestSuite) postJSON(path string, body map[string]string, token string) (*http.Response, map[string]interface{}) {
	jsonBody, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, suite.baseURL+path, bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)

	var decoded map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()

	return resp, decoded
}

func (suite *WaitlistAPITestSuite) getJSON(path string, token string) (*http.Response, map[string]interface{}) {
	req, err := http.NewRequest(http.MethodGet, suite.baseURL+path, nil)
	suite.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)

	var decoded map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()

	return resp, decoded
}

func (suite *WaitlistAPITestSuite) seedEntry(email string) {
	entry := models.WaitlistEntry{
		ID:           email,
		Email:        email,
		School:       "Example University",
		SubscribedAt: time.Now().UTC(),
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(&entry).Error)
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, body := suite.getJSON("/health", "")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Contains(body["message"], "Health check completed")
	suite.Equal(float64(1), body["storage"])
	suite.Equal(float64(1), body["email"])
	suite.Contains(body, "uptime")
}

func (suite *WaitlistAPITestSuite) TestSignup() {
	resp, body := suite.postJSON("/waitlist", map[string]string{
		"email":  "Student@Uni.edu",
		"school": "example university",
	}, "")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal("Successfully added to waitlist!", body["message"])
	suite.Equal(true, body["emailSent"])

	suite.Equal([]string{"student@uni.edu"}, suite.sender.welcomes)

	var entry models.WaitlistEntry
	suite.Require().NoError(suite.db.Where("email = ?", "student@uni.edu").First(&entry).Error)
	suite.True(entry.IsActive)
	suite.Equal("Example University", entry.School)
}

func (suite *WaitlistAPITestSuite) TestSignupDuplicate() {
	suite.seedEntry("student@uni.edu")

	resp, body := suite.postJSON("/waitlist", map[string]string{
		"email":  "STUDENT@uni.edu",
		"school": "Example University",
	}, "")

	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal(false, body["success"])
	suite.Equal("Email is already on the waitlist", body["message"])
	suite.Empty(suite.sender.welcomes)
}

func (suite *WaitlistAPITestSuite) TestSignupValidation() {
	resp, body := suite.postJSON("/waitlist", map[string]string{
		"email":  "not-an-email",
		"school": "Example University",
	}, "")

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal(false, body["success"])
	suite.Contains(body, "errors")
	suite.Empty(suite.sender.welcomes)
}

func (suite *WaitlistAPITestSuite) TestUnsubscribe() {
	suite.seedEntry("student@uni.edu")

	resp, body := suite.postJSON("/unsubscribe", map[string]string{
		"email": "Student@Uni.edu",
	}, "")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal("Successfully unsubscribed", body["message"])

	var entry models.WaitlistEntry
	suite.Require().NoError(suite.db.Where("email = ?", "student@uni.edu").First(&entry).Error)
	suite.False(entry.IsActive)
}

func (suite *WaitlistAPITestSuite) TestUnsubscribeUnknownEmail() {
	resp, body := suite.postJSON("/unsubscribe", map[string]string{
		"email": "nobody@uni.edu",
	}, "")

	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.Equal("Email not found on waitlist", body["message"])
}

func (suite *WaitlistAPITestSuite) TestUnsubscribeLink() {
	suite.seedEntry("student@uni.edu")

	resp, body := suite.getJSON("/unsubscribe?email=student%40uni.edu", "")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal("Successfully unsubscribed", body["message"])
}

func (suite *WaitlistAPITestSuite) TestUnsubscribeLinkMissingEmail() {
	resp, body := suite.getJSON("/unsubscribe", "")

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("Email parameter is required", body["message"])
}

func (suite *WaitlistAPITestSuite) TestListSubscribersRequiresAuth() {
	resp, body := suite.getJSON("/waitlist", "")
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.Equal("Unauthorized", body["message"])

	resp, _ = suite.getJSON("/waitlist", "wrong-token")
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestListSubscribers() {
	suite.seedEntry("one@uni.edu")
	suite.seedEntry("two@uni.edu")

	resp, body := suite.getJSON("/waitlist", testAdminToken)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal(float64(2), body["count"])

	subscribers := body["subscribers"].([]interface{})
	suite.Len(subscribers, 2)
	first := subscribers[0].(map[string]interface{})
	suite.Contains(first, "email")
	suite.Contains(first, "subscribedAt")
}

func (suite *WaitlistAPITestSuite) TestBroadcastRequiresAuth() {
	resp, _ := suite.postJSON("/admin/send-email", map[string]string{
		"subject": "Launch",
		"html":    "<p>soon</p>",
	}, "")

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.Empty(suite.sender.broadcasts)
}

func (suite *WaitlistAPITestSuite) TestBroadcast() {
	suite.seedEntry("one@uni.edu")
	suite.seedEntry("two@uni.edu")

	resp, body := suite.postJSON("/admin/send-email", map[string]string{
		"subject": "Launch",
		"html":    "<p>soon</p>",
	}, testAdminToken)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal("Sent 2 out of 2 emails", body["message"])
	suite.Equal(float64(2), body["sentCount"])

	suite.Require().Len(suite.sender.broadcasts, 1)
	suite.ElementsMatch([]string{"one@uni.edu", "two@uni.edu"}, suite.sender.broadcasts[0])
}

func (suite *WaitlistAPITestSuite) TestBroadcastEmptyWaitlist() {
	resp, body := suite.postJSON("/admin/send-email", map[string]string{
		"subject": "Launch",
		"html":    "<p>soon</p>",
	}, testAdminToken)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(false, body["success"])
	suite.Equal("No active subscribers found", body["message"])
}

func (suite *WaitlistAPITestSuite) TestVerify() {
	resp, body := suite.postJSON("/admin/verify", map[string]string{
		"password": testAdminToken,
	}, "")

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(true, body["success"])
	suite.Equal("Login successful", body["message"])
	suite.Len(body["token"], 64)
}

func (suite *WaitlistAPITestSuite) TestVerifyWrongPassword() {
	resp, body := suite.postJSON("/admin/verify", map[string]string{
		"password": "wrong",
	}, "")

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.Equal("Invalid password", body["message"])
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
