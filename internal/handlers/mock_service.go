package handlers

import (
	"context"
	"net/http"

	"grinder_relay/internal/models"
	"grinder_relay/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken string
	loginUser  models.UserIdentity
	loginErr   error
	parseUser  models.UserIdentity
	parseErr   error
	gatewayErr error

	lastLoginUsername string
	lastLoginPassword string
	lastParseToken    string
	lastGatewayToken  string
}

func (m *mockAuth) Login(username, password string) (string, models.UserIdentity, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginUser, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (models.UserIdentity, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

func (m *mockAuth) VerifyGatewayToken(token string) error {
	m.lastGatewayToken = token
	return m.gatewayErr
}

type mockStateCache struct {
	pushed []models.SnapshotFields
	snap   models.DeviceSnapshot
}

func (m *mockStateCache) Push(fields models.SnapshotFields) {
	m.pushed = append(m.pushed, fields)
}

func (m *mockStateCache) Read() models.DeviceSnapshot { return m.snap }

type mockReset struct {
	requestResp  models.PendingReset
	requestErr   error
	peekResp     models.PendingReset
	consumeResp  models.PendingReset
	requestCalls int
	peekCalls    int
	consumeCalls int
}

func (m *mockReset) Request(ctx context.Context) (models.PendingReset, error) {
	m.requestCalls++
	return m.requestResp, m.requestErr
}

func (m *mockReset) Peek() models.PendingReset {
	m.peekCalls++
	return m.peekResp
}

func (m *mockReset) Consume() models.PendingReset {
	m.consumeCalls++
	return m.consumeResp
}

type mockAlarms struct {
	ingestResp models.Alarm
	ingestErr  error
	lastIngest [3]string // type, message, severity

	listResp  []models.Alarm
	listErr   error
	lastLimit int

	count    int
	countErr error

	ackResp   models.Alarm
	ackErr    error
	lastAckID string

	ackAllErr   error
	ackAllCalls int

	deleteErr  error
	deletedIDs []string
}

func (m *mockAlarms) Ingest(ctx context.Context, typ, message, severity string) (models.Alarm, error) {
	m.lastIngest = [3]string{typ, message, severity}
	return m.ingestResp, m.ingestErr
}

func (m *mockAlarms) List(ctx context.Context, limit int) ([]models.Alarm, error) {
	m.lastLimit = limit
	return m.listResp, m.listErr
}

func (m *mockAlarms) CountUnacknowledged(ctx context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockAlarms) Acknowledge(ctx context.Context, id string) (models.Alarm, error) {
	m.lastAckID = id
	return m.ackResp, m.ackErr
}

func (m *mockAlarms) AcknowledgeAll(ctx context.Context) error {
	m.ackAllCalls++
	return m.ackAllErr
}

func (m *mockAlarms) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func applyHeader(req *http.Request, header http.Header) {
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}
