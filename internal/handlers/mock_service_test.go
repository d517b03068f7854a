package handlers

import (
	"context"
	"net/http"

	"smarthub/internal/models"
	"smarthub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSettings struct {
	updated    models.Settings
	updateErr  error
	current    models.Settings
	currentErr error

	lastParams  service.SettingsParams
	updateCalls int
}

func (m *mockSettings) Update(_ context.Context, p service.SettingsParams) (models.Settings, error) {
	m.updateCalls++
	m.lastParams = p
	return m.updated, m.updateErr
}
func (m *mockSettings) Current(context.Context) (models.Settings, error) {
	return m.current, m.currentErr
}

type mockReadings struct {
	ingested  models.Reading
	ingestErr error
	points    []models.GraphPoint
	graphErr  error
	byID      models.Reading
	getErr    error

	lastIngest  service.ReadingParams
	ingestCalls int
	lastSize    int
	lastID      int64
}

func (m *mockReadings) Ingest(_ context.Context, p service.ReadingParams) (models.Reading, error) {
	m.ingestCalls++
	m.lastIngest = p
	return m.ingested, m.ingestErr
}
func (m *mockReadings) Graph(_ context.Context, size int) ([]models.GraphPoint, error) {
	m.lastSize = size
	return m.points, m.graphErr
}
func (m *mockReadings) Get(_ context.Context, id int64) (models.Reading, error) {
	m.lastID = id
	return m.byID, m.getErr
}

type mockMonitoring struct {
	state models.State
	err   error
}

func (m *mockMonitoring) GetState(context.Context) (models.State, error) {
	return m.state, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Options) *gin.Engine {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	h := NewHandler(s, nil, o)
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
