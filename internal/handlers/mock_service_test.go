package handlers

import (
	"context"
	"net/http"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/models"
	"pet_discovery/internal/service"

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

// mockDiscovery answers every call with state/err and records its arguments.
type mockDiscovery struct {
	state    service.ViewState
	err      error
	detail   discovery.Detail
	detailOK bool

	calls        []string
	lastSession  string
	lastPageSize int
	lastFilter   discovery.FilterState
	lastPage     int
	lastCompany  int
}

func (m *mockDiscovery) record(call, sessionID string) {
	m.calls = append(m.calls, call)
	m.lastSession = sessionID
}

func (m *mockDiscovery) Mount(_ context.Context, pageSize int) (service.ViewState, error) {
	m.record("Mount", "")
	m.lastPageSize = pageSize
	return m.state, m.err
}
func (m *mockDiscovery) Unmount(_ context.Context, id string) error {
	m.record("Unmount", id)
	return m.err
}
func (m *mockDiscovery) View(_ context.Context, id string) (service.ViewState, error) {
	m.record("View", id)
	return m.state, m.err
}
func (m *mockDiscovery) SetFilter(_ context.Context, id string, f discovery.FilterState) (service.ViewState, error) {
	m.record("SetFilter", id)
	m.lastFilter = f
	return m.state, m.err
}
func (m *mockDiscovery) SetPage(_ context.Context, id string, page int) (service.ViewState, error) {
	m.record("SetPage", id)
	m.lastPage = page
	return m.state, m.err
}
func (m *mockDiscovery) SelectFromList(_ context.Context, id string, companyID int) (service.ViewState, error) {
	m.record("SelectFromList", id)
	m.lastCompany = companyID
	return m.state, m.err
}
func (m *mockDiscovery) MapClick(_ context.Context, id string, companyID int) (service.ViewState, error) {
	m.record("MapClick", id)
	m.lastCompany = companyID
	return m.state, m.err
}
func (m *mockDiscovery) ClearSelection(_ context.Context, id string) (service.ViewState, error) {
	m.record("ClearSelection", id)
	return m.state, m.err
}
func (m *mockDiscovery) Dismiss(_ context.Context, id string) error {
	m.record("Dismiss", id)
	return m.err
}
func (m *mockDiscovery) MarkersRendered(_ context.Context, id string, companyIDs []int) (int, error) {
	m.record("MarkersRendered", id)
	return len(companyIDs), m.err
}
func (m *mockDiscovery) Detail(_ context.Context, id string) (discovery.Detail, bool, error) {
	m.record("Detail", id)
	return m.detail, m.detailOK, m.err
}
func (m *mockDiscovery) Attach(id string, _ service.Remote) (func(), error) {
	m.record("Attach", id)
	return func() {}, m.err
}

type mockEventLog struct {
	resp []models.SelectionEvent
	err  error
	last service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.SelectionEvent, error) {
	m.last = f
	return m.resp, m.err
}

type mockCompanies struct {
	id   int
	err  error
	last models.Company
}

func (m *mockCompanies) Create(_ context.Context, c models.Company) (int, error) {
	m.last = c
	return m.id, m.err
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
