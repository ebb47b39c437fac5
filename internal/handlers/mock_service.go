package handlers

import (
	"context"
	"net/http"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
	"smartchef/internal/service"
	"smartchef/internal/voice"

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

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSessions struct {
	created   *models.CookingSession
	createErr error
	sessions  map[string]*models.CookingSession
	getErr    error
	listResp  []models.CookingSession
	listErr   error
	notesErr  error

	lastCreateUserID  int
	lastCreateRecipes []models.RecipeInput
	lastNotesID       string
	lastNotes         string
}

func (m *mockSessions) Create(ctx context.Context, userID int, recipes []models.RecipeInput) (*models.CookingSession, error) {
	m.lastCreateUserID = userID
	m.lastCreateRecipes = recipes
	return m.created, m.createErr
}
func (m *mockSessions) Get(ctx context.Context, id string) (*models.CookingSession, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.sessions[id], nil
}
func (m *mockSessions) ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error) {
	return m.listResp, m.listErr
}
func (m *mockSessions) UpdateNotes(ctx context.Context, id, notes string) error {
	m.lastNotesID = id
	m.lastNotes = notes
	return m.notesErr
}

type mockRecipes struct {
	listResp   []models.RecipeInput
	listErr    error
	resolveMap map[string]models.RecipeInput
	resolveErr error
	lastIDs    []string
}

func (m *mockRecipes) ListCookable(ctx context.Context) ([]models.RecipeInput, error) {
	return m.listResp, m.listErr
}
func (m *mockRecipes) Resolve(ctx context.Context, ids []string) ([]models.RecipeInput, error) {
	m.lastIDs = ids
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	var out []models.RecipeInput
	for _, id := range ids {
		if r, ok := m.resolveMap[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockProgress struct {
	resp       []models.CookingProgress
	err        error
	lastID     string
	lastFilter service.ProgressFilter
}

func (m *mockProgress) List(ctx context.Context, sessionID string, f service.ProgressFilter) ([]models.CookingProgress, error) {
	m.lastID = sessionID
	m.lastFilter = f
	return m.resp, m.err
}

// mockRuntime hands out real controllers backed by in-memory repo fakes so
// handler tests exercise actual transitions.
type mockRuntime struct {
	controllers map[string]*service.Controller
	attachErr   error
	detached    []string
}

func (m *mockRuntime) Attach(ctx context.Context, sessionID string) (*service.Controller, error) {
	if m.attachErr != nil {
		return nil, m.attachErr
	}
	ctrl, ok := m.controllers[sessionID]
	if !ok {
		return nil, service.ErrSessionUnavailable
	}
	return ctrl, nil
}
func (m *mockRuntime) Detach(sessionID string) { m.detached = append(m.detached, sessionID) }
func (m *mockRuntime) Close()                  {}

// ---- Repo fakes backing real controllers ----

type stubSessionRepo struct{}

func (stubSessionRepo) Create(ctx context.Context, s models.CookingSession) error { return nil }
func (stubSessionRepo) Get(ctx context.Context, id string) (*models.CookingSession, error) {
	return nil, nil
}
func (stubSessionRepo) ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error) {
	return nil, nil
}
func (stubSessionRepo) MarkCooking(ctx context.Context, id string, startedAt, estimatedEnd time.Time) error {
	return nil
}
func (stubSessionRepo) MarkCompleted(ctx context.Context, id string, endedAt time.Time) error {
	return nil
}
func (stubSessionRepo) SaveCursor(ctx context.Context, id string, stepIndex int) error { return nil }
func (stubSessionRepo) SaveDishes(ctx context.Context, id string, dishes []models.ScheduledDish) error {
	return nil
}
func (stubSessionRepo) UpdateNotes(ctx context.Context, id string, notes string) error { return nil }

type stubProgressRepo struct{}

func (stubProgressRepo) Append(ctx context.Context, p models.CookingProgress) error { return nil }
func (stubProgressRepo) Complete(ctx context.Context, id string, completedAt time.Time, durationSeconds int) error {
	return nil
}
func (stubProgressRepo) List(ctx context.Context, sessionID string, from, to time.Time, status string) ([]models.CookingProgress, error) {
	return nil, nil
}

// newTestController builds a controller over stub repos with the clock held
// off (large tick) so tests control time explicitly.
func newTestController(sess *models.CookingSession) *service.Controller {
	repos := &repository.Repository{
		Sessions: stubSessionRepo{},
		Progress: stubProgressRepo{},
		Staging:  repository.NewMemoryStaging(),
	}
	return service.NewController(sess, repos, voice.NewNoopSpeaker(), logger.Get(logger.ErrorLevel), context.Background(), time.Hour)
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
