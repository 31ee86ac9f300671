package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"task-manager-api/internal/adapter/db/postgres"
	"task-manager-api/internal/adapter/gin/handler"
	"task-manager-api/internal/adapter/gin/middleware"
	"task-manager-api/internal/adapter/gin/router"
	authusecase "task-manager-api/internal/usecase/auth"
	taskusecase "task-manager-api/internal/usecase/task"
	userusecase "task-manager-api/internal/usecase/user"
	pkgauth "task-manager-api/pkg/auth"
)

// APIIntegrationTestSuite exercises the full HTTP stack: router, auth gate,
// handlers, usecases, and repositories over an in-memory database.
type APIIntegrationTestSuite struct {
	suite.Suite
	engine *gin.Engine
	tokens *pkgauth.TokenService
}

func (s *APIIntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&postgres.UserSchema{}, &postgres.TaskSchema{}))

	userRepo := postgres.NewUserRepoPG(db, logger)
	taskRepo := postgres.NewTaskRepoPG(db, logger)

	hasher := pkgauth.NewPasswordService()
	s.tokens, err = pkgauth.NewTokenService("integration-test-secret-key", time.Hour)
	s.Require().NoError(err)

	authUC := authusecase.New(userRepo, hasher, s.tokens, logger)
	userUC := userusecase.New(userRepo, hasher, logger)
	taskUC := taskusecase.New(taskRepo, logger)

	s.engine = router.SetupRouter(router.Handlers{
		Auth: handler.NewAuthHandler(authUC, logger),
		User: handler.NewUserHandler(userUC, logger),
		Task: handler.NewTaskHandler(taskUC, logger),
	}, s.tokens, middleware.RateLimiterConfig{}, nil, logger)
}

// request performs an in-process HTTP request against the router.
func (s *APIIntegrationTestSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// register creates a user and returns a valid token for it.
func (s *APIIntegrationTestSuite) register(name, email, password string) string {
	w := s.request("POST", "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request("POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	token, ok := resp["token"].(string)
	s.Require().True(ok)
	return token
}

func (s *APIIntegrationTestSuite) TestRegisterLoginProfile() {
	// Register
	w := s.request("POST", "/api/auth/register", "", map[string]any{
		"name":     "Ana López",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(s.T(), "Usuario creado", created["message"])
	assert.NotZero(s.T(), created["id"])

	// Duplicate registration fails before any write
	w = s.request("POST", "/api/auth/register", "", map[string]any{
		"name":     "Ana Clon",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Contains(s.T(), w.Body.String(), "El usuario ya existe")

	// Login
	w = s.request("POST", "/api/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var loggedIn map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.Equal(s.T(), "Login exitoso", loggedIn["message"])
	token, ok := loggedIn["token"].(string)
	s.Require().True(ok)
	s.Require().NotEmpty(token)

	// Profile with the issued token
	w = s.request("GET", "/api/auth/profile", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), "ana@example.com")

	// Credentials never leak into any response body
	assert.NotContains(s.T(), w.Body.String(), "password")
	assert.NotContains(s.T(), w.Body.String(), "secret123")
}

func (s *APIIntegrationTestSuite) TestRegisterMinimalCredentials() {
	// Short names and passwords are valid; the API imposes no length floor
	w := s.request("POST", "/api/auth/register", "", map[string]any{
		"name":     "A",
		"email":    "a@x.com",
		"password": "p",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(s.T(), "Usuario creado", created["message"])
	assert.NotZero(s.T(), created["id"])

	// The account is immediately usable
	w = s.request("POST", "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "p",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), "Login exitoso")
}

func (s *APIIntegrationTestSuite) TestLoginFailures() {
	s.register("Ana López", "ana@example.com", "secret123")

	// Unknown user
	w := s.request("POST", "/api/auth/login", "", map[string]any{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Usuario no encontrado")

	// Wrong password
	w = s.request("POST", "/api/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "secret124",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Credenciales inválidas")
}

func (s *APIIntegrationTestSuite) TestAuthGate() {
	// No Authorization header
	w := s.request("GET", "/api/task", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Token requerido")

	// Header without a token part
	req := httptest.NewRequest("GET", "/api/task", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "Token inválido")

	// Unverifiable token
	w = s.request("GET", "/api/task", "not.a.token", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Token expirado o inválido")
}

func (s *APIIntegrationTestSuite) TestTaskCRUD() {
	token := s.register("Ana López", "ana@example.com", "secret123")

	// Create
	w := s.request("POST", "/api/task", token, map[string]any{
		"title":       "Comprar pan",
		"description": "Antes de las 9",
		"due_date":    "2026-09-01",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(s.T(), "Tarea creada", created["message"])
	taskID := int64(created["id"].(float64))

	// New tasks start out pending
	w = s.request("GET", fmt.Sprintf("/api/task/%d", taskID), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "pendiente")

	// The authenticated user's own list includes it
	w = s.request("GET", "/api/task/user", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var mine []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &mine))
	s.Require().Len(mine, 1)
	assert.Equal(s.T(), "Comprar pan", mine[0]["title"])

	// Update
	w = s.request("PUT", fmt.Sprintf("/api/task/%d", taskID), token, map[string]any{
		"title":  "Comprar pan integral",
		"status": "completada",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), "Tarea actualizada")

	w = s.request("GET", fmt.Sprintf("/api/task/%d", taskID), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "completada")

	// Delete
	w = s.request("DELETE", fmt.Sprintf("/api/task/%d", taskID), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Tarea eliminada")

	// Gone afterwards
	w = s.request("GET", fmt.Sprintf("/api/task/%d", taskID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Tarea no encontrada")

	// Mutations on missing tasks are not-found too
	w = s.request("PUT", fmt.Sprintf("/api/task/%d", taskID), token, map[string]any{"title": "Fantasma"})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.request("DELETE", fmt.Sprintf("/api/task/%d", taskID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APIIntegrationTestSuite) TestHealthEndpoint() {
	w := s.request("GET", "/health", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "healthy")
}

func TestAPIIntegrationSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
