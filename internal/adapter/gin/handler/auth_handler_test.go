package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	usecase "task-manager-api/internal/usecase/auth"
	apperrors "task-manager-api/pkg/errors"
)

// MockAuthUsecase is a mock implementation of auth.Usecase
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RegisterResponse), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, req usecase.LoginRequest) (*usecase.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginResponse), args.Error(1)
}

func (m *MockAuthUsecase) Profile(ctx context.Context, userID int64) (*usecase.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProfileResponse), args.Error(1)
}

func setupAuthTest(t *testing.T) (*gin.Engine, *AuthHandler, *MockAuthUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockAuthUsecase)
	handler := NewAuthHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	return r, handler, mockUsecase
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/register", handler.Register)

		reqBody := RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "secret123"}
		jsonBody, _ := json.Marshal(reqBody)

		mockUsecase.On("Register", mock.Anything, mock.MatchedBy(func(req usecase.RegisterRequest) bool {
			return req.Email == reqBody.Email && req.Password == reqBody.Password
		})).Return(&usecase.RegisterResponse{ID: 1}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"Usuario creado","id":1}`, w.Body.String())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/register", handler.Register)

		reqBody := RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "secret123"}
		jsonBody, _ := json.Marshal(reqBody)

		mockUsecase.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewAlreadyExistsError("user", "El usuario ya existe"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "El usuario ya existe")
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, _ := setupAuthTest(t)
		r.POST("/api/auth/register", handler.Register)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/login", handler.Login)

		reqBody := LoginRequest{Email: "john@example.com", Password: "secret123"}
		jsonBody, _ := json.Marshal(reqBody)

		mockUsecase.On("Login", mock.Anything, mock.MatchedBy(func(req usecase.LoginRequest) bool {
			return req.Email == reqBody.Email
		})).Return(&usecase.LoginResponse{Token: "signed.jwt.token"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Login exitoso","token":"signed.jwt.token"}`, w.Body.String())
	})

	t.Run("Unknown User", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		mockUsecase.On("Login", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewNotFoundError("user", "Usuario no encontrado"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Usuario no encontrado")
	})

	t.Run("Wrong Password", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Email: "john@example.com", Password: "wrong"})

		mockUsecase.On("Login", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewUnauthenticatedError("Credenciales inválidas"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Credenciales inválidas")
	})

	t.Run("Internal Error Is Redacted", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/api/auth/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Email: "john@example.com", Password: "secret123"})

		mockUsecase.On("Login", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewInternalError("failed to look up user", assert.AnError))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error del servidor")
		assert.NotContains(t, w.Body.String(), "failed to look up user")
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.GET("/api/auth/profile", func(c *gin.Context) {
			c.Set("auth.userID", int64(42))
			handler.Profile(c)
		})

		mockUsecase.On("Profile", mock.Anything, int64(42)).
			Return(&usecase.ProfileResponse{ID: 42, Name: "John Doe", Email: "john@example.com"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"name":"John Doe","email":"john@example.com"}`, w.Body.String())
	})

	t.Run("Missing Identity", func(t *testing.T) {
		r, handler, _ := setupAuthTest(t)
		r.GET("/api/auth/profile", handler.Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
