package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrm/internal/auth"
	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	loginFn          func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	registerFn       func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error)
	changePasswordFn func(ctx context.Context, empID int, req auth.ChangePasswordRequest) error
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, req)
	}
	return auth.LoginResponse{}, nil
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return auth.RegisterResponse{}, nil
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, empID int, req auth.ChangePasswordRequest) error {
	if f.changePasswordFn != nil {
		return f.changePasswordFn(ctx, empID, req)
	}
	return nil
}

func setupAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := auth.NewHandler(svc)
	router.POST("/login", handler.Login)
	router.POST("/register", handler.Register)
	router.POST("/changepass", func(c *gin.Context) {
		c.Set("emp_id", 7)
		handler.ChangePassword(c)
	})
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets access token cookie", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.loginFn = func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
			assert.Equal(t, "asha@corp.test", req.Email)
			return auth.LoginResponse{
				Token:       "jwt-token",
				EmpID:       3,
				Name:        "Asha",
				Designation: "HR",
				Role:        rbac.RoleHR,
			}, nil
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.LoginRequest{Email: "asha@corp.test", Password: "secret123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "jwt-token", cookies[0].Value)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]any)
		assert.Equal(t, "jwt-token", data["token"])
		assert.Equal(t, rbac.RoleHR, data["role"])
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.loginFn = func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
			return auth.LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.LoginRequest{Email: "asha@corp.test", Password: "bad"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative malformed email", func(t *testing.T) {
		router := setupAuthRouter(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"not-an-email","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.registerFn = func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
			return auth.RegisterResponse{EmpID: 11, Name: req.Name, Email: req.Email, Role: rbac.RoleEmployee}, nil
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.RegisterRequest{
			Name:        "New Hire",
			Email:       "new@corp.test",
			Password:    "secret123",
			Department:  "Engineering",
			Designation: "Engineer",
		})
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.registerFn = func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
			return auth.RegisterResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.RegisterRequest{
			Name:        "Dup",
			Email:       "dup@corp.test",
			Password:    "secret123",
			Department:  "Engineering",
			Designation: "Engineer",
		})
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthRoutes_RegisterIsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{}
	svc.registerFn = func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
		return auth.RegisterResponse{EmpID: 1, Name: req.Name, Email: req.Email, Role: rbac.RoleHR}, nil
	}

	router := gin.New()
	auth.RegisterRoutes(router.Group("/api/v1"), auth.NewHandler(svc))

	body, _ := json.Marshal(auth.RegisterRequest{
		Name:        "First Admin",
		Email:       "admin@corp.test",
		Password:    "secret123",
		Department:  "People",
		Designation: "HR",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// No token on the request: a fresh install must be able to create its
	// first account.
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("success uses actor from context", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.changePasswordFn = func(ctx context.Context, empID int, req auth.ChangePasswordRequest) error {
			assert.Equal(t, 7, empID)
			return nil
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.ChangePasswordRequest{OldPassword: "oldpass", NewPassword: "newpass1"})
		req := httptest.NewRequest(http.MethodPost, "/changepass", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative wrong old password", func(t *testing.T) {
		svc := &fakeAuthService{}
		svc.changePasswordFn = func(ctx context.Context, empID int, req auth.ChangePasswordRequest) error {
			return autherrors.ErrWrongOldPassword
		}
		router := setupAuthRouter(svc)

		body, _ := json.Marshal(auth.ChangePasswordRequest{OldPassword: "bad", NewPassword: "newpass1"})
		req := httptest.NewRequest(http.MethodPost, "/changepass", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
