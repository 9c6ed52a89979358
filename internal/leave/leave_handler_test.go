package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	submitFn        func(ctx context.Context, empID int, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id int) (leave.LeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, empID int) ([]leave.LeaveResponse, error)
	hasPendingFn    func(ctx context.Context) (bool, error)
	reviewFn        func(ctx context.Context, id int, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error)
	applyCounterFn  func(ctx context.Context, id int) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, empID int, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if f.submitFn != nil {
		return f.submitFn(ctx, empID, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveService) GetByID(ctx context.Context, id int) (leave.LeaveResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) GetByEmployee(ctx context.Context, empID int) ([]leave.LeaveResponse, error) {
	if f.getByEmployeeFn != nil {
		return f.getByEmployeeFn(ctx, empID)
	}
	return nil, nil
}

func (f *fakeLeaveService) HasPending(ctx context.Context) (bool, error) {
	if f.hasPendingFn != nil {
		return f.hasPendingFn(ctx)
	}
	return false, nil
}

func (f *fakeLeaveService) Review(ctx context.Context, id int, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if f.reviewFn != nil {
		return f.reviewFn(ctx, id, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) ApplyCounter(ctx context.Context, id int) (leave.LeaveResponse, error) {
	if f.applyCounterFn != nil {
		return f.applyCounterFn(ctx, id)
	}
	return leave.LeaveResponse{}, nil
}

func setupLeaveRouter(svc leave.Service, empID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("emp_id", empID)
		c.Set("role", role)
	})

	handler := leave.NewHandler(svc)
	router.POST("/leaves", handler.Submit)
	router.GET("/leaves", handler.GetAll)
	router.GET("/leaves/isAny", handler.HasPending)
	router.GET("/leaves/employee/:empId", handler.GetByEmployee)
	router.GET("/leaves/:id", handler.GetById)
	router.PUT("/leaves/:id", handler.Review)
	router.PUT("/leaves/update/:id", handler.ApplyCounter)
	return router
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.submitFn = func(ctx context.Context, empID int, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, 7, empID)
			assert.Equal(t, "2026-03-02", req.StartDate)
			return leave.LeaveResponse{RequestID: 1, EmpID: empID, NoOfDays: 4, Status: leave.StatusPending}, nil
		}
		router := setupLeaveRouter(svc, 7, rbac.RoleEmployee)

		body, _ := json.Marshal(leave.SubmitLeaveRequest{
			StartDate: "2026-03-02",
			EndDate:   "2026-03-06",
			Reason:    "Family event",
		})
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, true, res["ok"])
		data := res["data"].(map[string]any)
		assert.Equal(t, float64(4), data["no_of_days"])
	})

	t.Run("negative missing dates", func(t *testing.T) {
		router := setupLeaveRouter(&fakeLeaveService{}, 7, rbac.RoleEmployee)

		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString(`{"reason":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.submitFn = func(ctx context.Context, empID int, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
		router := setupLeaveRouter(svc, 7, rbac.RoleEmployee)

		body, _ := json.Marshal(leave.SubmitLeaveRequest{StartDate: "2026-03-02", EndDate: "2026-03-03"})
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_GetByEmployee(t *testing.T) {
	t.Run("success own history", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.getByEmployeeFn = func(ctx context.Context, empID int) ([]leave.LeaveResponse, error) {
			assert.Equal(t, 7, empID)
			return []leave.LeaveResponse{{RequestID: 1, EmpID: 7}}, nil
		}
		router := setupLeaveRouter(svc, 7, rbac.RoleEmployee)

		req := httptest.NewRequest(http.MethodGet, "/leaves/employee/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("success HR reads anyone", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.getByEmployeeFn = func(ctx context.Context, empID int) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{}, nil
		}
		router := setupLeaveRouter(svc, 3, rbac.RoleHR)

		req := httptest.NewRequest(http.MethodGet, "/leaves/employee/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative employee reading someone else", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.getByEmployeeFn = func(ctx context.Context, empID int) ([]leave.LeaveResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		}
		router := setupLeaveRouter(svc, 7, rbac.RoleEmployee)

		req := httptest.NewRequest(http.MethodGet, "/leaves/employee/8", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_Review(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.reviewFn = func(ctx context.Context, id int, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, 42, id)
			assert.Equal(t, leave.StatusApproved, req.Status)
			return leave.LeaveResponse{RequestID: id, Status: req.Status}, nil
		}
		router := setupLeaveRouter(svc, 3, rbac.RoleHR)

		body, _ := json.Marshal(leave.ReviewLeaveRequest{Status: leave.StatusApproved})
		req := httptest.NewRequest(http.MethodPut, "/leaves/42", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative invalid status value", func(t *testing.T) {
		router := setupLeaveRouter(&fakeLeaveService{}, 3, rbac.RoleHR)

		req := httptest.NewRequest(http.MethodPut, "/leaves/42", bytes.NewBufferString(`{"status":"Maybe"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		router := setupLeaveRouter(&fakeLeaveService{}, 3, rbac.RoleHR)

		body, _ := json.Marshal(leave.ReviewLeaveRequest{Status: leave.StatusApproved})
		req := httptest.NewRequest(http.MethodPut, "/leaves/abc", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_ApplyCounter(t *testing.T) {
	t.Run("negative already applied maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{}
		svc.applyCounterFn = func(ctx context.Context, id int) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrCounterAlreadyApplied
		}
		router := setupLeaveRouter(svc, 3, rbac.RoleHR)

		req := httptest.NewRequest(http.MethodPut, "/leaves/update/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_HasPending(t *testing.T) {
	svc := &fakeLeaveService{}
	svc.hasPendingFn = func(ctx context.Context) (bool, error) {
		return true, nil
	}
	router := setupLeaveRouter(svc, 3, rbac.RoleHR)

	req := httptest.NewRequest(http.MethodGet, "/leaves/isAny", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, true, res["data"].(map[string]any)["hasPending"])
}
