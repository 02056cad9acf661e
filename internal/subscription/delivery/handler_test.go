package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photoblog-backend/internal/subscription/domain"
	"photoblog-backend/internal/subscription/usecase"
)

type mockSubscriptionUsecase struct {
	mock.Mock
}

func (m *mockSubscriptionUsecase) Subscribe(email, firstName, lastName string) usecase.Result {
	args := m.Called(email, firstName, lastName)
	return args.Get(0).(usecase.Result)
}

func (m *mockSubscriptionUsecase) UnsubscribeByEmail(email string) usecase.Result {
	args := m.Called(email)
	return args.Get(0).(usecase.Result)
}

func (m *mockSubscriptionUsecase) UnsubscribeByToken(token string) usecase.Result {
	args := m.Called(token)
	return args.Get(0).(usecase.Result)
}

func (m *mockSubscriptionUsecase) Stats() domain.Stats {
	args := m.Called()
	return args.Get(0).(domain.Stats)
}

func (m *mockSubscriptionUsecase) ListSubscribers(activeOnly bool) ([]usecase.SubscriberView, error) {
	args := m.Called(activeOnly)
	if views := args.Get(0); views != nil {
		return views.([]usecase.SubscriberView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionUsecase) ExportCSV() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockSubscriptionUsecase) RemoveSubscriber(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockSubscriptionUsecase) NotifyOfNewPost(ctx context.Context, post domain.PostRef) domain.DispatchResult {
	args := m.Called(ctx, post)
	return args.Get(0).(domain.DispatchResult)
}

func setupRouter(uc usecase.SubscriptionUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSubscriptionHandler(uc)
	r.POST("/api/subscribe", h.Subscribe)
	r.GET("/unsubscribe", h.Unsubscribe)
	r.GET("/api/admin/subscribers", h.ListSubscribers)
	r.GET("/api/admin/subscribers/stats", h.GetStats)
	r.GET("/api/admin/subscribers/export", h.ExportCSV)
	r.DELETE("/api/admin/subscribers/:id", h.RemoveSubscriber)
	return r
}

func TestSubscribeEndpoint_Success(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("Subscribe", "jane@example.com", "Jane", "").Return(usecase.Result{
		Success: true,
		Message: usecase.MsgSubscribed,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	body := `{"email":"jane@example.com","first_name":"Jane"}`
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp usecase.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, usecase.MsgSubscribed, resp.Message)
}

func TestSubscribeEndpoint_InvalidEmail(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("Subscribe", "nope", "", "").Return(usecase.Result{
		Success: false,
		Message: usecase.MsgInvalidEmail,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeEndpoint_MissingBody(t *testing.T) {
	uc := new(mockSubscriptionUsecase)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnsubscribeEndpoint_TokenSuccessRendersHTML(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("UnsubscribeByToken", "tok-1").Return(usecase.Result{
		Success: true,
		Message: usecase.MsgUnsubscribed,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?token=tok-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), usecase.MsgUnsubscribed)
}

func TestUnsubscribeEndpoint_EmailParam(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("UnsubscribeByEmail", "jane@example.com").Return(usecase.Result{
		Success: true,
		Message: usecase.MsgAlreadyGone,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=jane%40example.com", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), usecase.MsgAlreadyGone)
	uc.AssertNotCalled(t, "UnsubscribeByToken", mock.Anything)
}

func TestUnsubscribeEndpoint_NoParams(t *testing.T) {
	uc := new(mockSubscriptionUsecase)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid unsubscribe link")
}

func TestUnsubscribeEndpoint_UnknownToken(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("UnsubscribeByToken", "missing").Return(usecase.Result{
		Success: false,
		Message: usecase.MsgNotFound,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?token=missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnsubscribeEndpoint_StoreFailure(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("UnsubscribeByToken", "tok-1").Return(usecase.Result{
		Success: false,
		Message: usecase.MsgUnsubscribeFailed,
	})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?token=tok-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListSubscribersEndpoint(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("ListSubscribers", true).Return([]usecase.SubscriberView{
		{ID: "1", Email: "a@example.com", IsActive: true},
	}, nil)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers?active=true", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subscribers []usecase.SubscriberView `json:"subscribers"`
		Total       int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Subscribers, 1)
	assert.Equal(t, "a@example.com", resp.Subscribers[0].Email)
}

func TestGetStatsEndpoint(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("Stats").Return(domain.Stats{Total: 5, Active: 4})

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":5,"active":4}`, w.Body.String())
}

func TestExportCSVEndpoint(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("ExportCSV").Return("Email,First Name,Last Name,Subscribed Date,Status\n", nil)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "subscribers-")
	assert.Contains(t, w.Body.String(), "Email,First Name")
}

func TestRemoveSubscriberEndpoint_NotFound(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("RemoveSubscriber", "missing").Return(domain.ErrSubscriberNotFound)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/subscribers/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveSubscriberEndpoint_Success(t *testing.T) {
	uc := new(mockSubscriptionUsecase)
	uc.On("RemoveSubscriber", "sub-1").Return(nil)

	r := setupRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/subscribers/sub-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
