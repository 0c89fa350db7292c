package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"elderlyze-backend/internal/sos/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	lastUserID   string
	lastLocation string
	lastReason   string
	lastMessage  string
	result       domain.DispatchResult
}

func (f *fakeDispatcher) Dispatch(_ context.Context, userID, location, reason, customMessage string, _ *domain.LocationDetails) domain.DispatchResult {
	f.lastUserID = userID
	f.lastLocation = location
	f.lastReason = reason
	f.lastMessage = customMessage
	return f.result
}

type fakeAlertRepo struct {
	alerts []domain.Alert
	err    error
}

func (f *fakeAlertRepo) Save(_ context.Context, _ string, _ domain.Alert) (string, error) {
	return "", nil
}

func (f *fakeAlertRepo) ListRecent(_ context.Context, _ string, limit int) ([]domain.Alert, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.alerts) > limit {
		return f.alerts[:limit], nil
	}
	return f.alerts, nil
}

type fakeActivityRepo struct {
	touchedType    string
	touchedDetails map[string]any
}

func (f *fakeActivityRepo) Get(_ context.Context, _ string) (*domain.Activity, error) { return nil, nil }
func (f *fakeActivityRepo) RearmAutoSOS(_ context.Context, _ string) error            { return nil }
func (f *fakeActivityRepo) Touch(_ context.Context, _, activityType string, details map[string]any) error {
	f.touchedType = activityType
	f.touchedDetails = details
	return nil
}

func newTestRouter(h *SosHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := func(c *gin.Context) { c.Set("userID", "user1") }
	r.POST("/api/sos/trigger", authed, h.TriggerSOS)
	r.GET("/api/sos/history", authed, h.GetHistory)
	r.POST("/api/activity/update", authed, h.UpdateActivity)
	return r
}

func TestTriggerSOSAppliesDefaults(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.DispatchResult{
		Success:          true,
		ContactsNotified: 2,
		TotalContacts:    2,
		Summary:          domain.Summary{Total: 2, Successful: 2},
	}}
	r := newTestRouter(NewSosHandler(dispatcher, &fakeAlertRepo{}, &fakeActivityRepo{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sos/trigger", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user1", dispatcher.lastUserID)
	require.Equal(t, "Location unavailable", dispatcher.lastLocation)
	require.Equal(t, "Manual SOS trigger", dispatcher.lastReason)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Equal(t, "SOS email alert sent successfully", body["message"])
	require.EqualValues(t, 2, body["contactsNotified"])
}

func TestTriggerSOSReportsFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.DispatchResult{
		Success: false,
		Message: "No email contacts found",
	}}
	r := newTestRouter(NewSosHandler(dispatcher, &fakeAlertRepo{}, &fakeActivityRepo{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sos/trigger", strings.NewReader(`{"location":"40.7, -74.0"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "40.7, -74.0", dispatcher.lastLocation)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "No email contacts found", body["message"])
}

func TestGetHistoryReturnsAlerts(t *testing.T) {
	alerts := &fakeAlertRepo{alerts: []domain.Alert{
		{ID: "a2", Reason: "Manual SOS trigger", TriggeredAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
		{ID: "a1", Reason: "No activity detected for 5 hours", TriggeredAt: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)},
	}}
	r := newTestRouter(NewSosHandler(&fakeDispatcher{}, alerts, &fakeActivityRepo{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sos/history", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Alerts  []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Len(t, body.Alerts, 2)
	require.Equal(t, "a2", body.Alerts[0].ID)
}

func TestGetHistoryEmptyIsAnArray(t *testing.T) {
	r := newTestRouter(NewSosHandler(&fakeDispatcher{}, &fakeAlertRepo{}, &fakeActivityRepo{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sos/history", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"alerts":[]`)
}

func TestUpdateActivity(t *testing.T) {
	activity := &fakeActivityRepo{}
	r := newTestRouter(NewSosHandler(&fakeDispatcher{}, &fakeAlertRepo{}, activity))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/activity/update", strings.NewReader(`{"type":"mood_checkin","details":{"mood":"good"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "mood_checkin", activity.touchedType)
	require.Equal(t, map[string]any{"mood": "good"}, activity.touchedDetails)
}
