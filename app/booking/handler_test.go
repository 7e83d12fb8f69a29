package booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
)

// --- Mock Repos ---

type MockServiceRepo struct {
	Services []models.Service
	Err      error

	calls     int
	lastOrder models.ServiceOrder
}

func (m *MockServiceRepo) List(ctx context.Context, order models.ServiceOrder) ([]models.Service, error) {
	m.calls++
	m.lastOrder = order
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Services, nil
}

type MockBookingRepo struct {
	Err error

	created []models.Booking
}

func (m *MockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if m.Err != nil {
		return m.Err
	}
	b.ID = uint(len(m.created) + 1)
	m.created = append(m.created, *b)
	return nil
}

// --- Helpers ---

func sampleServices() []models.Service {
	return []models.Service{
		{ID: 2, Name: "Co-Working Desk", BasePrice: decimal.NewFromInt(15)},
		{ID: 1, Name: "Studio", BasePrice: decimal.NewFromInt(40)},
	}
}

func newTestHandler(t *testing.T, services *MockServiceRepo, bookings *MockBookingRepo) *BookingHandler {
	t.Helper()
	rn, err := web.NewRenderer()
	require.NoError(t, err)
	flashes := web.NewFlashStore("test-secret", "test_session", false)
	return NewBookingHandler(services, bookings, flashes, rn)
}

func postForm(values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func validValues() url.Values {
	return url.Values{
		"full_name":      {"Jane Doe"},
		"email":          {"jane@x.com"},
		"phone_number":   {"0700000000"},
		"service_id":     {"2"},
		"plan_type":      {"hourly"},
		"requested_date": {"2025-03-10"},
	}
}

// --- Tests ---

func TestHandlePost_Success(t *testing.T) {
	services := &MockServiceRepo{Services: sampleServices()}
	bookings := &MockBookingRepo{}
	handler := newTestHandler(t, services, bookings)

	values := validValues()
	values.Set("status", "confirmed")

	rec := httptest.NewRecorder()
	handler.HandlePost(rec, postForm(values))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/booking", rec.Header().Get("Location"))
	assert.Zero(t, services.calls, "no form re-render on success")

	require.Len(t, bookings.created, 1)
	b := bookings.created[0]
	assert.Equal(t, "Jane Doe", b.FullName)
	assert.Equal(t, "jane@x.com", b.Email)
	assert.Equal(t, uint(2), b.ServiceID)
	assert.Equal(t, "hourly", b.PlanType)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), b.RequestedDate)
	assert.Equal(t, models.BookingPending, b.Status, "client supplied status is ignored")
	assert.Empty(t, b.Message)
}

func TestHandlePost_FlashShownOnce(t *testing.T) {
	handler := newTestHandler(t, &MockServiceRepo{Services: sampleServices()}, &MockBookingRepo{})

	rec := httptest.NewRecorder()
	handler.HandlePost(rec, postForm(validValues()))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// first GET after the redirect shows the message
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	handler.HandleGet(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), successMessage)

	// the cleared session no longer carries it
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	req = httptest.NewRequest(http.MethodGet, "/booking", nil)
	for _, c := range cleared {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	handler.HandleGet(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), successMessage)
}

func TestHandlePost_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(v url.Values)
		wantMessage string
	}{
		{
			name:        "Missing phone",
			mutate:      func(v url.Values) { v.Del("phone_number") },
			wantMessage: "Please fill out all required fields.",
		},
		{
			name:        "Blank name",
			mutate:      func(v url.Values) { v.Set("full_name", "  ") },
			wantMessage: "Please fill out all required fields.",
		},
		{
			name:        "Slash date",
			mutate:      func(v url.Values) { v.Set("requested_date", "2024/01/01") },
			wantMessage: "Invalid date format. Please use YYYY-MM-DD.",
		},
		{
			name:        "Word date",
			mutate:      func(v url.Values) { v.Set("requested_date", "Jan 1") },
			wantMessage: "Invalid date format. Please use YYYY-MM-DD.",
		},
		{
			name:        "Non numeric service",
			mutate:      func(v url.Values) { v.Set("service_id", "desk") },
			wantMessage: "Please choose one of the listed services.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			services := &MockServiceRepo{Services: sampleServices()}
			bookings := &MockBookingRepo{}
			handler := newTestHandler(t, services, bookings)

			values := validValues()
			values.Set("message", "keep me")
			tc.mutate(values)

			rec := httptest.NewRecorder()
			handler.HandlePost(rec, postForm(values))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, bookings.created)
			assert.Equal(t, 1, services.calls, "form re-rendered with the service list")
			assert.Equal(t, models.ServiceOrderByName, services.lastOrder)

			body := rec.Body.String()
			assert.Contains(t, body, tc.wantMessage)
			assert.Contains(t, body, "Co-Working Desk")
			assert.Contains(t, body, "keep me", "submitted values are kept")
		})
	}
}

func TestHandlePost_KeepsUnlistedPlan(t *testing.T) {
	handler := newTestHandler(t, &MockServiceRepo{Services: sampleServices()}, &MockBookingRepo{})

	values := validValues()
	values.Set("plan_type", "monthly")
	values.Set("requested_date", "2025/03/10")

	rec := httptest.NewRecorder()
	handler.HandlePost(rec, postForm(values))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="monthly" selected>`)
	assert.Contains(t, body, `<option value="hourly" >`)
	assert.Equal(t, 1, strings.Count(body, "selected>Monthly"), "submitted plan offered once")
}

func TestPlanOptions(t *testing.T) {
	assert.Equal(t, PlanTypes, planOptions(""))
	assert.Equal(t, PlanTypes, planOptions("weekly"))
	assert.Equal(t, []string{"hourly", "halfday", "fullday", "weekly", "monthly"}, planOptions("monthly"))
	assert.Len(t, PlanTypes, 4, "the shared list is never appended to")
}

func TestHandlePost_StoreErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Unknown service",
			err:        &models.StoreError{Op: "create booking", Kind: models.KindNotFound, Err: models.ErrServiceNotFound},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Please choose one of the listed services.",
		},
		{
			name:       "Connection lost",
			err:        &models.StoreError{Op: "create booking", Kind: models.KindConnectionLost, Err: errors.New("conn reset")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   failureMessage,
		},
		{
			name:       "Timeout",
			err:        &models.StoreError{Op: "create booking", Kind: models.KindTimeout, Err: context.DeadlineExceeded},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   failureMessage,
		},
		{
			name:       "Constraint violation",
			err:        &models.StoreError{Op: "create booking", Kind: models.KindConstraintViolation, Err: errors.New("check failed")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   failureMessage,
		},
		{
			name:       "Unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   failureMessage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(t, &MockServiceRepo{Services: sampleServices()}, &MockBookingRepo{Err: tc.err})

			rec := httptest.NewRecorder()
			handler.HandlePost(rec, postForm(validValues()))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
			assert.NotContains(t, rec.Body.String(), "boom", "internal detail stays in the log")
		})
	}
}

func TestHandlePost_MalformedBody(t *testing.T) {
	bookings := &MockBookingRepo{}
	handler := newTestHandler(t, &MockServiceRepo{Services: sampleServices()}, bookings)

	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader("full_name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandlePost(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, bookings.created)
}

func TestHandleGet(t *testing.T) {
	t.Run("ListsServicesByName", func(t *testing.T) {
		services := &MockServiceRepo{Services: sampleServices()}
		handler := newTestHandler(t, services, &MockBookingRepo{})

		rec := httptest.NewRecorder()
		handler.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/booking", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.ServiceOrderByName, services.lastOrder)
		body := rec.Body.String()
		assert.Contains(t, body, "Co-Working Desk")
		assert.Contains(t, body, "15.00")
		for _, plan := range PlanTypes {
			assert.Contains(t, body, `value="`+plan+`"`)
		}
	})

	t.Run("PreselectsServiceFromQuery", func(t *testing.T) {
		handler := newTestHandler(t, &MockServiceRepo{Services: sampleServices()}, &MockBookingRepo{})

		rec := httptest.NewRecorder()
		handler.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/booking?service_id=1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<option value="1" selected>`)
	})

	t.Run("ServiceListFailure", func(t *testing.T) {
		handler := newTestHandler(t, &MockServiceRepo{Err: errors.New("db down")}, &MockBookingRepo{})

		rec := httptest.NewRecorder()
		handler.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/booking", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestFailureResponse(t *testing.T) {
	status, _ := failureResponse(models.KindUnknown)
	assert.Equal(t, http.StatusInternalServerError, status)
	status, _ = failureResponse("")
	assert.Equal(t, http.StatusInternalServerError, status)
}
