package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchbooks/reviewd/internal/application/service"
	"github.com/branchbooks/reviewd/internal/domain/entity"
	"github.com/branchbooks/reviewd/internal/domain/review"
)

const testSecret = "test-secret"

type mockReviewService struct {
	reviewFunc func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error)
	calls      int
}

func (m *mockReviewService) ReviewRecord(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
	m.calls++
	if m.reviewFunc != nil {
		return m.reviewFunc(ctx, kind, id, actor, state, observations)
	}
	return &service.ReviewResult{Record: &entity.Expense{ID: id, State: state, ReviewObservations: observations}}, nil
}

type mockQueryService struct {
	pendingFunc func(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error)
	byStateFunc func(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error)
	historyFunc func(ctx context.Context, kind review.Kind, actor review.Actor, recordID string) ([]*review.AuditEntry, error)
}

func (m *mockQueryService) PendingReview(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error) {
	if m.pendingFunc != nil {
		return m.pendingFunc(ctx, kind, actor, skip, limit)
	}
	return nil, nil
}

func (m *mockQueryService) ByReviewState(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error) {
	if m.byStateFunc != nil {
		return m.byStateFunc(ctx, kind, actor, rawState, skip, limit)
	}
	return nil, nil
}

func (m *mockQueryService) ReviewHistory(ctx context.Context, kind review.Kind, actor review.Actor, recordID string) ([]*review.AuditEntry, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, kind, actor, recordID)
	}
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestServer(reviewSvc service.ReviewService, querySvc service.QueryService) *Server {
	return NewServer(
		ServerConfig{Host: "127.0.0.1", Port: 0},
		reviewSvc,
		querySvc,
		NewJWTVerifier(testSecret),
		PagingConfig{DefaultLimit: 100, MaxLimit: 1000},
		nopLogger{},
	)
}

func signToken(t *testing.T, subject string, isAdmin bool) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"admin": isAdmin,
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUpdateReview_MissingToken(t *testing.T) {
	reviewSvc := &mockReviewService{}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review", "",
		`{"review_state":"approved"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, reviewSvc.calls)
}

func TestUpdateReview_InvalidToken(t *testing.T) {
	srv := newTestServer(&mockReviewService{}, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review", "not-a-jwt",
		`{"review_state":"approved"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateReview_NonAdminForbidden(t *testing.T) {
	reviewSvc := &mockReviewService{
		reviewFunc: func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
			assert.False(t, actor.Admin)
			assert.Equal(t, "user-1", actor.ID)
			return nil, review.ErrForbidden
		},
	}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "user-1", false), `{"review_state":"approved"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestUpdateReview_Success(t *testing.T) {
	var gotState review.State
	var gotObs *string
	reviewSvc := &mockReviewService{
		reviewFunc: func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
			assert.Equal(t, review.KindExpense, kind)
			assert.Equal(t, "E1", id)
			assert.True(t, actor.Admin)
			gotState = state
			gotObs = observations
			return &service.ReviewResult{
				Record: &entity.Expense{ID: id, State: state, ReviewObservations: observations},
			}, nil
		},
	}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "admin-1", true), `{"review_state":"approved","review_observations":"ok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, review.StateApproved, gotState)
	require.NotNil(t, gotObs)
	assert.Equal(t, "ok", *gotObs)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Warning)
}

func TestUpdateReview_AuditWarningSurfaced(t *testing.T) {
	reviewSvc := &mockReviewService{
		reviewFunc: func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
			return &service.ReviewResult{
				Record:       &entity.Expense{ID: id, State: state},
				AuditWarning: review.ErrAuditWriteFailed,
			}, nil
		},
	}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "admin-1", true), `{"review_state":"approved"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Warning, "audit write failed")
}

func TestUpdateReview_InvalidStateNamesValue(t *testing.T) {
	reviewSvc := &mockReviewService{}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "admin-1", true), `{"review_state":"Approved"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Error, "Approved")
	// The engine is never reached with an unparsed state
	assert.Equal(t, 0, reviewSvc.calls)
}

func TestUpdateReview_MissingStateField(t *testing.T) {
	srv := newTestServer(&mockReviewService{}, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "admin-1", true), `{"review_observations":"no state"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReview_UnknownKind(t *testing.T) {
	srv := newTestServer(&mockReviewService{}, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/invoices/E1/review",
		signToken(t, "admin-1", true), `{"review_state":"approved"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateReview_NotFound(t *testing.T) {
	reviewSvc := &mockReviewService{
		reviewFunc: func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
			return nil, review.ErrNotFound
		},
	}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/missing/review",
		signToken(t, "admin-1", true), `{"review_state":"rejected"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateReview_StorageError(t *testing.T) {
	reviewSvc := &mockReviewService{
		reviewFunc: func(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*service.ReviewResult, error) {
			return nil, review.ErrStorage
		},
	}
	srv := newTestServer(reviewSvc, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodPatch, "/api/expense/E1/review",
		signToken(t, "admin-1", true), `{"review_state":"approved"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListPendingReview_PaginationClamped(t *testing.T) {
	var gotSkip, gotLimit int
	querySvc := &mockQueryService{
		pendingFunc: func(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error) {
			gotSkip, gotLimit = skip, limit
			return []review.Reviewable{&entity.PayrollEntry{ID: "P1", State: review.StatePending}}, nil
		},
	}
	srv := newTestServer(&mockReviewService{}, querySvc)

	rec := doRequest(t, srv, http.MethodGet,
		"/api/payroll/pending-review?skip=-3&limit=5000", signToken(t, "admin-1", true), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, gotSkip)
	assert.Equal(t, 1000, gotLimit)
}

func TestListPendingReview_DefaultLimit(t *testing.T) {
	var gotLimit int
	querySvc := &mockQueryService{
		pendingFunc: func(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	srv := newTestServer(&mockReviewService{}, querySvc)

	rec := doRequest(t, srv, http.MethodGet, "/api/payroll/pending-review",
		signToken(t, "admin-1", true), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, gotLimit)
}

func TestListByReviewState_BogusState(t *testing.T) {
	querySvc := &mockQueryService{
		byStateFunc: func(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error) {
			return nil, &review.InvalidStateError{Value: rawState}
		},
	}
	srv := newTestServer(&mockReviewService{}, querySvc)

	rec := doRequest(t, srv, http.MethodGet, "/api/sales/review/bogus",
		signToken(t, "admin-1", true), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Error, "bogus")
}

func TestListByReviewState_Success(t *testing.T) {
	querySvc := &mockQueryService{
		byStateFunc: func(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error) {
			assert.Equal(t, review.KindSales, kind)
			assert.Equal(t, "rejected", rawState)
			return []review.Reviewable{
				&entity.SalesRecord{ID: "S1", State: review.StateRejected},
				&entity.SalesRecord{ID: "S3", State: review.StateRejected},
			}, nil
		},
	}
	srv := newTestServer(&mockReviewService{}, querySvc)

	rec := doRequest(t, srv, http.MethodGet, "/api/sales/review/rejected",
		signToken(t, "admin-1", true), "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestReviewHistory_Success(t *testing.T) {
	querySvc := &mockQueryService{
		historyFunc: func(ctx context.Context, kind review.Kind, actor review.Actor, recordID string) ([]*review.AuditEntry, error) {
			assert.Equal(t, review.KindExpense, kind)
			assert.Equal(t, "E1", recordID)
			return []*review.AuditEntry{
				{RecordKind: kind, RecordID: recordID, PreviousState: review.StatePending, NewState: review.StateApproved, ReviewedBy: "admin-1"},
			}, nil
		},
	}
	srv := newTestServer(&mockReviewService{}, querySvc)

	rec := doRequest(t, srv, http.MethodGet, "/api/expense/E1/review/history",
		signToken(t, "admin-1", true), "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(&mockReviewService{}, &mockQueryService{})

	rec := doRequest(t, srv, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}
