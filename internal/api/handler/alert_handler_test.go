package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/accounthub/account-service/internal/core/domain"
)

func TestAlertHandler_ListByUser(t *testing.T) {
	stub := &stubAlertService{
		listByUserFn: func(ctx context.Context, actor *domain.Claims, userID string) ([]*domain.Alert, error) {
			if userID != "c-1" {
				t.Fatalf("path param not forwarded: %q", userID)
			}
			return []*domain.Alert{{ID: "al-2", UserID: "c-1"}, {ID: "al-1", UserID: "c-1", Read: true}}, nil
		},
	}
	handler := NewAlertHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/alerts/user/c-1", "", &domain.Claims{UserID: "c-1"})
	c.SetParamNames("userId")
	c.SetParamValues("c-1")

	if err := handler.ListByUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []alertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "al-2" || !resp[1].Read {
		t.Fatalf("unexpected alerts: %+v", resp)
	}
}

func TestAlertHandler_ListAll_EmptyIsArray(t *testing.T) {
	stub := &stubAlertService{
		listAllFn: func(ctx context.Context) ([]*domain.Alert, error) { return nil, nil },
	}
	handler := NewAlertHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/alerts", "", &domain.Claims{UserID: "e-1"})
	if err := handler.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestAlertHandler_MarkRead(t *testing.T) {
	calls := 0
	stub := &stubAlertService{
		markReadFn: func(ctx context.Context, actor *domain.Claims, alertID string) error {
			calls++
			if alertID == "missing" {
				return domain.ErrAlertNotFound
			}
			return nil
		},
	}
	handler := NewAlertHandler(stub)

	for i := 0; i < 2; i++ {
		c, rec := newContext(http.MethodPut, "/api/alerts/al-1/read", "", &domain.Claims{UserID: "c-1"})
		c.SetParamNames("alertId")
		c.SetParamValues("al-1")
		if err := handler.MarkRead(c); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	c, _ := newContext(http.MethodPut, "/api/alerts/missing/read", "", &domain.Claims{UserID: "c-1"})
	c.SetParamNames("alertId")
	c.SetParamValues("missing")
	if err := handler.MarkRead(c); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 service calls, got %d", calls)
	}
}
