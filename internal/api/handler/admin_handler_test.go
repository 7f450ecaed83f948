package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

type stubAccountService struct {
	providers []*domain.User
	approved  []string
	deleted   []string
	err       error
}

func (s *stubAccountService) ListProviders(context.Context) ([]*domain.User, error) {
	return s.providers, s.err
}

func (s *stubAccountService) Approve(_ context.Context, id string) error {
	s.approved = append(s.approved, id)
	return s.err
}

func (s *stubAccountService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubAccountService) Bootstrap(context.Context, []domain.SeedAdmin) (int, error) {
	return 0, s.err
}

func paramContext(method, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := newTestEcho()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestAdminHandler_ListDoctors_OmitsPassword(t *testing.T) {
	stub := &stubAccountService{providers: []*domain.User{{
		ID:           "65f0c0ffee0000000000beef",
		Username:     "doc",
		Email:        "doc@example.com",
		PasswordHash: []byte("digest"),
		Role:         domain.RoleProvider,
		HospitalName: "General",
	}}}

	c, rec := paramContext(http.MethodGet, "")
	if err := NewAdminHandler(stub).ListDoctors(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected one provider, got %d", len(resp))
	}
	if resp[0]["_id"] != "65f0c0ffee0000000000beef" || resp[0]["approved"] != false {
		t.Fatalf("unexpected payload: %+v", resp[0])
	}
	for _, key := range []string{"password", "PasswordHash", "password_hash"} {
		if _, ok := resp[0][key]; ok {
			t.Fatalf("credential field %q leaked", key)
		}
	}
}

func TestAdminHandler_Approve(t *testing.T) {
	stub := &stubAccountService{}
	c, rec := paramContext(http.MethodPut, "abc")

	if err := NewAdminHandler(stub).Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.approved) != 1 || stub.approved[0] != "abc" {
		t.Fatalf("unexpected result: %d %v", rec.Code, stub.approved)
	}
}

func TestAdminHandler_ApproveNotFound(t *testing.T) {
	stub := &stubAccountService{err: domain.ErrNotFoundOrApproved}
	c, _ := paramContext(http.MethodPut, "abc")

	if err := NewAdminHandler(stub).Approve(c); !errors.Is(err, domain.ErrNotFoundOrApproved) {
		t.Fatalf("expected ErrNotFoundOrApproved, got %v", err)
	}
}

func TestAdminHandler_Delete(t *testing.T) {
	stub := &stubAccountService{}
	c, rec := paramContext(http.MethodDelete, "abc")

	if err := NewAdminHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.deleted) != 1 {
		t.Fatalf("unexpected result: %d %v", rec.Code, stub.deleted)
	}

	stub.err = domain.ErrProviderNotFound
	c, _ = paramContext(http.MethodDelete, "abc")
	if err := NewAdminHandler(stub).Delete(c); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}
