package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/auth"
)

type memStore struct {
	employees []appraisal.Employee
}

func (m *memStore) Load(ctx context.Context) ([]appraisal.Employee, error) {
	return m.employees, nil
}

func (m *memStore) Replace(ctx context.Context, employees []appraisal.Employee) error {
	m.employees = employees
	return nil
}

func newTestHandler(t *testing.T, employees []appraisal.Employee) *Handler {
	t.Helper()
	hash, err := auth.HashPassword("123")
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	service := appraisal.NewService(&memStore{employees: employees})
	return NewHandler(service, "test-secret", time.Minute, "admin", hash)
}

func postLogin(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)
	return rec
}

func decodeIdentity(t *testing.T, rec *httptest.ResponseRecorder) (string, auth.Identity) {
	t.Helper()
	var envelope struct {
		Data struct {
			Token    string        `json:"token"`
			Identity auth.Identity `json:"identity"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return envelope.Data.Token, envelope.Data.Identity
}

func TestLoginAdmin(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postLogin(t, handler, `{"username":"admin","password":"123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	token, identity := decodeIdentity(t, rec)
	if identity.Role != appraisal.RoleAdmin || identity.EmployeeID != "" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	claims, err := auth.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != appraisal.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginAdminWrongPassword(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postLogin(t, handler, `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginEmployeeByName(t *testing.T) {
	handler := newTestHandler(t, []appraisal.Employee{
		{ID: "emp_1", Name: "Sara", Position: "Analyst"},
	})

	rec := postLogin(t, handler, `{"username":"Sara","password":"anything"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	_, identity := decodeIdentity(t, rec)
	if identity.Role != appraisal.RoleEmployee || identity.EmployeeID != "emp_1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	handler := newTestHandler(t, []appraisal.Employee{
		{ID: "emp_1", Name: "Sara", Position: "Analyst"},
	})

	rec := postLogin(t, handler, `{"username":"Nobody","password":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postLogin(t, handler, `{"username":"","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
