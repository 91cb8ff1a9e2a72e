package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware_WithValidCookie(t *testing.T) {
	m := NewAuthMiddleware("test-secret")

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		id, ok := GetCustomerIDFromContext(r.Context())
		if !ok {
			t.Fatalf("customer id not in context")
		}
		if id != "C1" {
			t.Fatalf("customer id from context = %q, want C1", id)
		}
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)

	m.SetAuthCookie(w, "C1")
	res := w.Result()
	resCookies := res.Cookies()
	if len(resCookies) == 0 {
		t.Fatalf("no cookies set by SetAuthCookie")
	}

	r.AddCookie(resCookies[0])

	handler := m.Middleware(next)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if !nextCalled {
		t.Fatalf("next handler was not called")
	}
}

func TestAuthMiddleware_WithoutCookie(t *testing.T) {
	m := NewAuthMiddleware("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not be called")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)

	handler := m.Middleware(next)
	handler.ServeHTTP(w, r)

	res := w.Result()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_TamperedCookie(t *testing.T) {
	m := NewAuthMiddleware("test-secret")
	other := NewAuthMiddleware("other-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not be called")
	})

	rec := httptest.NewRecorder()
	other.SetAuthCookie(rec, "C1")
	foreign := rec.Result().Cookies()[0]

	values := []string{
		foreign.Value,
		"C1",
		"C1.",
		".deadbeef",
		"C2." + m.sign("C1"),
	}

	for _, v := range values {
		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.AddCookie(&http.Cookie{Name: authCookieName, Value: v})
		w := httptest.NewRecorder()

		m.Middleware(next).ServeHTTP(w, r)

		if w.Result().StatusCode != http.StatusUnauthorized {
			t.Fatalf("cookie %q: status = %d, want %d", v, w.Result().StatusCode, http.StatusUnauthorized)
		}
	}
}
