//go:build unit

package auth

import (
	"context"
	"net/http"
	"testing"
)

// mockSessionManager is a map-backed stand-in for the scs session
// manager.
type mockSessionManager struct {
	values    map[string]interface{}
	destroyed bool
}

func newMockSessionManager() *mockSessionManager {
	return &mockSessionManager{values: make(map[string]interface{})}
}

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }

func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.values[key] = val
}

func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockSessionManager) Exists(ctx context.Context, key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.values = make(map[string]interface{})
	m.destroyed = true
	return nil
}

func (m *mockSessionManager) Remove(ctx context.Context, key string) {
	delete(m.values, key)
}

func TestGateLoginCorrectPassword(t *testing.T) {
	sm := newMockSessionManager()
	gate := NewGate("hunter2", sm)
	ctx := context.Background()

	if !gate.Login(ctx, "hunter2") {
		t.Fatal("expected login to succeed with the correct password")
	}
	if !gate.LoggedIn(ctx) {
		t.Error("expected the session to be logged in")
	}
	if got := Subject(ctx, sm); got != SubjectAdmin {
		t.Errorf("Subject = %q, want %q", got, SubjectAdmin)
	}
}

func TestGateLoginWrongPassword(t *testing.T) {
	sm := newMockSessionManager()
	gate := NewGate("hunter2", sm)
	ctx := context.Background()

	if gate.Login(ctx, "letmein") {
		t.Fatal("expected login to fail with a wrong password")
	}
	if gate.LoggedIn(ctx) {
		t.Error("expected the session to stay logged out")
	}
	if got := Subject(ctx, sm); got != SubjectAnonymous {
		t.Errorf("Subject = %q, want %q", got, SubjectAnonymous)
	}
}

func TestGateLoginEmptyPassword(t *testing.T) {
	sm := newMockSessionManager()
	gate := NewGate("hunter2", sm)

	if gate.Login(context.Background(), "") {
		t.Fatal("expected login to fail with an empty password")
	}
}

func TestGateLogoutDestroysSession(t *testing.T) {
	sm := newMockSessionManager()
	gate := NewGate("hunter2", sm)
	ctx := context.Background()

	gate.Login(ctx, "hunter2")
	if err := gate.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if gate.LoggedIn(ctx) {
		t.Error("expected the session to be logged out")
	}
	if !sm.destroyed {
		t.Error("expected the whole session to be destroyed, not just the flag removed")
	}
}
