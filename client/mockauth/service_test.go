package mockauth

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSignUpAndLogin(t *testing.T) {
	svc := NewService(NewMemoryStore())

	session, err := svc.SignUp("Siti@Example.com", "secret123", UserTypeTrainee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Email != "siti@example.com" || session.UserType != UserTypeTrainee {
		t.Fatalf("unexpected session: %+v", session)
	}

	// Sign-up logs the account in.
	current, err := svc.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Email != "siti@example.com" {
		t.Fatalf("unexpected current session: %+v", current)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if _, err := svc.Login("siti@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("siti@example.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := NewService(NewMemoryStore())

	if _, err := svc.SignUp("not-an-email", "secret123", UserTypeTrainee); err == nil {
		t.Fatalf("expected email validation error")
	}
	if _, err := svc.SignUp("a@example.com", "short", UserTypeTrainee); err == nil {
		t.Fatalf("expected password length error")
	}
	if _, err := svc.SignUp("a@example.com", "secret123", "admin"); err == nil {
		t.Fatalf("expected user type error")
	}
	if _, err := svc.SignUp("a@b.com", "123456", "trainee"); err != nil {
		t.Fatalf("trainee sign-up should succeed: %v", err)
	}
	if _, err := svc.SignUp("c@d.com", "123456", "company"); err != nil {
		t.Fatalf("company sign-up should succeed: %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryStore())

	if _, err := svc.SignUp("dup@example.com", "secret123", UserTypeCompany); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SignUp("Dup@Example.com", "other-pass", UserTypeTrainee); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockauth.json")

	svc := NewService(NewFileStore(path))
	if _, err := svc.SignUp("persist@example.com", "secret123", UserTypeTrainee); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A new service over the same file sees the account and session.
	reopened := NewService(NewFileStore(path))
	current, err := reopened.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Email != "persist@example.com" {
		t.Fatalf("unexpected session: %+v", current)
	}
	if _, err := reopened.Login("persist@example.com", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set("k", []byte(`"v"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get("k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	// Deleting again is a no-op.
	if err := store.Delete("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
