package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	t.Run("Generate then Validate", func(t *testing.T) {
		token, err := m.Generate("phone-1")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.DeviceID != "phone-1" || claims.Subject != "phone-1" {
			t.Errorf("Claims = %+v", claims)
		}
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		other, _ := NewJWTManager("other-secret", time.Hour)
		token, _ := other.Generate("phone-1")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired, _ := NewJWTManager("test-secret", -time.Minute)
		token, _ := expired.Generate("phone-1")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Empty secret is refused", func(t *testing.T) {
		if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrMissingSecret) {
			t.Errorf("err = %v, want ErrMissingSecret", err)
		}
	})
}
