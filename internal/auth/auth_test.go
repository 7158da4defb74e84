package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/shoplist-app/shoplist/internal/models"
)

func TestPasswords(t *testing.T) {
	t.Run("ValidatePassword enforces the minimum length", func(t *testing.T) {
		if err := ValidatePassword("short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
		if err := ValidatePassword("longenough"); err != nil {
			t.Errorf("Expected valid password, got %v", err)
		}
	})

	t.Run("Hash and check round-trip", func(t *testing.T) {
		hash, err := HashPassword("correct horse")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if err := CheckPassword(hash, "correct horse"); err != nil {
			t.Errorf("Expected matching password, got %v", err)
		}
		if err := CheckPassword(hash, "wrong horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWT(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", DisplayName: "Alice"}

	t.Run("Generate and validate round-trip", func(t *testing.T) {
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("UserID mismatch: got %s, want %s", claims.UserID, user.ID)
		}
		if claims.Name != user.DisplayName {
			t.Errorf("Name mismatch: got %s, want %s", claims.Name, user.DisplayName)
		}
	})

	t.Run("Validate rejects garbage", func(t *testing.T) {
		if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Validate rejects tokens from another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Validate rejects expired tokens", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
