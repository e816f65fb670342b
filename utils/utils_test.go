package utils

import (
	"strings"
	"testing"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.Contains(hash, ".") {
		t.Fatalf("hash = %q, want salt.hash encoding", hash)
	}
	if err := VerifyPassword("secret", hash); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	h1, _ := HashPassword("secret")
	h2, _ := HashPassword("secret")
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

func TestVerifyPasswordRejectsBadEncoding(t *testing.T) {
	for _, encoded := range []string{"", "no-dot", "a.b.c", "!!!.###"} {
		if err := VerifyPassword("secret", encoded); err == nil {
			t.Errorf("VerifyPassword(%q) = nil, want error", encoded)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := SignedToken("test-secret", "user-1", "a@x.com")
	if err != nil {
		t.Fatalf("SignedToken: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@x.com" {
		t.Errorf("claims = %+v, want user-1 / a@x.com", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignedToken("test-secret", "user-1", "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}

func TestSignedTokenWithoutSecretIsConfigError(t *testing.T) {
	_, err := SignedToken("", "user-1", "a@x.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperror.Status(err) != 500 {
		t.Errorf("status = %d, want 500", apperror.Status(err))
	}
}
