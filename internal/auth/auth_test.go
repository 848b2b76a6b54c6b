package auth

import (
	"errors"
	"testing"
)

func TestStaticVerifier_KnownToken(t *testing.T) {
	v := StaticVerifier{"alice-token": 1, "bob-token": 2}

	id, err := v.Verify("bob-token")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id != 2 {
		t.Errorf("Verify = %d, want 2", id)
	}
}

func TestStaticVerifier_UnknownToken(t *testing.T) {
	v := StaticVerifier{"alice-token": 1}

	if _, err := v.Verify("mallory-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}

func TestStaticVerifier_EmptyMap(t *testing.T) {
	v := StaticVerifier{}

	if _, err := v.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}
