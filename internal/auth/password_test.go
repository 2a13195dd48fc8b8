package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same input, got identical values")
	}
	if first == "password123" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if err := ComparePassword(hash, "s3cret!"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := ComparePassword(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch for wrong password, got %v", err)
	}
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("not-a-bcrypt-hash", "anything")
	if err == nil {
		t.Fatalf("expected error for malformed stored hash")
	}
	if errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("malformed stored hash must not be reported as a mismatch")
	}
}

func TestHashPassword_CostFloor(t *testing.T) {
	hash, err := HashPassword("password123", 0)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d for out-of-range input, got %d", bcrypt.DefaultCost, cost)
	}
}
