package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	identity := Identity{Role: "employee", Name: "Sara", EmployeeID: "emp_1"}
	token, err := GenerateToken("secret", identity, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Role != "employee" || claims.Name != "Sara" || claims.EmployeeID != "emp_1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Identity{Role: "admin", Name: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword(hash, "123"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
