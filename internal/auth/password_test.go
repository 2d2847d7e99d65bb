package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("Hash must not equal the plain password")
	}

	if !VerifyPassword(hash, "secret123") {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword(hash, "secret124") {
		t.Error("Expected wrong password to fail verification")
	}
	if VerifyPassword(hash, "") {
		t.Error("Expected empty password to fail verification")
	}
}

func TestHashPassword_SaltsEachCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Error("Expected different salts to produce different hashes")
	}
}
