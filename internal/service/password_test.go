package service

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "Secret123" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !CheckPassword("Secret123", digest) {
		t.Fatal("expected the original password to verify")
	}
	if CheckPassword("Secret124", digest) {
		t.Fatal("expected a different password to fail")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("two digests of the same password must differ")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	if CheckPassword("Secret123", "not-a-bcrypt-digest") {
		t.Fatal("malformed digest must verify as false")
	}
	if CheckPassword("Secret123", "") {
		t.Fatal("empty digest must verify as false")
	}
}
