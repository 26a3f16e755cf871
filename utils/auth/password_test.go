package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}

	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("VerifyPassword accepted the wrong password")
	}
}

func TestHashPasswordProducesUniqueHashes(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must differ (per-hash salt)")
	}
}
