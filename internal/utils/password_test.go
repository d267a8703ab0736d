package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("corr3ct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := VerifyPassword("corr3ct-horse", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected the password to verify against its own hash")
	}

	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatal("a wrong password must not verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "$2a$10$legacybcrypt"); err == nil {
		t.Fatal("expected an error for a non-argon2id hash")
	}
	if _, err := VerifyPassword("whatever", "garbage"); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}
