package auth

import (
	"testing"
	"time"
)

func TestGenerateValidate(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	tok, err := j.Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := j.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject=%s", claims.Subject)
	}
}

func TestValidateRejects(t *testing.T) {
	tok, err := NewJWT("other", time.Minute).Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWT("secret", time.Minute).Validate(tok); err == nil {
		t.Fatalf("foreign signature accepted")
	}
	expired, err := NewJWT("secret", -time.Minute).Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWT("secret", time.Minute).Validate(expired); err == nil {
		t.Fatalf("expired token accepted")
	}
}
