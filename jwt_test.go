package main

import (
	"testing"

	"skywatch/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestJWT_RoundTrip(t *testing.T) {
	uid := primitive.NewObjectID()
	tok, err := signJWT(testSecret, uid, models.RoleAdmin)
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}
	ident, err := parseJWT(testSecret, tok)
	if err != nil {
		t.Fatalf("parseJWT: %v", err)
	}
	if ident.ID != uid {
		t.Fatalf("id = %v, want %v", ident.ID, uid)
	}
	if ident.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", ident.Role)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := signJWT(testSecret, primitive.NewObjectID(), models.RoleUser)
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}
	if _, err := parseJWT("other-secret", tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWT_Garbage(t *testing.T) {
	if _, err := parseJWT(testSecret, "not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestJWT_MissingRoleClaim(t *testing.T) {
	tok, err := signJWT(testSecret, primitive.NewObjectID(), "")
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}
	if _, err := parseJWT(testSecret, tok); err == nil {
		t.Fatal("expected error for empty role claim")
	}
}
