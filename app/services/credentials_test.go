package services_test

import (
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	creds := services.NewCredentials("secret", time.Hour, bcrypt.MinCost)

	hash, err := creds.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !creds.CheckPasswordHash("hunter2", hash) {
		t.Fatal("expected matching password to verify")
	}
	if creds.CheckPasswordHash("hunter3", hash) {
		t.Fatal("expected different password to fail")
	}

	again, err := creds.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if again == hash {
		t.Fatal("expected a fresh salt per hash")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issued := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	creds := services.NewCredentials("secret", 7*24*time.Hour, bcrypt.MinCost).
		WithClock(func() time.Time { return issued })
	user := &models.User{ID: "user-1", Email: "asha@example.com"}

	token, err := creds.IssueToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, ok := creds.ResolveToken(token)
	if !ok {
		t.Fatal("expected token to resolve")
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject = %q, want %q", claims.Subject, "user-1")
	}
	if want := issued.Add(7 * 24 * time.Hour); !claims.ExpiresAt.Time.Equal(want) {
		t.Fatalf("expires = %v, want %v", claims.ExpiresAt.Time, want)
	}

	later := creds.WithClock(func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) })
	if _, ok := later.ResolveToken(token); ok {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestResolveTokenRejectsForgeries(t *testing.T) {
	creds := services.NewCredentials("secret", time.Hour, bcrypt.MinCost)
	other := services.NewCredentials("other-secret", time.Hour, bcrypt.MinCost)
	user := &models.User{ID: "user-1"}

	forged, err := other.IssueToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, ok := creds.ResolveToken(forged); ok {
		t.Fatal("expected token signed with another secret to be rejected")
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, ok := creds.ResolveToken(unsigned); ok {
		t.Fatal("expected unsigned token to be rejected")
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, ok := creds.ResolveToken(noExpiry); ok {
		t.Fatal("expected token without expiry to be rejected")
	}

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, ok := creds.ResolveToken(bad); ok {
			t.Fatalf("ResolveToken(%q) resolved, want rejection", bad)
		}
	}
}

func TestIssueTokenRequiresUserID(t *testing.T) {
	creds := services.NewCredentials("secret", time.Hour, bcrypt.MinCost)
	if _, err := creds.IssueToken(&models.User{}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
