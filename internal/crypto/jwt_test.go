package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testUserID = "6f1c2a9e-5b7d-4c1e-9a3f-2d8e7b6c5a41"

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return token
}

func TestValidateTokenValid(t *testing.T) {
	token, err := GenerateToken(testUserID, "test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != testUserID {
		t.Errorf("ValidateToken() UserID = %q, want %q", claims.UserID, testUserID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("token lifetime = %v, want 24h", got)
	}
}

func TestValidateTokenRejected(t *testing.T) {
	secret := "test-secret"
	valid, err := GenerateToken(testUserID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	// Flip one character of the signature.
	tampered := valid[:len(valid)-2] + string(valid[len(valid)-2]^1) + valid[len(valid)-1:]

	now := time.Now()
	wrongIssuer := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: testUserID,
	}, secret)
	wrongAudience := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{"other-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: testUserID,
	}, secret)
	noExpiry := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Audience: jwt.ClaimStrings{tokenAudience},
		},
		UserID: testUserID,
	}, secret)
	noUser := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}, secret)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "garbage", token: "not-a-valid-token", secret: secret},
		{name: "empty", token: "", secret: secret},
		{name: "wrong secret", token: valid, secret: "wrong-secret"},
		{name: "tampered signature", token: tampered, secret: secret},
		{name: "wrong issuer", token: wrongIssuer, secret: secret},
		{name: "wrong audience", token: wrongAudience, secret: secret},
		{name: "missing expiry", token: noExpiry, secret: secret},
		{name: "missing user id", token: noUser, secret: secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			if err != ErrInvalidToken {
				t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testUserID, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "test-secret")
	if err != ErrTokenExpired {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	if !strings.HasSuffix(token, ".") {
		t.Fatalf("expected unsigned token, got %q", token)
	}

	if _, err := ValidateToken(token, "test-secret"); err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}
