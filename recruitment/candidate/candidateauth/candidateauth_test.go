package candidateauth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testIssuer = "https://clerk.example.test"

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func staticKey(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user_2abc",
		"iss":   testIssuer,
		"email": "ada@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerify(t *testing.T) {
	key := newKey(t)
	v := NewJWTVerifier(staticKey(key), testIssuer)

	claims, err := v.Verify(sign(t, key, validClaims()))
	if err != nil {
		t.Fatal(err)
	}
	if claims.AccountID() != "user_2abc" || claims.Email != "ada@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := NewJWTVerifier(staticKey(key), testIssuer)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noExp := validClaims()
	delete(noExp, "exp")

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "https://evil.test"

	noSub := validClaims()
	delete(noSub, "sub")

	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"expired":      sign(t, key, expired),
		"no exp":       sign(t, key, noExp),
		"wrong issuer": sign(t, key, wrongIssuer),
		"no subject":   sign(t, key, noSub),
		"foreign key":  sign(t, other, validClaims()),
		"hmac":         hs,
		"garbage":      "not.a.jwt",
	}
	for name, tok := range cases {
		if _, err := v.Verify(tok); err == nil {
			t.Errorf("%s: expected rejection", name)
		}
	}

	if _, err := v.Verify(sign(t, key, noSub)); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("no subject err = %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	key := newKey(t)
	app := fiber.New()
	app.Get("/me", Middleware(NewJWTVerifier(staticKey(key), testIssuer)), func(c *fiber.Ctx) error {
		id, ok := GetAccountID(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		email, _ := GetEmail(c)
		return c.SendString(id.String() + "|" + string(email))
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + sign(t, key, validClaims()), fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.name, resp.StatusCode, tc.status)
		}
	}
}
