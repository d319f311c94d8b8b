package jwtauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	// Set Gin to test mode to suppress logs
	gin.SetMode(gin.TestMode)
}

var integrationSecret = []byte("integration-secret-of-32-bytes!!")

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(integrationSecret)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// tamper replaces the last character of token's signature.
func tamper(token string) string {
	last := token[len(token)-1]
	if last == 'A' {
		return token[:len(token)-1] + "E"
	}
	return token[:len(token)-1] + "A"
}

func newTestRouter(cfg *Config) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(cfg))
	router.GET("/protected", func(c *gin.Context) {
		payload := MustGetPayload(c.Request.Context())
		requestID, _ := GetRequestID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"subject":    payload.Subject().ValueOr(""),
			"request_id": requestID,
		})
	})
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestGinMiddleware(t *testing.T) {
	cfg := mustConfig(t, WithHS256(integrationSecret), WithValidators(UserIDValidator{}))
	router := newTestRouter(cfg)

	valid := signHS256(t, jwt.MapClaims{
		"sub":    "user123",
		"userId": "u-123",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	expired := signHS256(t, jwt.MapClaims{
		"sub":    "user123",
		"userId": "u-123",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	noUserID := signHS256(t, jwt.MapClaims{"sub": "user123"})
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "user123"}).SignedString(integrationSecret)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedReason string
		expectedOut    string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "", ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "", ""},
		{"missing header", "", http.StatusUnauthorized, "MISSING_TOKEN", "Invalid"},
		{"not a bearer header", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "MALFORMED", "Invalid"},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, "MALFORMED", "Invalid"},
		{"tampered signature", "Bearer " + tamper(valid), http.StatusUnauthorized, "INVALID_SIGNATURE", "BadSignature"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "CLAIMS_REJECTED", "BadClaims"},
		{"missing userId", "Bearer " + noUserID, http.StatusUnauthorized, "CLAIMS_REJECTED", "BadClaims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusOK {
				if body["subject"] != "user123" {
					t.Errorf("Expected subject user123, got %q", body["subject"])
				}
				return
			}
			if body["error"] != "unauthorized" {
				t.Errorf("Expected error unauthorized, got %q", body["error"])
			}
			if body["reason"] != tt.expectedReason {
				t.Errorf("Expected reason %s, got %q", tt.expectedReason, body["reason"])
			}
			if body["outcome"] != tt.expectedOut {
				t.Errorf("Expected outcome %s, got %q", tt.expectedOut, body["outcome"])
			}
		})
	}

	t.Run("wrong algorithm", func(t *testing.T) {
		wrongCfg := mustConfig(t, WithHS512(integrationSecret), WithCustomValidators())
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		w := httptest.NewRecorder()
		newTestRouter(wrongCfg).ServeHTTP(w, req)

		// HS256 token checked with an HS512 key fails the signature first
		if body := decodeBody(t, w); body["outcome"] != "BadSignature" {
			t.Errorf("Expected BadSignature, got %q", body["outcome"])
		}

		req = httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+wrongAlg)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if body := decodeBody(t, w); body["outcome"] != "BadSignature" {
			t.Errorf("Expected BadSignature, got %q", body["outcome"])
		}
	})
}

func TestGinMiddleware_MismatchedHeaderMessage(t *testing.T) {
	enc := NewHS256(integrationSecret)
	cfg := mustConfig(t, WithEncryptor(enc))
	router := newTestRouter(cfg)

	token := makeToken(`{"alg":"HS256","typ":"JWS"}`, `{"sub":"user123"}`, enc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["outcome"] != "MismatchedHeaders" || body["reason"] != "MISMATCHED_HEADERS" {
		t.Errorf("Unexpected body %v", body)
	}
	if body["message"] == "" {
		t.Error("Expected a message for header errors")
	}
}

func TestGinMiddleware_CookieFallback(t *testing.T) {
	cfg := mustConfig(t, WithHS256(integrationSecret), WithCookie("auth_token"))
	router := newTestRouter(cfg)
	token := signHS256(t, jwt.MapClaims{"sub": "user123"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Header takes precedence over the cookie
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestGinMiddleware_RequestID(t *testing.T) {
	cfg := mustConfig(t, WithHS256(integrationSecret))
	router := newTestRouter(cfg)
	token := signHS256(t, jwt.MapClaims{"sub": "user123"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := decodeBody(t, w)["request_id"]; got != "req-42" {
		t.Errorf("Expected req-42, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := decodeBody(t, w)["request_id"]; len(got) != 36 {
		t.Errorf("Expected generated UUID, got %q", got)
	}
}
