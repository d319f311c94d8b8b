package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"
)

var methods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

func main() {
	var (
		secret  = flag.String("secret", "", "Shared HMAC secret")
		alg     = flag.String("alg", "HS256", "Signing algorithm: HS256, HS384 or HS512")
		subject = flag.String("sub", "user123", "Subject (user ID)")
		userID  = flag.String("userId", "", "Optional userId claim")
		hours   = flag.Int("hours", 1, "Token validity in hours (0 for no exp claim)")
	)

	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not parse env args")

	method, ok := methods[*alg]
	if !ok {
		log.Fatalf("Unsupported algorithm %q", *alg)
	}

	tokenString, err := mint(method, []byte(*secret), *subject, *userID, *hours, time.Now())
	rtx.Must(err, "Failed to sign token")

	fmt.Println("\n=== JWT Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", tokenString)
	fmt.Println("Usage:")
	fmt.Printf("  curl -i -H 'Authorization: Bearer %s' http://localhost:8080/\n\n", tokenString)
}

// mint signs a token carrying sub, nbf, iat and optionally userId and exp.
func mint(method jwt.SigningMethod, secret []byte, subject, userID string, hours int, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"nbf": now.Unix(),
		"iat": now.Unix(),
	}
	if userID != "" {
		claims["userId"] = userID
	}
	if hours > 0 {
		claims["exp"] = now.Add(time.Duration(hours) * time.Hour).Unix()
	}

	return jwt.NewWithClaims(method, claims).SignedString(secret)
}
