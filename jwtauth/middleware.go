package jwtauth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWTAuth returns a Gin middleware handler for JWT authentication.
// Requests whose token is not Verified are aborted with 401.
func JWTAuth(cfg *Config) gin.HandlerFunc {
	auth := cfg.Authenticator()

	return func(c *gin.Context) {
		startTime := time.Now()

		// Generate or extract request ID for correlation
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		token, err := extractToken(c.Request, cfg)
		if err != nil {
			recordAuthentication(cfg, "http", requestID, token, Result{}, err, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusUnauthorized, buildErrorResponse(err, Invalid))
			return
		}

		res := auth.Authenticate(token)
		recordAuthentication(cfg, "http", requestID, token, res, nil, time.Since(startTime))
		if !res.Verified() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, buildErrorResponse(res.Reason(), res.Outcome()))
			return
		}

		payload, _ := res.Payload().Get()
		ctx := WithPayload(c.Request.Context(), payload)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// buildErrorResponse constructs the 401 body. A message is included only
// for header errors, which help clients fix their tokens.
func buildErrorResponse(err error, outcome Outcome) gin.H {
	response := gin.H{
		"error":   "unauthorized",
		"reason":  getErrorCode(err),
		"outcome": outcome.String(),
	}

	if valErr, ok := err.(*ValidationError); ok {
		if valErr.Code == ErrMismatchedHeaders || valErr.Code == ErrMalformedAlgorithmHeader {
			if valErr.Message != "" {
				response["message"] = valErr.Message
			}
		}
	}

	return response
}
