// authserver is a demonstration listener for the jwtauth package. Every
// request has its Authorization header authenticated; the outcome and the
// decoded payload are logged and the reply is always 204 No Content.
//
// The header value is authenticated verbatim except that a leading
// "Bearer " scheme, in any case, is stripped first so that standard
// clients can be pointed at the server unchanged.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/httpx"
	"github.com/m-lab/go/rtx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wang-tianhao/Vibrant-jwt-authenticator-go/jwtauth"
)

var (
	listenPort string
	secret     string
	algorithm  string
	clockSkew  time.Duration
)

func init() {
	flag.StringVar(&listenPort, "port", "8080", "Port to listen on")
	flag.StringVar(&secret, "secret", "", "Shared HMAC secret used to verify tokens")
	flag.StringVar(&algorithm, "alg", jwtauth.AlgHS256, "Signing algorithm: HS256, HS384 or HS512")
	flag.DurationVar(&clockSkew, "clock-skew", 0, "Tolerance applied to exp and nbf")
}

var mainCtx, mainCancel = context.WithCancel(context.Background())

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not parse env args")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	enc, err := jwtauth.NewEncryptor(algorithm, []byte(secret))
	rtx.Must(err, "Invalid signing algorithm")
	cfg, err := jwtauth.NewConfig(
		jwtauth.WithEncryptor(enc),
		jwtauth.WithClockSkew(clockSkew),
		jwtauth.WithLogger(logger),
	)
	rtx.Must(err, "Invalid configuration")

	srv := &http.Server{
		Addr:    ":" + listenPort,
		Handler: newRouter(cfg),
	}
	logger.Info("hosting authentication server", "addr", srv.Addr, "algorithm", cfg.Algorithm())
	rtx.Must(httpx.ListenAndServeAsync(srv), "Could not start server")
	defer srv.Close()
	<-mainCtx.Done()
}

// newRouter builds the demo engine. /health and /metrics are served
// normally; any other route is an authentication probe.
func newRouter(cfg *jwtauth.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(probeHandler(cfg))
	return r
}

// probeHandler authenticates the Authorization header of any request and
// replies 204 whatever the outcome.
func probeHandler(cfg *jwtauth.Config) gin.HandlerFunc {
	auth := cfg.Authenticator()
	return func(c *gin.Context) {
		logger := cfg.Logger()
		if logger == nil {
			logger = slog.Default()
		}
		logger.Info("incoming request", "remote", c.Request.RemoteAddr)

		res := auth.Authenticate(jwtauth.BearerToken(c.GetHeader("Authorization")))

		attrs := []any{"outcome", res.Outcome().String()}
		if payload, ok := res.Payload().Get(); ok {
			attrs = append(attrs, "payload", payload.String())
		}
		if reason := res.Reason(); reason != nil {
			attrs = append(attrs, "reason", reason.Error())
		}
		logger.Info("request finished", attrs...)

		c.Status(http.StatusNoContent)
	}
}
