package jwtauth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor for JWT authentication
func UnaryServerInterceptor(cfg *Config) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		ctx, err := authenticateGRPC(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor for JWT authentication
func StreamServerInterceptor(cfg *Config) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		ctx, err := authenticateGRPC(ss.Context(), cfg)
		if err != nil {
			return err
		}
		return handler(srv, &authenticatedStream{ServerStream: ss, ctx: ctx})
	}
}

// authenticatedStream overrides the stream context with the enriched one
type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}

// authenticateGRPC verifies the token in the incoming metadata and returns
// a context carrying the payload and request ID.
func authenticateGRPC(ctx context.Context, cfg *Config) (context.Context, error) {
	startTime := time.Now()

	// Generate request ID for correlation
	requestID := uuid.New().String()

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		err := NewValidationError(ErrMissingToken, "metadata not found", nil)
		recordAuthentication(cfg, "grpc", requestID, "", Result{}, err, time.Since(startTime))
		return nil, status.Error(codes.Unauthenticated, "metadata not found")
	}

	token, err := extractTokenFromMetadata(md)
	if err != nil {
		recordAuthentication(cfg, "grpc", requestID, token, Result{}, err, time.Since(startTime))
		return nil, status.Error(codes.Unauthenticated, getErrorCode(err))
	}

	res := cfg.Authenticator().Authenticate(token)
	recordAuthentication(cfg, "grpc", requestID, token, res, nil, time.Since(startTime))
	if !res.Verified() {
		return nil, status.Errorf(codes.Unauthenticated, "%s: %s", res.Outcome(), getErrorCode(res.Reason()))
	}

	payload, _ := res.Payload().Get()
	ctx = WithPayload(ctx, payload)
	ctx = WithRequestID(ctx, requestID)
	return ctx, nil
}
