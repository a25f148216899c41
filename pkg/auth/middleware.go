package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ContextWithClaims returns a new context with the given Claims attached.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts Claims from the context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// UnaryAuthInterceptor validates the bearer token of every call. Methods in
// publicMethods may be called anonymously; when they do carry a valid token
// the claims are still attached.
func UnaryAuthInterceptor(jwtService *JWTService, publicMethods []string) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		_, anonymous := public[info.FullMethod]

		token, ok := bearerToken(ctx)
		if !ok {
			if anonymous {
				return handler(ctx, req)
			}
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if anonymous {
				return handler(ctx, req)
			}
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

func bearerToken(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get("authorization")
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return strings.TrimPrefix(values[0], "Bearer "), true
}

// RequireRole returns the caller's claims when they hold one of roles.
func RequireRole(ctx context.Context, roles ...string) (*Claims, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, r := range roles {
		if claims.HasRole(r) {
			return claims, nil
		}
	}
	return nil, status.Errorf(codes.PermissionDenied, "required role(s): %v", roles)
}
