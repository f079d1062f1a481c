package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"

	"github.com/hai-lomilomi/backend/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsJSON string // optional; ADC is used when empty
}

// NewFirebaseAuthClient initializes the Firebase Admin auth client used to
// verify the mobile client's ID tokens server-side.
func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}

// FirebaseAuth verifies the bearer ID token and places the caller's
// Identity (uid + email) in the request context.
func FirebaseAuth(client *fbauth.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "Authorization header required")
				return
			}
			if client == nil {
				writeUnauthorized(w, "Auth not configured")
				return
			}

			token, err := client.VerifyIDToken(r.Context(), raw)
			if err != nil {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			email, _ := token.Claims["email"].(string)
			ident := models.Identity{UID: token.UID, Email: email}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// JWTAuth validates dev-mode HS256 tokens issued by the login endpoint and
// fills the same Identity contract FirebaseAuth does.
func JWTAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "Authorization header required")
				return
			}

			token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeUnauthorized(w, "Invalid token claims")
				return
			}
			uid, ok := claims["uid"].(string)
			if !ok || uid == "" {
				writeUnauthorized(w, "Invalid user ID in token")
				return
			}
			email, _ := claims["email"].(string)

			ident := models.Identity{UID: uid, Email: email}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// WithIdentity stores the authenticated identity in ctx.
func WithIdentity(ctx context.Context, ident models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity extracts the authenticated identity from ctx. The zero
// Identity is returned for unauthenticated requests.
func GetIdentity(ctx context.Context) models.Identity {
	ident, ok := ctx.Value(identityKey).(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return ident
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.NewErrorResponse(message))
}
