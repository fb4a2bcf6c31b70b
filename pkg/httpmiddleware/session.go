package httpmiddleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionConfig configures the anonymous session cookie.
type SessionConfig struct {
	CookieName string        `default:"sessionid" usage:"Session cookie name"`
	MaxAge     time.Duration `default:"336h" usage:"Session cookie lifetime"`
	Secure     bool          `default:"false" usage:"Mark the session cookie Secure"`
}

type sessionKey struct{}

// SessionIDFromContext returns the session id set by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// WithSessionID stores a session id in ctx, as Session does.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// Session gives every visitor a session id cookie. Carts and orders hang off
// that id.
func Session(cfg SessionConfig) Middleware {
	if cfg.CookieName == "" {
		cfg.CookieName = "sessionid"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cfg.CookieName); err == nil && printable(c.Value, 64) {
				id = c.Value
			} else {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}
