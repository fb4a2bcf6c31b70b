package httpmiddleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CSRFConfig configures double-submit token checks.
type CSRFConfig struct {
	CookieName string `default:"csrftoken" usage:"Anti-forgery cookie name"`
	HeaderName string `default:"X-CSRFToken" usage:"Anti-forgery request header"`
	Secure     bool   `default:"false" usage:"Mark the anti-forgery cookie Secure"`
}

// CSRFRejected is the error body of a request failing the token check.
const CSRFRejected = "Jeton CSRF manquant ou invalide."

type csrfKey struct{}

// CSRFTokenFromContext returns the token the page must echo back, or "".
func CSRFTokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(csrfKey{}).(string)
	return tok
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// CSRF implements the double-submit cookie pattern. Safe requests get a token
// cookie when they lack one; unsafe requests must repeat the cookie value in
// the header.
func CSRF(cfg CSRFConfig) Middleware {
	if cfg.CookieName == "" {
		cfg.CookieName = "csrftoken"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRFToken"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookie string
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				cookie = c.Value
			}

			if !safeMethod(r.Method) {
				header := r.Header.Get(cfg.HeaderName)
				if cookie == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
					zctx.From(r.Context()).Warn("CSRF check failed",
						zap.String("path", r.URL.Path),
						zap.Bool("cookie", cookie != ""),
						zap.Bool("header", header != ""),
					)
					writeError(w, http.StatusForbidden, CSRFRejected)
					return
				}
			} else if !printable(cookie, 64) {
				cookie = strings.ReplaceAll(uuid.NewString(), "-", "")
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    cookie,
					Path:     "/",
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfKey{}, cookie)))
		})
	}
}
