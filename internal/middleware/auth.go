package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/internal/response"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

// PrincipalHeader carries the caller identity injected by the hosting platform.
const PrincipalHeader = "X-MS-CLIENT-PRINCIPAL"

type principal struct {
	UserDetails string `json:"userDetails"`
}

// context key
type contextKey string

const (
	identityKey         contextKey = "identity"
	identityVerifiedKey contextKey = "identity_verified"
)

type accessGuard struct {
	allowedDomain string
	resp          response.ResponseHandler
}

func NewAccessGuard(allowedDomain string, resp response.ResponseHandler) *accessGuard {
	return &accessGuard{
		allowedDomain: strings.TrimSpace(allowedDomain),
		resp:          resp,
	}
}

// Authorize decides admission for a raw principal header value and returns the
// identity it carried. An empty domain or an empty header admits the request.
func Authorize(allowedDomain, header string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(allowedDomain))
	header = strings.TrimSpace(header)

	if header == "" {
		return "", nil
	}

	identity, err := decodePrincipal(header)
	if domain == "" {
		// guard disabled; keep whatever identity we could read for logs
		if err != nil {
			return "", nil
		}
		return identity, nil
	}
	if err != nil {
		return "", errs.NewPrincipalDecodeError("identity header could not be decoded")
	}

	if !strings.HasSuffix(strings.ToLower(identity), "@"+domain) {
		return "", errs.NewDomainDeniedError("access restricted to the allowed domain")
	}
	return identity, nil
}

func decodePrincipal(header string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(header)
		if err != nil {
			return "", err
		}
	}

	var p *principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", err
	}
	if p == nil {
		return "", errors.New("principal is not a JSON object")
	}
	return p.UserDetails, nil
}

func (g *accessGuard) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := Authorize(g.allowedDomain, r.Header.Get(PrincipalHeader))
		if err != nil {
			g.resp.HandleError(w, r, err)
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		if identity != "" && g.allowedDomain != "" {
			ctx = context.WithValue(ctx, identityVerifiedKey, true)
		}
		if identity != "" {
			_, ctx = logger.With(ctx, "identity", identity)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Identity returns the admitted caller identity, or "" for anonymous requests.
func Identity(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}

// IdentityVerified reports whether the identity passed an enforced domain
// check. Without a domain the header is taken as-is and cannot be trusted.
func IdentityVerified(ctx context.Context) bool {
	verified, _ := ctx.Value(identityVerifiedKey).(bool)
	return verified
}
