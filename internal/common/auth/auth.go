package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/sfsking/pizza-party-hq/internal/common/config"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

const (
	HeaderEmployeeID   = "X-Employee-ID"
	HeaderEmployeeRole = "X-Employee-Role"
	HeaderEmployeeName = "X-Employee-Name"
	HeaderEmployeeMail = "X-Employee-Email"
)

// Identity is what the caller proved about itself before the profile lookup.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    domain.Role
}

type Verifier interface {
	Identify(r *http.Request) (Identity, error)
}

// Directory resolves an identity to its employee profile, creating it on first sight.
type Directory interface {
	Resolve(ctx context.Context, id Identity) (domain.Employee, error)
}

type OIDCVerifier struct {
	verifier  *oidc.IDTokenVerifier
	roleClaim string
}

func NewOIDCVerifier(ctx context.Context, cfg config.Auth) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider %s: %w", cfg.Issuer, err)
	}
	return NewOIDCVerifierFrom(provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), cfg.RoleClaim), nil
}

func NewOIDCVerifierFrom(v *oidc.IDTokenVerifier, roleClaim string) *OIDCVerifier {
	if roleClaim == "" {
		roleClaim = "role"
	}
	return &OIDCVerifier{verifier: v, roleClaim: roleClaim}
}

func (o *OIDCVerifier) Identify(r *http.Request) (Identity, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return Identity{}, domain.ErrUnauthenticated
	}
	tok, err := o.verifier.Verify(r.Context(), raw)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	var claims map[string]any
	if err := tok.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: claims: %v", domain.ErrUnauthenticated, err)
	}
	id := Identity{Subject: tok.Subject}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	if role, _ := claims[o.roleClaim].(string); domain.Role(role).Valid() {
		id.Role = domain.Role(role)
	}
	return id, nil
}

// HeaderVerifier trusts identity headers set by a gateway. Development only.
type HeaderVerifier struct{}

func (HeaderVerifier) Identify(r *http.Request) (Identity, error) {
	sub := strings.TrimSpace(r.Header.Get(HeaderEmployeeID))
	if sub == "" {
		return Identity{}, domain.ErrUnauthenticated
	}
	id := Identity{
		Subject: sub,
		Email:   r.Header.Get(HeaderEmployeeMail),
		Name:    r.Header.Get(HeaderEmployeeName),
	}
	if role := domain.Role(r.Header.Get(HeaderEmployeeRole)); role.Valid() {
		id.Role = role
	}
	return id, nil
}

// Middleware authenticates the request and stores the actor in the context.
// With a Directory the profile decides the role and deactivated employees are rejected.
func Middleware(v Verifier, dir Directory) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Identify(r)
			if err != nil {
				httpx.WriteProblem(w, http.StatusUnauthorized, "unauthenticated", domain.ErrUnauthenticated.Error())
				return
			}

			actor := domain.Actor{ID: id.Subject, Role: id.Role}
			if actor.Role == "" {
				actor.Role = domain.RoleEmployee
			}
			if dir != nil {
				emp, err := dir.Resolve(r.Context(), id)
				if err != nil {
					httpx.WriteError(w, r, nil, "resolve_profile_failed", err)
					return
				}
				if !emp.Active {
					httpx.WriteProblem(w, http.StatusForbidden, "forbidden", "employee is deactivated")
					return
				}
				actor.Role = emp.Role
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

type ctxKey struct{}

func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(domain.Actor)
	return a, ok
}

// ActorOf returns the request actor, or the zero Actor when the route is not authenticated.
func ActorOf(r *http.Request) domain.Actor {
	a, _ := ActorFromContext(r.Context())
	return a
}

// RequireAdmin rejects non-admin actors with 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := ActorFromContext(r.Context())
		if !ok {
			httpx.WriteProblem(w, http.StatusUnauthorized, "unauthenticated", domain.ErrUnauthenticated.Error())
			return
		}
		if !a.IsAdmin() {
			httpx.WriteProblem(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next(w, r)
	}
}
