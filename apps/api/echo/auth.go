package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/auth"
)

const (
	headerAuthToken    = "x-auth-token"
	contextIdentityKey = "identity"
	loginRedirect      = "/dashboard"
)

type (
	LoginRequest struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	LoginResponse struct {
		auth.Identity
		Token      string `json:"token"`
		RedirectTo string `json:"redirectTo"`
	}

	ProfileResponse struct {
		User        auth.Identity `json:"user"`
		Permissions []string      `json:"permissions"`
	}
)

// requestToken reads the x-auth-token header, falling back to a bearer Authorization header.
func requestToken(req *http.Request) string {
	if token := strings.TrimSpace(req.Header.Get(headerAuthToken)); token != "" {
		return token
	}
	authz := strings.TrimSpace(req.Header.Get(echo.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// authMiddleware rejects requests without a valid token and attaches the verified identity.
func authMiddleware(svc auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := requestToken(ctx.Request())
			if token == "" {
				return errMissingToken
			}
			id, err := svc.Verify(ctx.Request().Context(), token)
			if err != nil {
				if errors.Cause(err) == auth.ErrInvalidToken {
					return errInvalidToken
				}
				return errors.Wrap(err, "verifying token")
			}
			ctx.Set(contextIdentityKey, id)
			return next(ctx)
		}
	}
}

func contextIdentity(ctx echo.Context) (auth.Identity, bool) {
	id, ok := ctx.Get(contextIdentityKey).(auth.Identity)
	return id, ok
}

// contextUserID is the id recorded as created_by, 0 when the request is anonymous.
func contextUserID(ctx echo.Context) int {
	if id, ok := contextIdentity(ctx); ok {
		return id.ID
	}
	return 0
}

type authApi struct {
	svc auth.Service
}

func registerAuthAPI(g *echo.Group, authed echo.MiddlewareFunc, svc auth.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.GET("/profile", api.profile, authed)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := bind(ctx, &data); err != nil {
		return err
	}

	id, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrInvalidCredentials {
			return errBadLogin
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := api.svc.IssueToken(id)
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Identity: id, Token: token, RedirectTo: loginRedirect})
}

func (api *authApi) profile(ctx echo.Context) error {
	id, _ := contextIdentity(ctx)
	return ctx.JSON(http.StatusOK, ProfileResponse{User: id, Permissions: auth.Permissions})
}
