package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
)

var NowFunc = time.Now // mockable

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UserAuthenticator checks credentials against the users store.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, email, pwd string) (user.User, error)
}

// JWTService checks credentials against the users table and signs HS256 tokens.
type JWTService struct {
	users  UserAuthenticator
	key    []byte
	ttl    time.Duration
	issuer string
}

var _ Service = (*JWTService)(nil)

func NewJWTService(users UserAuthenticator, conf *core.Config) *JWTService {
	return &JWTService{
		users:  users,
		key:    []byte(conf.Auth.SecretKey),
		ttl:    conf.Auth.JWTExpiration,
		issuer: conf.AppName,
	}
}

func (svc *JWTService) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	usr, err := svc.users.Authenticate(ctx, email, password)
	if err != nil {
		if core.IsNotFound(err) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, "authenticating user")
	}
	return Identity{
		ID:        usr.ID,
		FirstName: usr.FirstName(),
		LastName:  usr.LastName(),
		Email:     usr.Email,
		Role:      usr.Role,
	}, nil
}

// IssueToken generates a signed JWT token string representing the identity.
func (svc *JWTService) IssueToken(id Identity) (string, error) {
	now := NowFunc()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.issuer,
			Subject:   strconv.Itoa(id.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.ttl)),
		},
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Email:     id.Email,
		Role:      id.Role,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (svc *JWTService) Verify(_ context.Context, token string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(*jwt.Token) (interface{}, error) { return svc.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(svc.issuer),
		jwt.WithTimeFunc(NowFunc),
	)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		ID:        id,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}
