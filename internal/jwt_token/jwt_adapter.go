package jwttoken

import (
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
)

// MiddlewareAdapter adapts the JWT service to the middleware.TokenValidator
// interface.
type MiddlewareAdapter struct {
	service *Service
}

func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*middleware.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	roles := make(id.Roles, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, id.Role(r))
	}
	return &middleware.Claims{
		Principal: id.Principal(claims.Subject),
		Roles:     roles,
	}, nil
}

var _ middleware.TokenValidator = (*MiddlewareAdapter)(nil)
