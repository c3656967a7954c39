package services

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// UserSvcFacade defines operations for operator accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
