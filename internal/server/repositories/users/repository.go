// Package users persists registered accounts. Every backend enforces
// username uniqueness at write time and reports a clash as
// common.ErrAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
