package db

import (
	"github.com/watoukuang/demochain/models"
)

type Database interface {
	PutUniqueUserData(userData models.User) error
	GetUserData(email string) (models.User, error)

	GetArticlesPage(page int, size int) ([]*models.Article, error)
	GetArticleBySlug(slug string) (*models.Article, error)

	Close() error
}
