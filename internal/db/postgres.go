package db

import (
	"database/sql"
	"fmt"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/watoukuang/demochain/config"
	_ "github.com/watoukuang/demochain/internal/db/migrations"
	"github.com/watoukuang/demochain/models"
	"log"
)

type Manager struct {
	Db *sql.DB
}

func NewManager(cfg *config.Config) (*Manager, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	manager := &Manager{
		Db: db,
	}

	if err = goose.Up(db, "./internal/db/migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	return manager, nil
}

func (m *Manager) PutUniqueUserData(user models.User) error {
	_, err := m.Db.Exec(`
        INSERT INTO users (uuid, email, password, created)
        VALUES ($1, $2, $3, $4)
    `, user.UUID, user.Email, user.Password, user.Created)
	if err != nil {
		return fmt.Errorf("failed to insert user data: %w", err)
	}

	return nil
}

func (m *Manager) GetUserData(email string) (models.User, error) {
	var user models.User

	err := m.Db.QueryRow(`
		SELECT uuid, email, password, created
		FROM users
		WHERE email = $1
	`, email).Scan(&user.UUID, &user.Email, &user.Password, &user.Created)

	if err != nil {
		return user, fmt.Errorf("failed to get user data: %w", err)
	}

	return user, nil
}

func (m *Manager) GetArticlesPage(page int, size int) ([]*models.Article, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	rows, err := m.Db.Query(`
		SELECT id, title, excerpt, content, slug, views, created
		FROM articles
		ORDER BY created DESC
		LIMIT $1 OFFSET $2
	`, size, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Slug, &a.Views, &a.Created); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

func (m *Manager) GetArticleBySlug(slug string) (*models.Article, error) {
	var a models.Article

	err := m.Db.QueryRow(`
		SELECT id, title, excerpt, content, slug, views, created
		FROM articles
		WHERE slug = $1
	`, slug).Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Slug, &a.Views, &a.Created)

	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &a, nil
}

func (m *Manager) Close() error {
	return m.Db.Close()
}
