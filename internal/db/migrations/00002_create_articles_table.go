package migrations

import (
	"context"
	"database/sql"
	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpArticlesTable, DownArticlesTable)
}

func UpArticlesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE articles
(
    id UUID PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    excerpt TEXT DEFAULT '' NOT NULL,
    content TEXT DEFAULT '' NOT NULL,
    slug VARCHAR(255) UNIQUE NOT NULL,
    views INT DEFAULT 0 NOT NULL,
    created TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	return err
}

func DownArticlesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE articles;")
	return err
}
