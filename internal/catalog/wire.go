package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/catalog/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*Controller, *repository.MySQLCatalogRepository) {
	repo := repository.NewMySQLCatalogRepository(db)
	return NewController(repo, logger), repo
}
