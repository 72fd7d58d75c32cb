package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/errors"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

func (r *MySQLCatalogRepository) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, price, available, category, createdAt
		FROM MenuItems
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Available, &item.Category, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	return items, nil
}

func (r *MySQLCatalogRepository) MenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
		SELECT id, name, price, available, category, createdAt
		FROM MenuItems
		WHERE id = ?
	`

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Available, &item.Category, &item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLCatalogRepository) AddMenuItem(ctx context.Context, item domain.MenuItem) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO MenuItems (id, name, price, available, category) VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, id, item.Name, item.Price, item.Available, item.Category); err != nil {
		return "", fmt.Errorf("inserting menu item: %w", err)
	}

	return id, nil
}

func (r *MySQLCatalogRepository) UpdateMenuItem(ctx context.Context, id string, item domain.MenuItem) error {
	query := `UPDATE MenuItems SET name = ?, price = ?, available = ?, category = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, item.Name, item.Price, item.Available, item.Category, id)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}

	return checkExists(result, fmt.Sprintf("menu item %s not found", id))
}

func (r *MySQLCatalogRepository) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM MenuItems WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	return checkExists(result, fmt.Sprintf("menu item %s not found", id))
}

func (r *MySQLCatalogRepository) Addons(ctx context.Context) ([]domain.Addon, error) {
	return r.queryAddons(ctx, `SELECT id, name, price, available, createdAt FROM Addons ORDER BY name`)
}

func (r *MySQLCatalogRepository) AvailableAddons(ctx context.Context) ([]domain.Addon, error) {
	return r.queryAddons(ctx, `SELECT id, name, price, available, createdAt FROM Addons WHERE available = 1 ORDER BY name`)
}

func (r *MySQLCatalogRepository) queryAddons(ctx context.Context, query string) ([]domain.Addon, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying addons: %w", err)
	}
	defer rows.Close()

	var addons []domain.Addon
	for rows.Next() {
		var addon domain.Addon
		if err := rows.Scan(&addon.ID, &addon.Name, &addon.Price, &addon.Available, &addon.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning addon: %w", err)
		}
		addons = append(addons, addon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating addons: %w", err)
	}

	return addons, nil
}

func (r *MySQLCatalogRepository) Addon(ctx context.Context, id string) (*domain.Addon, error) {
	query := `SELECT id, name, price, available, createdAt FROM Addons WHERE id = ?`

	var addon domain.Addon
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&addon.ID, &addon.Name, &addon.Price, &addon.Available, &addon.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("addon %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying addon by id: %w", err)
	}

	return &addon, nil
}

// AddonByName backs the staple-addon lookup.
func (r *MySQLCatalogRepository) AddonByName(ctx context.Context, name string) (*domain.Addon, error) {
	query := `SELECT id, name, price, available, createdAt FROM Addons WHERE name = ? LIMIT 1`

	var addon domain.Addon
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&addon.ID, &addon.Name, &addon.Price, &addon.Available, &addon.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("addon %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying addon by name: %w", err)
	}

	return &addon, nil
}

func (r *MySQLCatalogRepository) AddAddon(ctx context.Context, addon domain.Addon) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO Addons (id, name, price, available) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, id, addon.Name, addon.Price, addon.Available); err != nil {
		return "", fmt.Errorf("inserting addon: %w", err)
	}

	return id, nil
}

func (r *MySQLCatalogRepository) UpdateAddon(ctx context.Context, id string, addon domain.Addon) error {
	query := `UPDATE Addons SET name = ?, price = ?, available = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, addon.Name, addon.Price, addon.Available, id)
	if err != nil {
		return fmt.Errorf("updating addon: %w", err)
	}

	return checkExists(result, fmt.Sprintf("addon %s not found", id))
}

func (r *MySQLCatalogRepository) DeleteAddon(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Addons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting addon: %w", err)
	}

	return checkExists(result, fmt.Sprintf("addon %s not found", id))
}

func checkExists(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(notFoundMsg)
	}
	return nil
}
