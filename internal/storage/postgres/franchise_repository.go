package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/odyostore/backoffice/internal/domain"
)

type franchiseRepository struct {
	db *sql.DB
}

// NewFranchiseRepository создаёт PostgreSQL-реализацию FranchiseRepository.
func NewFranchiseRepository(store *Store) domain.FranchiseRepository {
	return &franchiseRepository{db: store.DB()}
}

const applicationColumns = `id, user_id, company_name, address, phone, status, created_at`

func (r *franchiseRepository) Create(app domain.FranchiseApplication) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO franchise_applications (
			id, user_id, company_name, address, phone, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		app.ID, app.UserID, app.CompanyName, app.Address, app.Phone,
		string(app.Status), app.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert franchise application: %w", err)
	}
	return nil
}

func (r *franchiseRepository) Get(id string) (domain.FranchiseApplication, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM franchise_applications WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FranchiseApplication{}, domain.ErrApplicationNotFound
		}
		return domain.FranchiseApplication{}, fmt.Errorf("select franchise application: %w", err)
	}
	return app, nil
}

func (r *franchiseRepository) List() ([]domain.FranchiseApplication, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM franchise_applications
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list franchise applications: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.FranchiseApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan franchise application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate franchise applications: %w", err)
	}

	return apps, nil
}

func (r *franchiseRepository) SetStatus(id string, status domain.ApplicationStatus) (domain.FranchiseApplication, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE franchise_applications SET status = $1 WHERE id = $2
	`, string(status), id)
	if err != nil {
		return domain.FranchiseApplication{}, fmt.Errorf("update franchise application: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.FranchiseApplication{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.FranchiseApplication{}, domain.ErrApplicationNotFound
	}

	return r.Get(id)
}

func scanApplication(row rowScanner) (domain.FranchiseApplication, error) {
	var (
		app    domain.FranchiseApplication
		status string
	)
	if err := row.Scan(
		&app.ID, &app.UserID, &app.CompanyName, &app.Address, &app.Phone,
		&status, &app.CreatedAt,
	); err != nil {
		return domain.FranchiseApplication{}, err
	}
	app.Status = domain.ApplicationStatus(status)
	return app, nil
}

var _ domain.FranchiseRepository = (*franchiseRepository)(nil)
