package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/service-order-api/internal/domain"
)

// ServiceOrderRepository manages persistence for service orders. Reads join
// projects to enrich each row with its project name.
type ServiceOrderRepository interface {
	List(ctx context.Context, projectID *int64) ([]domain.ServiceOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceOrder, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, order *domain.ServiceOrder) (int64, error)
	Update(ctx context.Context, order *domain.ServiceOrder) error
	Delete(ctx context.Context, id int64) error
	ToggleApproval(ctx context.Context, id int64) error
}

type serviceOrderRepository struct {
	pool *pgxpool.Pool
}

// NewServiceOrderRepository constructs repository.
func NewServiceOrderRepository(pool *pgxpool.Pool) ServiceOrderRepository {
	return &serviceOrderRepository{pool: pool}
}

const serviceOrderColumns = `
        so.id, so.name, so.category, so.description, so.project_id,
        so.is_approved, so.created_date, so.updated_date, p.name AS project_name`

func (r *serviceOrderRepository) List(ctx context.Context, projectID *int64) ([]domain.ServiceOrder, error) {
	query := `
        SELECT` + serviceOrderColumns + `
        FROM service_orders so
        JOIN projects p ON so.project_id = p.id`

	args := []any{}
	if projectID != nil {
		query += ` WHERE so.project_id = $1`
		args = append(args, *projectID)
	}
	query += ` ORDER BY so.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceOrder
	for rows.Next() {
		var order domain.ServiceOrder
		if err := scanServiceOrder(rows, &order); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *serviceOrderRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	const query = `
        SELECT` + serviceOrderColumns + `
        FROM service_orders so
        JOIN projects p ON so.project_id = p.id
        WHERE so.id=$1`

	var order domain.ServiceOrder
	if err := scanServiceOrder(r.pool.QueryRow(ctx, query, id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *serviceOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM service_orders WHERE id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *serviceOrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) (int64, error) {
	const query = `
        INSERT INTO service_orders (name, category, description, project_id, is_approved)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query,
		order.Name,
		order.Category,
		order.Description,
		order.ProjectID,
		order.IsApproved,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *serviceOrderRepository) Update(ctx context.Context, order *domain.ServiceOrder) error {
	const query = `
        UPDATE service_orders
        SET name=$1, category=$2, description=$3, project_id=$4, is_approved=$5, updated_date=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		order.Name,
		order.Category,
		order.Description,
		order.ProjectID,
		order.IsApproved,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceOrderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ToggleApproval flips is_approved based on the value read inside the same
// transaction. The row lock closes the read-then-write race between
// concurrent toggles.
func (r *serviceOrderRepository) ToggleApproval(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var approved bool
	if err := tx.QueryRow(ctx,
		`SELECT is_approved FROM service_orders WHERE id=$1 FOR UPDATE`, id,
	).Scan(&approved); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE service_orders SET is_approved=$1, updated_date=NOW() WHERE id=$2`,
		!approved, id,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanServiceOrder(row pgx.Row, order *domain.ServiceOrder) error {
	return row.Scan(
		&order.ID,
		&order.Name,
		&order.Category,
		&order.Description,
		&order.ProjectID,
		&order.IsApproved,
		&order.CreatedDate,
		&order.UpdatedDate,
		&order.ProjectName,
	)
}
