package repository

import (
	"context"
	"errors"
	"fmt"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

const courierListQuery = `
    SELECT c.id, c.courier_number, c.status, COALESCE(c.place, ''),
           COALESCE(c.delivery_person_name, ''), COALESCE(c.delivery_person_id, ''),
           c.owner_username, COALESCE(cl.location, '')
    FROM couriers c
    LEFT JOIN courier_location cl ON c.id = cl.courier_id`

// Create inserts a courier row and upserts its location row in a single
// transaction. Either both writes land or neither does.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
			}
		}
	}()

	err = tx.QueryRow(ctx, `
        INSERT INTO couriers(courier_number, status, place, delivery_person_name, delivery_person_id, owner_username)
        VALUES($1,$2,$3,$4,$5,$6)
        RETURNING id
    `, c.Number, c.Status, c.Place, c.DeliveryPersonName, c.DeliveryPersonID, c.OwnerUsername).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		if IsForeignKey(err) {
			return 0, apperr.Invalid
		}
		return 0, fmt.Errorf("create courier %q: %w", c.Number, err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO courier_location(courier_id, location)
        VALUES($1, $2)
        ON CONFLICT (courier_id) DO UPDATE SET location = EXCLUDED.location
    `, id, c.LocationURL)
	if err != nil {
		return 0, fmt.Errorf("upsert courier %d location: %w", id, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

// Get returns a courier (with its joined location) by id, or nil if absent.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	var c domain.Courier
	err := r.db.QueryRow(ctx, courierListQuery+` WHERE c.id=$1`, id).Scan(
		&c.ID, &c.Number, &c.Status, &c.Place,
		&c.DeliveryPersonName, &c.DeliveryPersonID, &c.OwnerUsername, &c.LocationURL,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	return &c, nil
}

// UpdateStatus sets the status column and returns true if a row was affected.
func (r *CourierRepo) UpdateStatus(ctx context.Context, id int64, status domain.CourierStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE couriers SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return false, fmt.Errorf("update courier %d status: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListAll returns every courier with its location joined in, ordered by id.
// Couriers without a location row appear with an empty location.
func (r *CourierRepo) ListAll(ctx context.Context) ([]domain.Courier, error) {
	return r.list(ctx, courierListQuery+` ORDER BY c.id`)
}

// ListByOwner returns the couriers owned by the given username, ordered by id.
func (r *CourierRepo) ListByOwner(ctx context.Context, username string) ([]domain.Courier, error) {
	return r.list(ctx, courierListQuery+` WHERE c.owner_username=$1 ORDER BY c.id`, username)
}

func (r *CourierRepo) list(ctx context.Context, q string, args ...any) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Courier, 0)
	for rows.Next() {
		var c domain.Courier
		if err := rows.Scan(
			&c.ID, &c.Number, &c.Status, &c.Place,
			&c.DeliveryPersonName, &c.DeliveryPersonID, &c.OwnerUsername, &c.LocationURL,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Location returns the stored location string for a courier, or ("", false)
// when no location row exists.
func (r *CourierRepo) Location(ctx context.Context, courierID int64) (string, bool, error) {
	var loc string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(location, '') FROM courier_location WHERE courier_id=$1`, courierID,
	).Scan(&loc)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get courier %d location: %w", courierID, err)
	}
	return loc, true, nil
}

// DeliveryPerson returns the delivery-person contact for a courier, read off
// the denormalized courier columns, or nil if the courier does not exist.
func (r *CourierRepo) DeliveryPerson(ctx context.Context, courierID int64) (*domain.DeliveryPerson, error) {
	var p domain.DeliveryPerson
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(delivery_person_name, 'N/A'), COALESCE(delivery_person_id, 'N/A')
        FROM couriers WHERE id=$1
    `, courierID).Scan(&p.Name, &p.Contact)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d delivery person: %w", courierID, err)
	}
	return &p, nil
}
