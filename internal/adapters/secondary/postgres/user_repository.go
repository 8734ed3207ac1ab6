package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// UserRepository is the secondary adapter for user persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, organization_id, full_name, email, hashed_password, is_active, created_at, last_active_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id           pgtype.UUID
		orgID        pgtype.UUID
		user         domain.User
		createdAt    pgtype.Timestamptz
		lastActiveAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &orgID, &user.FullName, &user.Email, &user.HashedPassword, &user.IsActive, &createdAt, &lastActiveAt)
	if err != nil {
		return nil, err
	}

	user.ID = id.Bytes
	user.OrganizationID = orgID.Bytes
	user.CreatedAt = createdAt.Time
	if lastActiveAt.Valid {
		user.LastActiveAt = &lastActiveAt.Time
	}

	return &user, nil
}

// Create persists a new user entity.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (organization_id, full_name, email, hashed_password, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + userColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: user.OrganizationID, Valid: true},
		user.FullName,
		user.Email,
		user.HashedPassword,
	)

	created, err := scanUser(row)
	if err != nil {
		// A more robust implementation would check for the specific unique violation error code
		return nil, err
	}
	return created, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListTesters retrieves the active users in the org that cases can be
// routed to. Viewers are excluded.
func (r *UserRepository) ListTesters(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT DISTINCT u.id, u.organization_id, u.full_name, u.email, u.hashed_password, u.is_active, u.created_at, u.last_active_at
		FROM users u
		INNER JOIN user_roles ur ON ur.user_id = u.id
		INNER JOIN roles r ON r.id = ur.role_id
		WHERE u.organization_id = $1
		  AND u.is_active = TRUE
		  AND r.name IN ('admin', 'lead', 'tester')
		ORDER BY u.full_name, u.email
	`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: orgID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
