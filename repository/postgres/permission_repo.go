package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

type permissionAssignments struct {
	pool *pgxpool.Pool
}

// NewPermissionAssignments instantiates the Postgres-backed view of the
// grant tables. Resolution policy is ALLOW-only, so DENY rows are filtered
// at the query.
func NewPermissionAssignments(pool *pgxpool.Pool) repository.PermissionAssignments {
	return &permissionAssignments{pool: pool}
}

func (r *permissionAssignments) UserPermissions(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT permission_id
		FROM permission_assignments_user
		WHERE user_id = $1 AND effect = 'allow'
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.StorageFailure("permission_assignments_user.list", err)
	}
	return collectStrings(rows, "permission_assignments_user.list")
}

func (r *permissionAssignments) GroupPermissions(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT pag.permission_id
		FROM permission_assignments_group pag
		JOIN group_memberships gm ON gm.group_id = pag.group_id
		WHERE gm.user_id = $1 AND gm.status = 'active' AND pag.effect = 'allow'
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.StorageFailure("permission_assignments_group.list", err)
	}
	return collectStrings(rows, "permission_assignments_group.list")
}

func (r *permissionAssignments) ActiveGroups(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT pg.name
		FROM permission_groups pg
		JOIN group_memberships gm ON gm.group_id = pg.id
		WHERE gm.user_id = $1 AND gm.status = 'active'
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.StorageFailure("group_memberships.list", err)
	}
	return collectStrings(rows, "group_memberships.list")
}

func collectStrings(rows pgx.Rows, op string) ([]string, error) {
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, domain.StorageFailure(op, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure(op, err)
	}
	return values, nil
}
