package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

type sessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore instantiates the Postgres-backed durable session store.
func NewSessionStore(pool *pgxpool.Pool) repository.SessionStore {
	return &sessionStore{pool: pool}
}

func (r *sessionStore) Upsert(ctx context.Context, userID, token string) (*domain.Session, error) {
	if userID == "" || token == "" {
		return nil, domain.ErrInvalidPayload
	}

	// The unique key on (user_id, token) makes concurrent upserts converge:
	// the loser of the race lands on DO UPDATE and reuses the winner's row.
	const query = `
	INSERT INTO sessions (
		id, user_id, token,
		user_permission_chain, group_permission_chain, group_memberships,
		initial_access_time, last_access_time
	)
	VALUES ($1, $2, $3, '[]', '[]', '[]', NOW(), NOW())
	ON CONFLICT (user_id, token) DO UPDATE
	SET last_access_time = NOW()
	RETURNING id, user_permission_chain, group_permission_chain, group_memberships,
		initial_access_time, last_access_time;
	`

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), userID, token)

	session := domain.Session{UserID: userID, Token: token}
	var userChain, groupChain, memberships []byte
	if err := row.Scan(&session.ID, &userChain, &groupChain, &memberships,
		&session.InitialAccessTime, &session.LastAccessTime); err != nil {
		return nil, domain.StorageFailure("sessions.upsert", err)
	}
	session.UserPermissionChain = unmarshalChain(userChain)
	session.GroupPermissionChain = unmarshalChain(groupChain)
	session.GroupMemberships = unmarshalChain(memberships)

	return &session, nil
}

func (r *sessionStore) FindActive(ctx context.Context, userID, token string) (*domain.Session, error) {
	const query = `
		SELECT id, user_id, token, user_permission_chain, group_permission_chain,
			group_memberships, initial_access_time, last_access_time
		FROM sessions
		WHERE user_id = $1 AND token = $2
	`
	row := r.pool.QueryRow(ctx, query, userID, token)

	var session domain.Session
	var userChain, groupChain, memberships []byte
	if err := row.Scan(&session.ID, &session.UserID, &session.Token,
		&userChain, &groupChain, &memberships,
		&session.InitialAccessTime, &session.LastAccessTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.StorageFailure("sessions.find", err)
	}
	session.UserPermissionChain = unmarshalChain(userChain)
	session.GroupPermissionChain = unmarshalChain(groupChain)
	session.GroupMemberships = unmarshalChain(memberships)

	return &session, nil
}

func (r *sessionStore) Touch(ctx context.Context, sessionID string) error {
	const query = `UPDATE sessions SET last_access_time = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, sessionID); err != nil {
		return domain.StorageFailure("sessions.touch", err)
	}
	return nil
}

func (r *sessionStore) Expire(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, sessionID); err != nil {
		return domain.StorageFailure("sessions.expire", err)
	}
	return nil
}

func (r *sessionStore) WriteCachedPermissions(ctx context.Context, sessionID string, userPerms, groupPerms, groups []string) error {
	const query = `
	UPDATE sessions
	SET user_permission_chain = $2,
		group_permission_chain = $3,
		group_memberships = $4
	WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, query, sessionID,
		marshalChain(userPerms), marshalChain(groupPerms), marshalChain(groups)); err != nil {
		return domain.StorageFailure("sessions.write_cache", err)
	}
	return nil
}

func (r *sessionStore) ReadCachedPermissions(ctx context.Context, userID string, maxAge time.Duration) (domain.PermissionSet, error) {
	const query = `
		SELECT user_permission_chain, group_permission_chain
		FROM sessions
		WHERE user_id = $1 AND last_access_time > NOW() - $2::interval
		ORDER BY last_access_time DESC
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, userID, maxAge)

	var userChain, groupChain []byte
	if err := row.Scan(&userChain, &groupChain); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PermissionSet{}, nil
		}
		return nil, domain.StorageFailure("sessions.read_cache", err)
	}

	return domain.NewPermissionSet(append(unmarshalChain(userChain), unmarshalChain(groupChain)...)...), nil
}

func (r *sessionStore) DeleteExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	const query = `DELETE FROM sessions WHERE last_access_time <= NOW() - $1::interval`
	tag, err := r.pool.Exec(ctx, query, maxAge)
	if err != nil {
		return 0, domain.StorageFailure("sessions.delete_expired", err)
	}
	return tag.RowsAffected(), nil
}
