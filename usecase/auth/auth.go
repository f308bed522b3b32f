package auth

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/internal/audit"
	"github.com/gatehouse/authengine/repository"
	"github.com/gatehouse/authengine/usecase/permission"
)

// DefaultSessionTimeout covers a full workday.
const DefaultSessionTimeout = 28800 * time.Second

// Config carries the facade's policy knobs.
type Config struct {
	// SessionTimeout is the business-level expiry: a session whose age
	// exceeds it is dead regardless of whether the row still exists.
	SessionTimeout time.Duration

	// CacheTTL bounds the read-through permission cache entries.
	CacheTTL time.Duration
}

// Service orchestrates credential/token validation, the session store and
// the permission resolver into the public authentication workflows. It owns
// the timeout policy and the fatal/recoverable error split: expected
// failures surface as the UNAUTHORIZED domain error, storage failures are
// logged with fatal=true and returned unchanged.
type Service struct {
	users       repository.UserDirectory
	sessions    repository.SessionStore
	resolver    *permission.Resolver
	cache       repository.PermissionCache
	credentials *CredentialValidator
	tokens      TokenValidator
	recorder    audit.Recorder
	logger      *zap.Logger
	timeout     time.Duration
	cacheTTL    time.Duration

	now func() time.Time
}

func New(
	users repository.UserDirectory,
	sessions repository.SessionStore,
	resolver *permission.Resolver,
	cache repository.PermissionCache,
	credentials *CredentialValidator,
	tokens TokenValidator,
	recorder audit.Recorder,
	logger *zap.Logger,
	cfg Config,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	if tokens == nil {
		tokens = StructuralValidator{}
	}
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Service{
		users:       users,
		sessions:    sessions,
		resolver:    resolver,
		cache:       cache,
		credentials: credentials,
		tokens:      tokens,
		recorder:    recorder,
		logger:      logger,
		timeout:     cfg.SessionTimeout,
		cacheTTL:    cfg.CacheTTL,
		now:         time.Now,
	}
}

// SessionTimeout exposes the configured timeout to collaborators such as
// the sweeper, which must reuse the exact same predicate.
func (s *Service) SessionTimeout() time.Duration {
	return s.timeout
}

// AuthenticateByCredential validates an email/password pair, upserts a
// session with a freshly generated bearer token and populates the
// permission cache.
func (s *Service) AuthenticateByCredential(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	const op = "authenticate_by_credential"

	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userID, ok, err := s.credentials.Validate(ctx, email, password)
	if err != nil {
		return nil, s.fatal(op, err)
	}
	if !ok {
		s.auditFailure(ctx, op, "", "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, op, userID, NewBearerToken())
}

// AuthenticateByToken validates a caller-supplied bearer token, confirms the
// user exists and is active, then upserts the session for that exact token.
func (s *Service) AuthenticateByToken(ctx context.Context, userID, token string) (*domain.AuthResult, error) {
	const op = "authenticate_by_token"

	if userID == "" || token == "" {
		return nil, domain.ErrMalformedToken
	}

	if err := s.tokens.Validate(token); err != nil {
		s.auditFailure(ctx, op, userID, "malformed token")
		return nil, domain.ErrMalformedToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			s.auditFailure(ctx, op, userID, "user not found")
			return nil, domain.AuthFailureFor(userID, "user not found")
		}
		return nil, s.fatal(op, err)
	}
	if !user.IsActive() {
		s.auditFailure(ctx, op, userID, "user not active")
		return nil, domain.AuthFailureFor(userID, "invalid credentials")
	}

	return s.establishSession(ctx, op, userID, token)
}

// IsSessionLive is the only path that transitions a session from active to
// expired. Expiry is discovered lazily here; there is no background sweep
// involved in correctness.
func (s *Service) IsSessionLive(ctx context.Context, userID, token string) (bool, error) {
	const op = "is_session_live"

	session, err := s.sessions.FindActive(ctx, userID, token)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			// Not a security event: absent sessions are routine.
			s.logger.Debug("no session found", zap.String("user_id", userID))
			return false, nil
		}
		return false, s.fatal(op, err)
	}

	age := session.Age(s.now())
	if age > s.timeout {
		if err := s.sessions.Expire(ctx, session.ID); err != nil {
			return false, s.fatal(op, err)
		}
		s.invalidateCache(ctx, userID)
		s.recorder.Emit(ctx, audit.Event{
			Name:      "session deactivated",
			Outcome:   audit.OutcomeSuccess,
			Operation: op,
			Fields: map[string]string{
				"user_id":    userID,
				"session_id": session.ID,
				"reason":     "timeout",
				"duration":   age.String(),
			},
		})
		return false, nil
	}

	if err := s.sessions.Touch(ctx, session.ID); err != nil {
		return false, s.fatal(op, err)
	}
	return true, nil
}

// GetEffectivePermissions never fails the caller: every error path degrades
// to an empty set, because an authorization check that throws produces
// inconsistent fail-open/fail-closed behavior across call sites.
func (s *Service) GetEffectivePermissions(ctx context.Context, userID string) domain.PermissionSet {
	if s.cache != nil {
		set, hit, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("permission cache read failed", zap.String("user_id", userID), zap.Error(err))
		} else if hit {
			return set
		}
	}

	set, err := s.sessions.ReadCachedPermissions(ctx, userID, s.timeout)
	if err != nil {
		s.logger.Warn("session permission cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else if !set.IsEmpty() {
		s.storeCache(ctx, userID, set)
		return set
	}

	// Cache miss: recompute. A resolver failure degrades to "no
	// permissions" rather than an error.
	set, err = s.resolver.Resolve(ctx, userID)
	if err != nil {
		s.logger.Warn("permission resolution degraded to empty set",
			zap.String("user_id", userID), zap.Error(err))
		return domain.PermissionSet{}
	}
	s.storeCache(ctx, userID, set)
	return set
}

func (s *Service) establishSession(ctx context.Context, op, userID, token string) (*domain.AuthResult, error) {
	session, err := s.sessions.Upsert(ctx, userID, token)
	if err != nil {
		return nil, s.fatal(op, err)
	}

	// The two-step upsert-then-cache sequence is not transactional: a
	// failure here leaves an empty cache, which reads as a miss later.
	direct, inherited, err := s.resolver.ResolveChains(ctx, userID)
	if err != nil {
		return nil, s.fatal(op, err)
	}
	groups, err := s.resolver.ResolveGroupMemberships(ctx, userID)
	if err != nil {
		return nil, s.fatal(op, err)
	}
	if err := s.sessions.WriteCachedPermissions(ctx, session.ID, direct, inherited, groups); err != nil {
		return nil, s.fatal(op, err)
	}

	permissions := domain.NewPermissionSet(direct...).Union(domain.NewPermissionSet(inherited...))
	s.storeCache(ctx, userID, permissions)

	s.recorder.Emit(ctx, audit.Event{
		Name:      "authentication",
		Outcome:   audit.OutcomeSuccess,
		Operation: op,
		Fields: map[string]string{
			"user_id":          userID,
			"session_id":       session.ID,
			"permission_count": strconv.Itoa(len(permissions)),
		},
	})

	return &domain.AuthResult{
		Success:     true,
		SessionID:   session.ID,
		UserID:      userID,
		Permissions: permissions,
		Token:       token,
	}, nil
}

func (s *Service) storeCache(ctx context.Context, userID string, set domain.PermissionSet) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, set, s.cacheTTL); err != nil {
		s.logger.Warn("permission cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *Service) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("permission cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// fatal logs an infrastructure failure and hands it back unchanged. The
// engine never masks these as authentication failures.
func (s *Service) fatal(op string, err error) error {
	s.logger.Error("infrastructure failure",
		zap.String("operation", op),
		zap.Bool("fatal", true),
		zap.Error(err),
	)
	return err
}

func (s *Service) auditFailure(ctx context.Context, op, userID, reason string) {
	fields := map[string]string{"reason": reason}
	if userID != "" {
		fields["user_id"] = userID
	}
	s.recorder.Emit(ctx, audit.Event{
		Name:      "authentication",
		Outcome:   audit.OutcomeFailure,
		Operation: op,
		Fields:    fields,
	})
}
