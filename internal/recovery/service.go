package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/storage"
)

// AccountStore is the slice of the account store the pipeline needs.
type AccountStore interface {
	GetAccountByEmail(ctx context.Context, email string) (*storage.Account, error)
	UpdateAccountRole(ctx context.Context, email, role string) error
}

// Notifier delivers the out-of-band notice after a successful promotion.
type Notifier interface {
	SendPromotionNotice(ctx context.Context, email string) error
}

// AttemptLimiter throttles verification attempts per caller identity.
// Allow records the attempt and reports whether it is within budget.
type AttemptLimiter interface {
	Allow(key string) bool
}

// Result is the outcome of a successful verification.
type Result struct {
	// Step is 1 or 2 for the intermediate phases, 0 on final success.
	Step int
	// Restored holds the promoted account's email on final success.
	Restored string
}

// Service runs the stateless verification pipeline: classify, verify the
// phase's secrets in fixed order, and on phase 3 promote the account.
type Service struct {
	secrets  *ReferenceSecrets
	store    AccountStore
	notifier Notifier       // optional
	limiter  AttemptLimiter // optional
	logger   *slog.Logger
}

// NewService creates the verification pipeline. notifier and limiter may be
// nil to disable notification and throttling.
func NewService(secrets *ReferenceSecrets, store AccountStore, notifier Notifier, limiter AttemptLimiter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		secrets:  secrets,
		store:    store,
		notifier: notifier,
		limiter:  limiter,
		logger:   logger,
	}
}

// Verify evaluates one recovery request from scratch. Checks run in the
// fixed order email, password1, answer1, answer2, password2 and stop at the
// first failure, so the caller learns nothing about later secrets.
//
// Phases 2 and 3 re-run every earlier check; no trust is carried over from
// a prior call.
func (s *Service) Verify(ctx context.Context, req *Request) (*Result, error) {
	phase := Classify(req)
	if phase == PhaseMalformed {
		return nil, ErrMalformedRequest
	}

	// Throttle before any secret comparison. Every classified attempt
	// counts against the budget, successful ones included.
	if s.limiter != nil && !s.limiter.Allow(strings.ToLower(strings.TrimSpace(req.Email))) {
		s.logger.Warn("recovery_throttled", "email", req.Email)
		return nil, ErrTooManyAttempts
	}

	if !s.secrets.Complete() {
		s.logger.Error("recovery_misconfigured", "reason", "reference secrets missing or malformed")
		return nil, ErrServerMisconfigured
	}

	// Phase 1 checks hold for every phase.
	if !s.secrets.Allowed(req.Email) {
		s.logger.Warn("recovery_rejected", "email", req.Email, "phase", phase.String(), "reason", "unauthorized_email")
		return nil, ErrUnauthorizedEmail
	}
	if !digestEqual(Digest(req.Password1), s.secrets.password1Hash) {
		s.logger.Warn("recovery_rejected", "email", req.Email, "phase", phase.String(), "reason", "invalid_password_1")
		return nil, ErrInvalidPassword1
	}
	if phase == Phase1 {
		s.logger.Info("recovery_step_passed", "email", req.Email, "step", 1)
		return &Result{Step: 1}, nil
	}

	// Phase 2 checks, re-run on phase 3 as well. With an unset answer the
	// empty digest simply mismatches, which keeps phase 3 stateless.
	if !digestEqual(Digest(NormalizeAnswer(req.Answer1)), s.secrets.answer1Hash) {
		s.logger.Warn("recovery_rejected", "email", req.Email, "phase", phase.String(), "reason", "wrong_answer_1")
		return nil, ErrWrongAnswer1
	}
	if !digestEqual(Digest(NormalizeLiteral(req.Answer2)), s.secrets.answer2Hash) {
		s.logger.Warn("recovery_rejected", "email", req.Email, "phase", phase.String(), "reason", "wrong_answer_2")
		return nil, ErrWrongAnswer2
	}
	if phase == Phase2 {
		s.logger.Info("recovery_step_passed", "email", req.Email, "step", 2)
		return &Result{Step: 2}, nil
	}

	// Phase 3.
	if !digestEqual(Digest(req.Password2), s.secrets.password2Hash) {
		s.logger.Warn("recovery_rejected", "email", req.Email, "phase", phase.String(), "reason", "invalid_password_2")
		return nil, ErrInvalidPassword2
	}

	return s.promote(ctx, req.Email)
}

// promote overwrites the account's role with the elevated value. This is
// the pipeline's only side effect and is idempotent: promoting an already
// elevated account rewrites the same value.
func (s *Service) promote(ctx context.Context, email string) (*Result, error) {
	acct, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("recovery_rejected", "email", email, "phase", "phase3", "reason", "account_not_found")
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	if err := s.store.UpdateAccountRole(ctx, acct.Email, storage.RoleSuperAdmin); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("role update: %w", err)
	}

	s.logger.Info("super_admin_restored", "email", acct.Email, "previous_role", acct.Role)

	// Best effort: a failed notice never rolls back the promotion.
	if s.notifier != nil {
		if err := s.notifier.SendPromotionNotice(ctx, acct.Email); err != nil {
			s.logger.Warn("promotion_notice_failed", "email", acct.Email, "error", err)
		}
	}

	return &Result{Restored: acct.Email}, nil
}
