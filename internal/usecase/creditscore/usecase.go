package creditscore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	domain "loan-portal/internal/domain/creditscore"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/transaction"
	"loan-portal/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	scores domain.Repository
	loans  loan.Repository
	txs    transaction.Repository
	params domain.Params
	log    *zap.Logger
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, scores domain.Repository, loans loan.Repository, txs transaction.Repository, p domain.Params, log *zap.Logger) *Usecase {
	return &Usecase{
		uow:    tx,
		scores: scores,
		loans:  loans,
		txs:    txs,
		params: p,
		log:    log.Named("creditscore"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the stored score, or an unsaved default when the user has none.
func (u *Usecase) Get(ctx context.Context, userID string) (*domain.CreditScore, error) {
	return current(ctx, u.scores, userID, u.params)
}

func current(ctx context.Context, repo domain.Repository, userID string, p domain.Params) (*domain.CreditScore, error) {
	s, err := repo.Get(ctx, userID)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, apperr.ErrNotFound):
		return &domain.CreditScore{UserID: userID, Score: p.Default}, nil
	}
	return nil, err
}

// adjust applies delta as a relative update; the row stays locked until the
// new value has been read back.
func (u *Usecase) adjust(ctx context.Context, userID string, delta int) (int, error) {
	p := u.params
	var score int
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		score, err = r.Scores.Adjust(ctx, userID, delta, p.Default, p.Min, p.Max, u.now())
		return err
	})
	return score, err
}

// Nudge rewards a successful payment, capped at the maximum score.
func (u *Usecase) Nudge(ctx context.Context, userID string) (int, error) {
	return u.adjust(ctx, userID, u.params.Nudge)
}

// Recompute derives the score from the user's full loan and transaction
// history and stores it.
func (u *Usecase) Recompute(ctx context.Context, userID string) (domain.Breakdown, error) {
	loans, err := u.loans.ListByUser(ctx, userID)
	if err != nil {
		return domain.Breakdown{}, err
	}
	txs, err := u.txs.ListByUser(ctx, userID)
	if err != nil {
		return domain.Breakdown{}, err
	}

	now := u.now()
	b := domain.Compute(loans, txs, now, u.params)
	if err := u.scores.Upsert(ctx, &domain.CreditScore{UserID: userID, Score: b.Score, UpdatedAt: now}); err != nil {
		return domain.Breakdown{}, err
	}
	u.log.Info("score recomputed", zap.String("user_id", userID), zap.Int("score", b.Score))
	return b, nil
}

// PenalizeLate lowers the score of every user holding a late loan. One
// failing user does not stop the others.
func (u *Usecase) PenalizeLate(ctx context.Context) (int, error) {
	users, err := u.loans.UsersWithLateLoans(ctx)
	if err != nil {
		return 0, err
	}
	var errs []error
	done := 0
	for _, userID := range users {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		score, err := u.adjust(ctx, userID, -u.params.LatePenalty)
		if err != nil {
			errs = append(errs, fmt.Errorf("penalize %s: %w", userID, err))
			continue
		}
		done++
		u.log.Debug("late penalty applied", zap.String("user_id", userID), zap.Int("score", score))
	}
	return done, errors.Join(errs...)
}

// MarkOverdue flags accepted loans whose next payment date has passed.
func (u *Usecase) MarkOverdue(ctx context.Context) (int64, error) {
	return u.loans.MarkOverdue(ctx, u.now())
}
