package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	scoreDomain "loan-portal/internal/domain/creditscore"
)

type CreditScoreRepository struct{ db *gorm.DB }

func NewCreditScoreRepository(db *gorm.DB) *CreditScoreRepository {
	return &CreditScoreRepository{db: db}
}

func (r *CreditScoreRepository) Get(ctx context.Context, userID string) (*scoreDomain.CreditScore, error) {
	var out scoreDomain.CreditScore
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, classify(res.Error)
}

// Upsert inserts or replaces the score keyed on user_id.
func (r *CreditScoreRepository) Upsert(ctx context.Context, s *scoreDomain.CreditScore) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(s)
	return classify(res.Error)
}

// Adjust adds delta to the stored score in a single statement, clamped to
// [lo, hi]. A user without a row starts from base. Returns the new score.
func (r *CreditScoreRepository) Adjust(ctx context.Context, userID string, delta, base, lo, hi int, at time.Time) (int, error) {
	seed := &scoreDomain.CreditScore{UserID: userID, Score: clampScore(base+delta, lo, hi), UpdatedAt: at}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"score": gorm.Expr("CASE WHEN score + ? > ? THEN ? WHEN score + ? < ? THEN ? ELSE score + ? END",
					delta, hi, hi, delta, lo, lo, delta),
				"updated_at": at,
			}),
		}).
		Create(seed)
	if err := classify(res.Error); err != nil {
		return 0, err
	}
	cur, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cur.Score, nil
}

func clampScore(s, lo, hi int) int {
	return min(max(s, lo), hi)
}
