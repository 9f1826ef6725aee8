package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-portal/internal/domain/apperr"
	scoreDomain "loan-portal/internal/domain/creditscore"
)

func TestCreditScore_Upsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditScoreRepository(db)
	ctx := context.Background()

	if _, err := repo.Get(ctx, userA); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found before first upsert, got %v", err)
	}

	if err := repo.Upsert(ctx, &scoreDomain.CreditScore{UserID: userA, Score: 755, UpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if err := repo.Upsert(ctx, &scoreDomain.CreditScore{UserID: userA, Score: 735, UpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.Get(ctx, userA)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 735 {
		t.Fatalf("score = %d, want 735", got.Score)
	}

	var rows int64
	db.Model(&scoreDomain.CreditScore{}).Where("user_id = ?", userA).Count(&rows)
	if rows != 1 {
		t.Fatalf("rows for user = %d, want 1", rows)
	}
}

func TestCreditScore_AdjustAppliesRelativeToStoredValue(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditScoreRepository(db)
	ctx := context.Background()
	at := time.Now().UTC()

	// first adjustment creates the row from the base
	got, err := repo.Adjust(ctx, userA, 5, 750, 300, 900, at)
	if err != nil {
		t.Fatalf("Adjust create: %v", err)
	}
	if got != 755 {
		t.Fatalf("score after create = %d, want 755", got)
	}

	// both writers start from 755; each delta lands on the value in the row
	if _, err := repo.Adjust(ctx, userA, 5, 750, 300, 900, at); err != nil {
		t.Fatalf("Adjust nudge: %v", err)
	}
	got, err = repo.Adjust(ctx, userA, -20, 750, 300, 900, at)
	if err != nil {
		t.Fatalf("Adjust penalty: %v", err)
	}
	if got != 740 {
		t.Fatalf("score = %d, want 740 (both adjustments applied)", got)
	}
}

func TestCreditScore_AdjustClamps(t *testing.T) {
	db := openTestDB(t)
	repo := NewCreditScoreRepository(db)
	ctx := context.Background()
	at := time.Now().UTC()

	if err := repo.Upsert(ctx, &scoreDomain.CreditScore{UserID: userA, Score: 898, UpdatedAt: at}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got, err := repo.Adjust(ctx, userA, 5, 750, 300, 900, at); err != nil || got != 900 {
		t.Fatalf("ceiling: got %d err %v, want 900", got, err)
	}
	if err := repo.Upsert(ctx, &scoreDomain.CreditScore{UserID: userB, Score: 310, UpdatedAt: at}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got, err := repo.Adjust(ctx, userB, -20, 750, 300, 900, at); err != nil || got != 300 {
		t.Fatalf("floor: got %d err %v, want 300", got, err)
	}
	// missing row seeds from the clamped base
	if got, err := repo.Adjust(ctx, "c3c3c3c3-0000-4000-8000-000000000003", -500, 750, 300, 900, at); err != nil || got != 300 {
		t.Fatalf("seed: got %d err %v, want 300", got, err)
	}
}
