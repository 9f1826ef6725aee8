package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObserved(slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), slow), logs
}

func trace(l gormlogger.Interface, elapsed time.Duration, err error) {
	l.Trace(context.Background(), time.Now().Add(-elapsed), func() (string, int64) {
		return "SELECT 1", 1
	}, err)
}

func TestGormLogger_Trace(t *testing.T) {
	l, logs := newObserved(100 * time.Millisecond)

	trace(l, time.Millisecond, nil)
	trace(l, time.Second, nil)
	trace(l, time.Millisecond, errors.New("boom"))
	trace(l, time.Millisecond, gorm.ErrRecordNotFound)

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "slow query", entries[1].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
		// record-not-found is a normal outcome, not a failure
		assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
	}
}

func TestGormLogger_LogModeSilent(t *testing.T) {
	l, logs := newObserved(0)
	silent := l.LogMode(gormlogger.Silent)

	trace(silent, time.Millisecond, errors.New("boom"))
	silent.Error(context.Background(), "x %d", 1)
	assert.Zero(t, logs.Len())

	// original is untouched
	l.Warn(context.Background(), "w %s", "a")
	assert.Equal(t, 1, logs.Len())
}
