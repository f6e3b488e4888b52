package relational

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

func traceSQL() (string, int64) { return "INSERT INTO usuarios ...", 0 }

func TestQueryLogger_SkipsExpectedErrors(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Trace(context.Background(), time.Now(), traceSQL, fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))
	l.Trace(context.Background(), time.Now(), traceSQL, gorm.ErrRecordNotFound)

	if buf.Len() != 0 {
		t.Fatalf("expected no output for expected errors, got %s", buf.String())
	}
}

func TestQueryLogger_LogsFailuresAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Trace(context.Background(), time.Now(), traceSQL, errors.New("disk I/O error"))

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "disk I/O error") {
		t.Fatalf("expected a JSON error line, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output must not carry ANSI colour codes: %q", out)
	}
}

func TestQueryLogger_SlowQueryAndSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Trace(context.Background(), time.Now().Add(-time.Second), traceSQL, nil)
	if !strings.Contains(buf.String(), "slow query") {
		t.Fatalf("expected slow query warning, got %q", buf.String())
	}

	buf.Reset()
	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), traceSQL, errors.New("boom"))
	if buf.Len() != 0 {
		t.Fatalf("silent mode must not log, got %q", buf.String())
	}
}

func TestConnect_DuplicateUserIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	db, err := Connect(context.Background(), Config{
		SQLitePath: filepath.Join(t.TempDir(), "quiet.db"),
		Log:        zerolog.New(&buf).Level(zerolog.InfoLevel),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	repo := NewUserRepository(db)
	ctx := context.Background()
	if _, err := repo.Create(ctx, &domain.User{Name: "ana", PasswordHash: "1", Role: "gestor"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Name: "ana", PasswordHash: "2", Role: "gestor"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := repo.FindByName(ctx, "ninguem"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if buf.Len() != 0 {
		t.Fatalf("expected outcomes must stay out of the log, got %s", buf.String())
	}
}
