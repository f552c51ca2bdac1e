package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/opst/mealplanner/pkg/conn/db/postgres/pool/testenv"
	pgschema "github.com/opst/mealplanner/pkg/domain/schema/db/postgres"
	"github.com/opst/mealplanner/pkg/utils/try"
)

func repository(t *testing.T, versions ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, v := range versions {
		dir := filepath.Join(root, v)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "00.sql"), []byte("select 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestLatest(t *testing.T) {
	theory := func(versions []string, expected int) func(*testing.T) {
		return func(t *testing.T) {
			testee := pgschema.New(nil, repository(t, versions...))
			actual := try.To(testee.Latest()).OrFatal(t)
			if actual != expected {
				t.Errorf("expected %d, but %d", expected, actual)
			}
		}
	}

	t.Run("When the repository is empty, it returns 0", theory(nil, 0))
	t.Run("When there are versions, it returns the largest", theory([]string{"1", "3", "2"}, 3))
	t.Run("When there are directories not version, it ignores them", theory([]string{"1", "draft", "-4", "2"}, 2))

	t.Run("When the repository is missing, it returns error", func(t *testing.T) {
		testee := pgschema.New(nil, filepath.Join(t.TempDir(), "missing"))
		if _, err := testee.Latest(); err == nil {
			t.Error("expected error, but nil")
		}
	})
}

func TestNull(t *testing.T) {
	ctx := context.Background()
	testee := pgschema.Null()

	if err := testee.Upgrade(ctx); err != nil {
		t.Fatal(err)
	}
	sctx, cancel := testee.Context(ctx)
	defer cancel()
	select {
	case <-sctx.Done():
		t.Error("context of null schema is done")
	default:
	}
}

func TestContext(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When the database is older than the repository, the context is closed", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		current := try.To(pgschema.New(pool, "../../../../../schema/postgres").Version(ctx)).OrFatal(t)

		newer := []string{}
		for v := 1; v <= current+1; v++ {
			newer = append(newer, strconv.Itoa(v))
		}
		testee := pgschema.New(pool, repository(t, newer...), pgschema.WithPollInterval(10*time.Millisecond))

		sctx, cancel := testee.Context(ctx)
		defer cancel()
		select {
		case <-sctx.Done():
		case <-time.After(time.Second):
			t.Error("context is not closed")
		}
	})

	t.Run("When the database is up to date, the context is kept open", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		testee := pgschema.New(pool, "../../../../../schema/postgres", pgschema.WithPollInterval(10*time.Millisecond))

		sctx, cancel := testee.Context(ctx)
		select {
		case <-sctx.Done():
			t.Error("context is closed")
		case <-time.After(50 * time.Millisecond):
		}
		cancel()
		<-sctx.Done()
	})
}
