package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	testctx "github.com/opst/mealplanner/internal/testutils/context"
	"github.com/opst/mealplanner/pkg/utils/filewatch"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func touch(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUntilModifyContext(t *testing.T) {
	type when struct {
		// prepare files in dir, and return paths to be watched.
		prepare func(t *testing.T, dir string) []string

		// modify files in dir.
		modify func(t *testing.T, dir string)
	}
	type then struct {
		canceled bool
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			dir := t.TempDir()
			targets := when.prepare(t, dir)

			ctx, cancelTest := testctx.WithTest(context.Background(), t)
			defer cancelTest()

			watched, cancel, err := filewatch.UntilModifyContext(ctx, targets...)
			if err != nil {
				t.Fatal(err)
			}
			defer cancel()

			if err := watched.Err(); err != nil {
				t.Fatalf("context is done before modification: %v", context.Cause(watched))
			}

			when.modify(t, dir)

			select {
			case <-watched.Done():
				if !then.canceled {
					t.Errorf("context is canceled: %v", context.Cause(watched))
				}
			case <-time.After(500 * time.Millisecond):
				if then.canceled {
					t.Error("context is not canceled")
				}
			}
		}
	}

	config := func(t *testing.T, dir string) []string {
		touch(t, filepath.Join(dir, "config.yaml"), "port: 8080")
		touch(t, filepath.Join(dir, "other.txt"), "")
		return []string{filepath.Join(dir, "config.yaml")}
	}
	wholeDir := func(t *testing.T, dir string) []string {
		return []string{dir}
	}

	t.Run("When a watched file is written, it cancels context", theory(
		when{
			prepare: config,
			modify: func(t *testing.T, dir string) {
				touch(t, filepath.Join(dir, "config.yaml"), "port: 8081")
			},
		},
		then{canceled: true},
	))

	t.Run("When a watched file is replaced by rename, it cancels context", theory(
		when{
			prepare: config,
			modify: func(t *testing.T, dir string) {
				touch(t, filepath.Join(dir, "config.yaml.new"), "port: 8081")
				if err := os.Rename(
					filepath.Join(dir, "config.yaml.new"), filepath.Join(dir, "config.yaml"),
				); err != nil {
					t.Fatal(err)
				}
			},
		},
		then{canceled: true},
	))

	t.Run("When a watched file is deleted, it cancels context", theory(
		when{
			prepare: config,
			modify: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, "config.yaml")); err != nil {
					t.Fatal(err)
				}
			},
		},
		then{canceled: true},
	))

	t.Run("When a sibling of a watched file is written, it keeps context", theory(
		when{
			prepare: config,
			modify: func(t *testing.T, dir string) {
				touch(t, filepath.Join(dir, "other.txt"), "hello")
			},
		},
		then{canceled: false},
	))

	t.Run("When a file is created in a watched directory, it cancels context", theory(
		when{
			prepare: wholeDir,
			modify: func(t *testing.T, dir string) {
				touch(t, filepath.Join(dir, "new"), "")
			},
		},
		then{canceled: true},
	))

	t.Run("When a target does not exist, it fails", func(t *testing.T) {
		_, _, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(t.TempDir(), "missing"),
		)
		if err == nil {
			t.Error("expected error, but nil")
		}
	})
}
