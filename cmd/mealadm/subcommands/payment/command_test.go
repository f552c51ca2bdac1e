package payment_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/internal/commandline"
	"github.com/opst/mealplanner/cmd/mealadm/subcommands/payment"
	"github.com/opst/mealplanner/cmd/mealplanner/tasks/purge"
	apipayments "github.com/opst/mealplanner/pkg/api/types/payments"
	"github.com/opst/mealplanner/pkg/configs/server"
	mockdb "github.com/opst/mealplanner/pkg/domain/mealplanner/db/mock"
	"github.com/opst/mealplanner/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func TestPurge(t *testing.T) {
	conf := try.To(server.Unmarshal([]byte(`
dburi: postgres://mealplanner-test:5432/mealplanner
auth:
  keyfile: /not/used
housekeeping:
  paymentRetention: 48h
`))).OrFatal(t)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	type then struct {
		before time.Time
		err    error
	}

	theory := func(flags payment.PurgeFlag, then then) func(*testing.T) {
		return func(t *testing.T) {
			db := mockdb.New()
			db.Payments.Impl.PurgeExpired = func(ctx context.Context, before time.Time) (int64, error) {
				return 4, nil
			}
			stdout := new(strings.Builder)
			cl := commandline.MockCommandline[payment.PurgeFlag]{
				Fullname_: "mealadm payment purge",
				Flags_:    flags,
				Stdout_:   stdout,
				Stderr_:   io.Discard,
			}

			err := payment.Purge(func() time.Time { return now })(
				context.Background(), log.New(io.Discard, "", 0), conf, db, cl, nil,
			)
			if then.err != nil {
				if !errors.Is(err, then.err) {
					t.Errorf("err = %v, want %v", err, then.err)
				}
				if n := db.Payments.Calls.PurgeExpired.Times(); n != 0 {
					t.Errorf("PurgeExpired is called %d times", n)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if calls := db.Payments.Calls.PurgeExpired; len(calls) != 1 || !calls[0].Equal(then.before) {
				t.Errorf("PurgeExpired is called with %v, want [%s]", calls, then.before)
			}
			if locks := db.Locks.Calls.Lock; len(locks) != 1 || locks[0] != purge.LockName {
				t.Errorf("locks: %v", locks)
			}

			got := apipayments.PurgeResult{}
			if err := json.Unmarshal([]byte(stdout.String()), &got); err != nil {
				t.Fatal(err)
			}
			if got.Purged != 4 {
				t.Errorf("printed: %+v", got)
			}
		}
	}

	t.Run("When no flags are given, it uses retention in config", theory(
		payment.PurgeFlag{},
		then{before: now.Add(-48 * time.Hour)},
	))
	t.Run("When --retention is given, it is used", theory(
		payment.PurgeFlag{Retention: "1h"},
		then{before: now.Add(-time.Hour)},
	))
	t.Run("When --before is given, it is used", theory(
		payment.PurgeFlag{Before: "2024-05-01T00:00:00Z"},
		then{before: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	))
	t.Run("When both --before and --retention are given, it is usage error", theory(
		payment.PurgeFlag{Before: "2024-05-01T00:00:00Z", Retention: "1h"},
		then{err: flarc.ErrUsage},
	))
	t.Run("When --retention is malformed, it is usage error", theory(
		payment.PurgeFlag{Retention: "a while"},
		then{err: flarc.ErrUsage},
	))
}
