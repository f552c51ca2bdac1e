package schema_test

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/internal/commandline"
	"github.com/opst/mealplanner/cmd/mealadm/subcommands/schema"
	mockdb "github.com/opst/mealplanner/pkg/domain/mealplanner/db/mock"
)

func TestUpgrade(t *testing.T) {
	type when struct {
		current    int
		latest     int
		upgradeErr error
	}
	type then struct {
		upgraded uint
		version  int
		wantErr  bool
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			db := mockdb.New()
			db.SchemaMock.Current = when.current
			db.SchemaMock.Newest = when.latest
			db.SchemaMock.UpgradeErr = when.upgradeErr

			cl := commandline.MockCommandline[schema.UpgradeFlag]{
				Fullname_: "mealadm schema upgrade",
				Stdout_:   new(strings.Builder),
				Stderr_:   new(strings.Builder),
			}

			err := schema.Upgrade()(
				context.Background(), log.New(io.Discard, "", 0), nil, db, cl, nil,
			)
			if then.wantErr != (err != nil) {
				t.Errorf("err = %v, want error? %v", err, then.wantErr)
			}
			if when.upgradeErr != nil && !errors.Is(err, when.upgradeErr) {
				t.Errorf("err = %v, want %v", err, when.upgradeErr)
			}
			if got := db.SchemaMock.Calls.Upgrade; got != then.upgraded {
				t.Errorf("Upgrade is called %d times, want %d", got, then.upgraded)
			}
			if db.SchemaMock.Current != then.version {
				t.Errorf("version = %d, want %d", db.SchemaMock.Current, then.version)
			}
		}
	}

	t.Run("When the schema is older, it upgrades", theory(
		when{current: 1, latest: 3},
		then{upgraded: 1, version: 3},
	))
	t.Run("When the database is empty, it upgrades", theory(
		when{current: 0, latest: 1},
		then{upgraded: 1, version: 1},
	))
	t.Run("When the schema is latest, it does nothing", theory(
		when{current: 3, latest: 3},
		then{upgraded: 0, version: 3},
	))
	t.Run("When the schema is newer than known, it fails without upgrading", theory(
		when{current: 4, latest: 3},
		then{upgraded: 0, version: 4, wantErr: true},
	))
	t.Run("When upgrading fails, it returns the error", theory(
		when{current: 1, latest: 2, upgradeErr: errors.New("fake error")},
		then{upgraded: 1, version: 1, wantErr: true},
	))
}
