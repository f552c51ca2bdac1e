package schema

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/common"
	"github.com/opst/mealplanner/pkg/configs/server"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	pgmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db/postgres"
	pgschema "github.com/opst/mealplanner/pkg/domain/schema/db/postgres"
	"github.com/youta-t/flarc"
)

type UpgradeFlag struct {
	Schema string `flag:"schema" metavar:"path/to/schema/postgres" help:"schema repository directory. Defaults to housekeeping.schemaRepository in config."`
}

func New() (flarc.Command, error) {
	upgrade, err := NewUpgrade()
	if err != nil {
		return nil, err
	}
	return flarc.NewCommandGroup(
		"Manage database schema.",
		struct{}{},
		flarc.WithSubcommand("upgrade", upgrade),
	)
}

func NewUpgrade() (flarc.Command, error) {
	return flarc.NewCommand(
		"upgrade database schema to the latest",
		UpgradeFlag{},
		flarc.Args{},
		common.NewTask(connect, Upgrade()),
		flarc.WithDescription(`
Apply schema versions newer than the database has, in order.

The schema repository has directories named with versions (1, 2, ...)
and each directory contains SQL files.

Servers watching the schema quit when the schema is upgraded, to be restarted.
`),
	)
}

func connect(ctx context.Context, conf *server.ServerConfig, flags UpgradeFlag) (dbmealplanner.Database, error) {
	repo := flags.Schema
	if repo == "" {
		repo = conf.Housekeeping().SchemaRepository()
	}
	if repo == "" {
		return nil, fmt.Errorf("%w: --schema is required", flarc.ErrUsage)
	}
	return pgmealplanner.New(
		ctx, conf.DBURI(),
		pgmealplanner.WithSchemaRepository(
			repo, pgschema.WithLogger(log.New(os.Stderr, "[schema] ", log.LstdFlags)),
		),
	)
}

func Upgrade() common.Task[UpgradeFlag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ *server.ServerConfig,
		db dbmealplanner.Database,
		_ flarc.Commandline[UpgradeFlag],
		_ []any,
	) error {
		schema := db.Schema()
		latest, err := schema.Latest()
		if err != nil {
			return err
		}
		current, err := schema.Version(ctx)
		if err != nil {
			return err
		}

		switch {
		case current == latest:
			logger.Printf("schema is up to date (version %d).", current)
			return nil
		case latest < current:
			return fmt.Errorf(
				"database schema (version %d) is newer than this program knows (version %d)",
				current, latest,
			)
		}

		logger.Printf("upgrading schema: version %d -> %d", current, latest)
		if err := schema.Upgrade(ctx); err != nil {
			return err
		}
		logger.Println("schema is upgraded.")
		return nil
	}
}
