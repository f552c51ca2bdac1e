package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/opst/mealplanner/pkg/configs/server"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	pgmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db/postgres"
	"github.com/youta-t/flarc"
)

const EnvConfig = "MEALPLANNER_CONFIG"

type CommonFlags struct {
	ConfigPath string `flag:"config-path" metavar:"path/to/config.yaml" help:"server configuration file. dburi, auth and housekeeping are read from it."`
}

func DefaultCommonFlags() CommonFlags {
	return CommonFlags{ConfigPath: os.Getenv(EnvConfig)}
}

// Task is a subcommand working on the database.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	conf *server.ServerConfig,
	db dbmealplanner.Database,
	cl flarc.Commandline[T],
	params []any,
) error

// Connector opens the database for a subcommand.
type Connector[T any] func(ctx context.Context, conf *server.ServerConfig, flags T) (dbmealplanner.Database, error)

// Postgres connects to conf.DBURI().
func Postgres[T any](options ...pgmealplanner.Option) Connector[T] {
	return func(ctx context.Context, conf *server.ServerConfig, _ T) (dbmealplanner.Database, error) {
		return pgmealplanner.New(ctx, conf.DBURI(), options...)
	}
}

// NewTask adapts task into flarc.Task.
//
// It reads the server configuration given by CommonFlags and opens the database with connect.
func NewTask[T any](connect Connector[T], task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}
		if commonFlag.ConfigPath == "" {
			return fmt.Errorf(
				"%w: --config-path (or environment variable %s) is required",
				flarc.ErrUsage, EnvConfig,
			)
		}

		logger := log.New(cl.Stderr(), fmt.Sprintf("[%s] ", cl.Fullname()), log.LstdFlags)

		conf, err := server.LoadServerConfig(commonFlag.ConfigPath)
		if err != nil {
			return fmt.Errorf("can not read configuration (%s): %w", commonFlag.ConfigPath, err)
		}

		db, err := connect(ctx, conf, cl.Flags())
		if err != nil {
			return fmt.Errorf("can not connect to database: %w", err)
		}
		defer db.Close()

		return task(ctx, logger, conf, db, cl, newpos)
	}
}

// WriteJSON writes v into w as indented json.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
