package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/common"
	"github.com/opst/mealplanner/cmd/mealplanner/tasks/purge"
	apipayments "github.com/opst/mealplanner/pkg/api/types/payments"
	"github.com/opst/mealplanner/pkg/configs/server"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
	"github.com/youta-t/flarc"
)

type PurgeFlag struct {
	Before    string `flag:"before" metavar:"RFC3339 date-time" help:"purge payments soft-deleted before this time. Exclusive with --retention."`
	Retention string `flag:"retention" metavar:"duration" help:"purge payments soft-deleted longer than this, like 720h. Defaults to housekeeping.paymentRetention in config."`
}

func New() (flarc.Command, error) {
	p, err := NewPurge()
	if err != nil {
		return nil, err
	}
	return flarc.NewCommandGroup(
		"Manage payments.",
		struct{}{},
		flarc.WithSubcommand("purge", p),
	)
}

func NewPurge() (flarc.Command, error) {
	return flarc.NewCommand(
		"purge soft-deleted payments",
		PurgeFlag{},
		flarc.Args{},
		common.NewTask(common.Postgres[PurgeFlag](), Purge(time.Now)),
		flarc.WithDescription(`
Remove payments soft-deleted long ago permanently, and print how many are removed.

Servers do this periodically by housekeeping.policy in config.
Use this command to do it now, or with other retention.
`),
	)
}

func Purge(now func() time.Time) common.Task[PurgeFlag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *server.ServerConfig,
		db dbmealplanner.Database,
		cl flarc.Commandline[PurgeFlag],
		_ []any,
	) error {
		flags := cl.Flags()
		t := now()

		retention := conf.Housekeeping().PaymentRetention()
		switch {
		case flags.Before != "" && flags.Retention != "":
			return errors.Join(flarc.ErrUsage, errors.New("--before and --retention are exclusive"))
		case flags.Before != "":
			before, err := rfctime.ParseRFC3339DateTime(flags.Before)
			if err != nil {
				return errors.Join(flarc.ErrUsage, fmt.Errorf("--before should be RFC3339 date-time: %w", err))
			}
			retention = t.Sub(before.Time())
		case flags.Retention != "":
			d, err := time.ParseDuration(flags.Retention)
			if err != nil || d < 0 {
				return errors.Join(flarc.ErrUsage, fmt.Errorf("--retention should be a non-negative duration: %q", flags.Retention))
			}
			retention = d
		}

		task := purge.Task(db.Payment(), db.Lock(), retention, nil, func() time.Time { return t })
		n, _, err := task(ctx, purge.Seed())
		if err != nil {
			return err
		}
		logger.Printf("%d payments soft-deleted before %s are purged.", n, t.Add(-retention).Format(time.RFC3339))
		return common.WriteJSON(cl.Stdout(), apipayments.PurgeResult{Purged: n})
	}
}
