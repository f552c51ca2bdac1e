package token

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/common"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/configs/server"
	"github.com/opst/mealplanner/pkg/domain"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	"github.com/youta-t/flarc"
)

const ARG_USER = "USER"

type IssueFlag struct {
	TTL string `flag:"ttl" metavar:"duration" help:"lifetime of the token, like 24h. Defaults to auth.tokenTTL in config."`
}

func New() (flarc.Command, error) {
	issue, err := NewIssue()
	if err != nil {
		return nil, err
	}
	return flarc.NewCommandGroup(
		"Manage bearer tokens.",
		struct{}{},
		flarc.WithSubcommand("issue", issue),
	)
}

func NewIssue() (flarc.Command, error) {
	return flarc.NewCommand(
		"issue a token for a user",
		IssueFlag{},
		flarc.Args{
			{
				Name: ARG_USER, Required: true,
				Help: "id or email of the user.",
			},
		},
		common.NewTask(common.Postgres[IssueFlag](), Issue(LoadKeyring)),
		flarc.WithDescription(`
Issue a bearer token for a user, and print it.

The token is signed by the key file in config (auth.keyfile).
Pass it as "Authorization: Bearer TOKEN" header.
`),
	)
}

// LoadKeyring reads the key file named in conf.
func LoadKeyring(conf *server.ServerConfig) (*auth.Keyring, error) {
	return auth.LoadKeyring(conf.Auth().Issuer(), conf.Auth().Keyfile())
}

func Issue(keyring func(*server.ServerConfig) (*auth.Keyring, error)) common.Task[IssueFlag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *server.ServerConfig,
		db dbmealplanner.Database,
		cl flarc.Commandline[IssueFlag],
		_ []any,
	) error {
		flags := cl.Flags()
		ttl := conf.Auth().TokenTTL()
		if flags.TTL != "" {
			d, err := time.ParseDuration(flags.TTL)
			if err != nil || d <= 0 {
				return errors.Join(flarc.ErrUsage, fmt.Errorf("--ttl should be a positive duration: %q", flags.TTL))
			}
			ttl = d
		}

		who := cl.Args()[ARG_USER][0]
		var user domain.User
		if id, err := strconv.ParseInt(who, 10, 64); err == nil {
			user, err = db.User().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("user %d: %w", id, err)
			}
		} else {
			user, err = db.User().GetByEmail(ctx, who)
			if err != nil {
				return fmt.Errorf("user %s: %w", who, err)
			}
		}

		k, err := keyring(conf)
		if err != nil {
			return err
		}
		token, err := k.Issue(user, ttl)
		if err != nil {
			return err
		}

		logger.Printf("token for user %d (%s) is issued. it expires in %s.", user.Id, user.Email, ttl)
		_, err = io.WriteString(cl.Stdout(), token+"\n")
		return err
	}
}
