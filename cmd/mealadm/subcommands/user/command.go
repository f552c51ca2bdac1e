package user

import (
	"context"
	"log"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/common"
	"github.com/opst/mealplanner/pkg/api/binding"
	"github.com/opst/mealplanner/pkg/configs/server"
	"github.com/opst/mealplanner/pkg/domain"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	"github.com/opst/mealplanner/pkg/utils"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	add, err := NewAdd()
	if err != nil {
		return nil, err
	}
	list, err := NewList()
	if err != nil {
		return nil, err
	}
	return flarc.NewCommandGroup(
		"Manage users.",
		struct{}{},
		flarc.WithSubcommand("add", add),
		flarc.WithSubcommand("list", list),
	)
}

type AddFlag struct {
	Name  string `flag:"name" help:"display name of the user."`
	Email string `flag:"email" help:"email address of the user. It should be unique."`
	Admin bool   `flag:"admin" help:"make the user an administrator."`
}

func NewAdd() (flarc.Command, error) {
	return flarc.NewCommand(
		"add a user",
		AddFlag{},
		flarc.Args{},
		common.NewTask(common.Postgres[AddFlag](), Add()),
		flarc.WithDescription(`
Register a new user, and print it as json.

To issue a token for the user, use "token issue".
`),
	)
}

func Add() common.Task[AddFlag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ *server.ServerConfig,
		db dbmealplanner.Database,
		cl flarc.Commandline[AddFlag],
		_ []any,
	) error {
		flags := cl.Flags()
		user, err := db.User().Create(ctx, domain.UserParam{
			Name: flags.Name, Email: flags.Email, Admin: flags.Admin,
		})
		if err != nil {
			return err
		}
		logger.Printf("user %d is added.", user.Id)
		return common.WriteJSON(cl.Stdout(), binding.ComposeUser(user))
	}
}

func NewList() (flarc.Command, error) {
	return flarc.NewCommand(
		"list users",
		struct{}{},
		flarc.Args{},
		common.NewTask(common.Postgres[struct{}](), List()),
	)
}

func List() common.Task[struct{}] {
	return func(
		ctx context.Context,
		_ *log.Logger,
		_ *server.ServerConfig,
		db dbmealplanner.Database,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		users, err := db.User().List(ctx)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), utils.Map(users, binding.ComposeUser))
	}
}
