package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/opst/mealplanner/cmd/mealadm/subcommands/common"
	subpayment "github.com/opst/mealplanner/cmd/mealadm/subcommands/payment"
	subschema "github.com/opst/mealplanner/cmd/mealadm/subcommands/schema"
	subtoken "github.com/opst/mealplanner/cmd/mealadm/subcommands/token"
	subuser "github.com/opst/mealplanner/cmd/mealadm/subcommands/user"
	"github.com/opst/mealplanner/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := log.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	schema := try.To(subschema.New()).OrFatal(logger)
	user := try.To(subuser.New()).OrFatal(logger)
	token := try.To(subtoken.New()).OrFatal(logger)
	payment := try.To(subpayment.New()).OrFatal(logger)

	mealadm := try.To(
		flarc.NewCommandGroup(
			"mealplanner administration tool",
			common.DefaultCommonFlags(),
			flarc.WithSubcommand("schema", schema),
			flarc.WithSubcommand("user", user),
			flarc.WithSubcommand("token", token),
			flarc.WithSubcommand("payment", payment),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, mealadm, flarc.WithHelp(true)))
}
