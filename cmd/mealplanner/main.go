package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/opst/mealplanner/cmd/mealplanner/handlers"
	"github.com/opst/mealplanner/cmd/mealplanner/tasks/purge"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/configs/server"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	pgmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db/postgres"
	pgschema "github.com/opst/mealplanner/pkg/domain/schema/db/postgres"
	"github.com/opst/mealplanner/pkg/loop"
	"github.com/opst/mealplanner/pkg/metrics"
	"github.com/opst/mealplanner/pkg/utils/echoutil"
	"github.com/opst/mealplanner/pkg/utils/filewatch"
)

func main() {
	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	conf, err := server.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	keyring, err := auth.LoadKeyring(conf.Auth().Issuer(), conf.Auth().Keyfile())
	if err != nil {
		log.Fatalf("can not read key: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// config or key is updated. quit to restart server.
	ctx, cancelWatch, err := filewatch.UntilModifyContext(ctx, *configPath, conf.Auth().Keyfile())
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancelWatch()

	dbOptions := []pgmealplanner.Option{}
	if repo := conf.Housekeeping().SchemaRepository(); repo != "" {
		dbOptions = append(dbOptions, pgmealplanner.WithSchemaRepository(
			repo, pgschema.WithLogger(log.New(os.Stderr, "[schema] ", log.LstdFlags)),
		))
	}
	db, err := pgmealplanner.New(ctx, conf.DBURI(), dbOptions...)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	// schema is upgraded by someone else. quit to restart server.
	ctx, cancelSchema := db.Schema().Context(ctx)
	defer cancelSchema()

	m := metrics.New()
	e := newServer(db, keyring, m, *loglevel)

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cert, key := *pcert, *pkey
		if cert != "" && key != "" {
			err = e.StartTLS(":"+conf.Port(), cert, key)
		} else {
			err = e.Start(":" + conf.Port())
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-ctx.Done()
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return e.Shutdown(graceful)
	})
	eg.Go(func() error {
		hk := conf.Housekeeping()
		logger := log.New(os.Stderr, "[purge] ", log.LstdFlags)
		logger.Printf("start. policy: %s, retention: %s", hk.Policy(), hk.PaymentRetention())

		task := purge.Task(db.Payment(), db.Lock(), hk.PaymentRetention(), m, nil)
		total, err := loop.Start(ctx, purge.Seed(), task.Applied(hk.Policy()))
		logger.Printf("stopped. %d payments are purged.", total)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}
}

func newServer(db dbmealplanner.Database, keyring *auth.Keyring, m *metrics.Metrics, loglevel string) *echo.Echo {
	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = echoutil.ErrorHandler(e)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoutil.LogHandlerFunc)
	e.Use(m.Middleware())

	e.GET("/healthz/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics/", echo.WrapHandler(m.Handler()))

	api := e.Group("/api", auth.Middleware(keyring, db.User()))
	api.GET("/me/", handlers.GetMeHandler())
	handlers.Resources(api, db, handlers.OwnScope())

	admin := api.Group("/admin", auth.RequireAdmin())
	handlers.Admin(admin, db)

	return e
}
