package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Kevrnd/car-garage/internal/config"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/internal/service/garage"
	"github.com/Kevrnd/car-garage/platform/closer"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type command struct {
	usage string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":       {usage: "[-username NAME] [-password PASS], prints the session as .env lines", run: (*app).login},
	"cars":        {usage: "list cars visible to the session", run: (*app).cars},
	"car-add":     {usage: "-brand TEXT -model TEXT -vin TEXT [-year N] [-power N] [-tire-front TEXT] [-tire-rear TEXT] [-wipers TEXT] [-notes TEXT]", run: (*app).carAdd},
	"car-update":  {usage: "-id ID, then the car-add flags; the whole car is replaced", run: (*app).carUpdate},
	"summary":     {usage: "repairs, stock parts and totals of the configured car", run: (*app).summary},
	"report":      {usage: "-from YYYY-MM-DD -to YYYY-MM-DD [-out PATH] [-server] [-archive]", run: (*app).report},
	"convert":     {usage: "-repair ID -stock ID,ID,...", run: (*app).convert},
	"repair-add":  {usage: "-date YYYY-MM-DD -mileage KM -desc TEXT -work-cost N [-stock ID,ID,...]", run: (*app).repairAdd},
	"part-add":    {usage: "-repair ID -name TEXT -code TEXT -manufacturer TEXT [-qty N] [-cost N]", run: (*app).partAdd},
	"stock-add":   {usage: "-name TEXT -code TEXT -manufacturer TEXT [-qty N] [-cost N] [-purchase-date YYYY-MM-DD] [-notes TEXT]", run: (*app).stockAdd},
	"delete":      {usage: "-entity car|repair|part|stock -id ID [-repair ID]", run: (*app).delete},
	"watch":       {usage: "follow change events and serve /health and /metrics", run: (*app).watch},
}

var (
	errUsage = errors.New("usage")

	// ErrSessionExpired wraps a 401 from the backend: the saved session is gone.
	ErrSessionExpired = errors.New("session expired, log in again")
)

type app struct {
	di  *di
	out io.Writer
}

func New(ctx context.Context) (*app, error) {
	a := &app{out: os.Stdout}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// Run executes one command and then releases every resource the command opened.
func (a *app) Run(ctx context.Context, args []string) error {
	defer gracefulShutdown()
	return a.run(ctx, args)
}

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	err := cmd.run(a, ctx, args[1:])
	if garage.IsUnauthorized(err) {
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return err
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: garage <command> [flags]\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-11s %s\n", name, commands[name].usage)
	}
	fmt.Fprint(a.out, b.String())
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := a.flags("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cons, err := a.di.ChangeConsumer(ctx)
	if err != nil {
		return err
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return err
	}
	if err := store.Refresh(ctx); err != nil {
		logger.Warn(ctx, "initial refresh", logger.ErrorF(err))
	}

	cfg := config.C()
	server := &http.Server{
		Addr:              cfg.Watch.Address(),
		Handler:           a.di.WatchHandler(ctx),
		ReadHeaderTimeout: cfg.Watch.ReadTimeout(),
	}
	closer.AddNamed("Watch HTTP server", server.Shutdown)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 change consumer running",
			logger.Strings("kafka_brokers", cfg.Kafka.Brokers()),
			logger.Int64("car_id", store.CarID()),
		)
		return cons.RunChangeConsume(egCtx)
	})

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 watch server listening",
			logger.String("address", cfg.Watch.Address()),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		return closer.CloseAll(context.WithoutCancel(egCtx))
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Watch.ShutdownTimeout(),
	)
	defer cancel()

	if err := closer.CloseAll(ctx); err != nil {
		logger.Error(ctx, "❌ Error during shutdown", logger.ErrorF(err))
		return
	}
	logger.Debug(ctx, "✅ Resources released")
}

// IsSessionExpired reports whether the command failed because the backend rejected the session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsUsage reports whether err came from bad command line input.
func IsUsage(err error) bool {
	return errors.Is(err, errUsage) || errors.Is(err, model.ErrInvalidArgument)
}
