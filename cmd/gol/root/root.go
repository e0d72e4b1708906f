package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/config"
	"github.com/jaydenlee09/GameOfLife/internal/engine"
	"github.com/jaydenlee09/GameOfLife/internal/logging"
	"github.com/jaydenlee09/GameOfLife/internal/storage"
	"github.com/jaydenlee09/GameOfLife/internal/ui"
)

const Version = "0.1.0"

var (
	v          = viper.New()
	cfg        config.Config
	logger     = zap.NewNop()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "gol",
	Short:         "Game of Life: level up by living well",
	Long:          "Game of Life is a local-first CLI/TUI that turns tasks, habits, challenges and focus sessions into XP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Configure(v, configPath); err != nil {
			return err
		}
		c, err := config.Load(v, configPath != "")
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log.File, cfg.Log.Verbose)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("command start", zap.String("cmd", cmd.CommandPath()), zap.String("db", cfg.DBPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	addPersistentFlags()
	rootCmd.AddCommand(
		newStatusCmd(),
		newPlayerCmd(),
		newTaskCmd(),
		newHabitCmd(),
		newChallengeCmd(),
		newLogCmd(),
		newFocusCmd(),
		newReportCmd(),
		newRolloverCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func addPersistentFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.gameoflife.yaml)")
	pf.String("db", "", "database path (default ~/.gameoflife.db)")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.Bool("json", false, "output JSON")
	_ = v.BindPFlag("db_path", pf.Lookup("db"))
	_ = v.BindPFlag("log.verbose", pf.Lookup("verbose"))
	_ = v.BindPFlag("json", pf.Lookup("json"))
}

// app bundles what a command needs for one run.
type app struct {
	db       *sql.DB
	svc      *engine.Service
	notifier *engine.Notifier
}

func (a *app) Close() {
	a.notifier.Close()
	_ = a.db.Close()
}

// openApp opens the database and loads the service. withEvents creates a
// notifier; one-shot commands report results directly instead.
func openApp(ctx context.Context, withEvents bool) (*app, error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var n *engine.Notifier
	if withEvents {
		n = engine.NewNotifier(engine.RealClock{}, cfg.Notify.Buffer)
	}
	svc, err := engine.NewService(ctx, db, engine.Options{
		Logger:       logger,
		Notifier:     n,
		DefaultName:  cfg.Player.DefaultName,
		LevelUpDelay: cfg.Notify.LevelUpDelay,
		RewardDelay:  cfg.Notify.RewardDelay,
	})
	if err != nil {
		n.Close()
		_ = db.Close()
		return nil, err
	}
	return &app{db: db, svc: svc, notifier: n}, nil
}

// withService runs fn against a freshly opened service.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *engine.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a.svc)
}

func jsonOutput() bool {
	return v.GetBool("json")
}

// notFound formats the no-op outcome of a missing entity.
func notFound(kind, id string) error {
	return errors.New(kind + " " + id + " not found")
}
