package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pgeditor/editor/internal/config"
	"github.com/pgeditor/editor/internal/data"
	"github.com/pgeditor/editor/internal/editor"
	"github.com/pgeditor/editor/internal/persist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m  %-41s\033[36;1m│\033[0m\n", name)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", max(3, 45-len(title))))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", max(3, 42-len(label)-len(num))), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func run() error {
	cfgPath := "config/editor.toml"
	if p := os.Getenv("PGEDITOR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Editor.Name)

	printSection("Data")
	prefabs, err := data.LoadPrefabTable(cfg.Editor.PrefabsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		prefabs = data.DefaultPrefabTable()
		log.Info("prefab file missing, using built-in prefabs", zap.String("path", cfg.Editor.PrefabsFile))
	case err != nil:
		return fmt.Errorf("prefabs: %w", err)
	}
	printStat("Prefabs", prefabs.Count())

	opts := editor.Options{Prefabs: prefabs, Out: os.Stdout}
	if cfg.Database.Enabled {
		printSection("Database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("Migrations applied")
		opts.Store = persist.NewSceneRepo(db)
	}

	sess, err := editor.NewSession(cfg, opts, log)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer sess.Close()

	if cfg.Editor.SceneFile != "" {
		sf, err := data.LoadScene(cfg.Editor.SceneFile)
		if err != nil {
			return fmt.Errorf("initial scene: %w", err)
		}
		sess.LoadLayout(sf.Props)
		printStat("Scene props", len(sf.Props))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("Ready")
	printOK(fmt.Sprintf("session %s (tick %s)", sess.ID, cfg.Editor.TickRate))
	fmt.Println("  commands: " + strings.Join(editor.Usage(), ", "))
	fmt.Println()

	go readConsole(ctx, stop, sess)

	if err := sess.Run(ctx); err != nil {
		return err
	}
	log.Info("editor stopped")
	return nil
}

// readConsole feeds stdin lines to the session. At EOF it queues a quit
// behind the pending commands so piped input runs to completion.
func readConsole(ctx context.Context, stop context.CancelFunc, sess *editor.Session) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		if err := sess.SubmitWait(ctx, sc.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	if err := sess.SubmitWait(ctx, "quit"); err != nil {
		stop()
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
