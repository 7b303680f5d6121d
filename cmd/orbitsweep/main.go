package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/orbitsweep/orbitsweep/internal/config"
	"github.com/orbitsweep/orbitsweep/internal/data"
	"github.com/orbitsweep/orbitsweep/internal/gen"
	"github.com/orbitsweep/orbitsweep/internal/persist"
	"github.com/orbitsweep/orbitsweep/internal/scripting"
	"github.com/orbitsweep/orbitsweep/internal/sim"
	"github.com/orbitsweep/orbitsweep/internal/view"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var counts = message.NewPrinter(language.English)

func printBanner(seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             orbitsweep  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       sweep the debris, mind the sun      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mseed:\033[0m %d\n\n", seed)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := counts.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/orbitsweep.toml"
	if p := os.Getenv("ORBITSWEEP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger; the terminal view owns stderr's screen, so route logs
	// to a file when running interactively.
	if !cfg.Simulation.Headless && cfg.Logging.File == "" {
		cfg.Logging.File = "orbitsweep.log"
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	printBanner(seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Data
	printSection("data")
	pal := data.DefaultPalette()
	if cfg.Simulation.DataPath != "" {
		if pal, err = data.LoadPalette(cfg.Simulation.DataPath); err != nil {
			return fmt.Errorf("load palette: %w", err)
		}
	}
	printStat("planet colors", len(pal.Planets))
	printStat("star colors", len(pal.BandStars)+len(pal.OuterStars))

	var opts sim.Options
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		opts.Scorer = engine
		opts.Hook = engine
		printOK(fmt.Sprintf("lua scripts loaded from %s", cfg.Scripting.Dir))
	}
	var keys *view.Keyboard
	if !cfg.Simulation.Headless {
		keys = view.NewKeyboard()
		opts.Input = keys
	}
	fmt.Println()

	// 4. Storage
	printSection("storage")
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStore()
	if store != nil {
		opts.Store = store
		opts.SaveName = cfg.Storage.SaveName
		opts.AutosaveTicks = cfg.Storage.AutosaveTicks
	}
	fmt.Println()

	// 5. World
	printSection("world")
	var sess *sim.Session
	if store != nil {
		var restored bool
		sess, restored, err = sim.LoadOrGenerate(ctx, store, cfg.Storage.SaveName, cfg, pal, rng, log, opts)
		if err != nil {
			return fmt.Errorf("world: %w", err)
		}
		if restored {
			printOK(fmt.Sprintf("snapshot %q restored", cfg.Storage.SaveName))
		}
	} else {
		sess, err = generate(ctx, cfg, pal, rng, log, opts)
		if err != nil {
			return fmt.Errorf("world: %w", err)
		}
	}
	printStat("planets", len(sess.Bodies().Planets))
	printStat("garbage", sess.Garbage().Len())
	printStat("decor", sess.Index().Len())
	if st := sess.Stats(); st.PlanetFallbacks+st.GarbageSkipped > 0 || st.SpawnFallback {
		printStat("planet fallbacks", st.PlanetFallbacks)
		printStat("planets shrunk", st.PlanetsShrunk)
		printStat("planets dropped", st.PlanetsDropped)
		printStat("garbage skipped", st.GarbageSkipped)
		if st.SpawnFallback {
			printOK("spawn fell back to the fixed safe point")
		}
	}
	fmt.Println()

	printSection("ready")
	printReady(fmt.Sprintf("loop started (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Simulation.Headless {
		err = runHeadless(sess, cfg, shutdownCh, log)
	} else {
		err = runInteractive(ctx, sess, cfg, keys, store, shutdownCh, log)
	}
	if err != nil {
		return err
	}

	if store != nil {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		if sess.Done() {
			// a finished round is not resumed
			if err := store.Delete(saveCtx, cfg.Storage.SaveName); err != nil {
				log.Error("clearing finished round failed", zap.Error(err))
			}
		} else if err := sess.Save(saveCtx, store, cfg.Storage.SaveName); err != nil {
			log.Error("final save failed", zap.Error(err))
		}
	}
	sc := sess.Score()
	log.Info("session ended",
		zap.Int("points", sc.Points),
		zap.Int("collected", sc.Collected),
		zap.Int("lost", sc.Lost),
		zap.Uint64("ticks", sess.TickCount()),
	)
	return nil
}

// generate builds the world on a worker while the terminal shows progress.
func generate(ctx context.Context, cfg *config.Config, pal *data.Palette, rng *rand.Rand, log *zap.Logger, opts sim.Options) (*sim.Session, error) {
	start := time.Now()
	done := gen.New(cfg, pal, rng, log).GenerateAsync(ctx)
	spin := time.NewTicker(250 * time.Millisecond)
	defer spin.Stop()
	fmt.Print("  generating")
	for {
		select {
		case out := <-done:
			fmt.Println()
			if out.Err != nil {
				return nil, out.Err
			}
			printOK(fmt.Sprintf("generated in %s", time.Since(start).Round(time.Millisecond)))
			return sim.FromResult(cfg, pal, rng, log, opts, out.Result), nil
		case <-spin.C:
			fmt.Print(".")
		}
	}
}

// openStore picks the snapshot backend. A nil store means saving is off.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (sim.SnapshotStore, func(), error) {
	switch cfg.Storage.Backend {
	case "file":
		fs, err := persist.NewFileStore(cfg.Storage.Path, log)
		if err != nil {
			return nil, nil, err
		}
		printOK(fmt.Sprintf("snapshots in %s", cfg.Storage.Path))
		return fs, func() {}, nil
	case "postgres":
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		printOK("PostgreSQL connected")
		version, err := persist.RunMigrations(dbCtx, db.Pool, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("schema at version %d", version))
		return persist.NewSnapshotRepo(db), db.Close, nil
	default:
		printOK("snapshots disabled")
		return nil, func() {}, nil
	}
}

func runHeadless(sess *sim.Session, cfg *config.Config, shutdownCh <-chan os.Signal, log *zap.Logger) error {
	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sess.Tick(cfg.Simulation.TickRate)
			if sess.Done() {
				log.Info("round over", zap.Bool("craft_alive", sess.Craft().Alive))
				return nil
			}
			if cfg.Simulation.MaxTicks > 0 && sess.TickCount() >= uint64(cfg.Simulation.MaxTicks) {
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func runInteractive(ctx context.Context, sess *sim.Session, cfg *config.Config, keys *view.Keyboard, store sim.SnapshotStore, shutdownCh <-chan os.Signal, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	if cfg.View.Audio {
		audio := view.NewAudio(log)
		if err := audio.Init(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer audio.Close()
			audio.Subscribe(sess.Bus())
		}
	}

	renderer := view.NewRenderer(screen, cfg.View.Zoom)
	control := sess.Control()

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch keys.HandleKey(ev) {
				case view.ActionQuit:
					return nil
				case view.ActionToggleAutopilot:
					control.SetAutopilot(!control.Autopilot())
				case view.ActionReset:
					if err := sess.Reset(ctx); err != nil {
						return err
					}
				case view.ActionSave:
					if store == nil {
						log.Warn("save requested but storage is disabled")
						break
					}
					if err := sess.Save(ctx, store, cfg.Storage.SaveName); err != nil {
						log.Error("save failed", zap.Error(err))
					}
				case view.ActionZoomIn:
					renderer.SetZoom(renderer.Zoom() / 1.25)
				case view.ActionZoomOut:
					renderer.SetZoom(renderer.Zoom() * 1.25)
				}
			}
		case <-ticker.C:
			sess.Tick(cfg.Simulation.TickRate)
			renderer.Draw(sess, control.Autopilot(), control.LastDecision().Mode)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
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
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
