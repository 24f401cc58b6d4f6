// Package main is the entry point for the bezeld overlay daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	godbus "github.com/godbus/dbus/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/bezel/internal/audio"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/daemon"
	"github.com/jmylchreest/bezel/internal/dbus"
	"github.com/jmylchreest/bezel/internal/display"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/transition"
)

const appID = "io.github.jmylchreest.bezeld"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file (default ~/.config/bezel/bezel.toml)")
	verbose := flag.Bool("verbose", false, "Log per-event detail")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("bezeld version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	os.Exit(run(*configPath, logger))
}

func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting bezeld", "version", version)

	if configPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			logger.Error("failed to get config path", "error", err)
			return 1
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between the GTK main loop and signal handlers
	var (
		window      *display.Window
		overlay     *daemon.Overlay
		player      *audio.Player
		control     *dbus.ControlServer
		stopDisplay func()
		running     atomic.Bool

		// Stored on the GTK thread, read by the signal goroutine.
		watcher atomic.Pointer[daemon.ConfigWatcher]
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-gctx.Done():
				return nil
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					logger.Info("received SIGHUP, reloading config")
					if cw := watcher.Load(); cw != nil {
						if err := cw.Reload(); err != nil {
							logger.Warn("reload failed", "error", err)
						}
					}
					continue
				}
				logger.Info("received signal, shutting down", "signal", sig)
				glib.IdleAdd(func() {
					if running.Load() {
						app.Quit()
					}
				})
				return nil
			}
		}
	})

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		themeLoader := display.NewThemeLoader(logger)
		th := themeLoader.Load(cfg.Display.Theme)
		themeLoader.Apply(nil)

		detector, err := display.NewMonitorDetector(cfg, logger)
		if err != nil {
			logger.Error("failed to detect display", "error", err)
			app.Quit()
			return
		}

		window = display.NewWindow(&app.Application, detector.Monitor(), detector.Screen(), cfg.IntentConfig().Hover, th, logger)

		player = audio.NewPlayer(logger)
		if err := player.Preload(cfg.ChimePath()); err != nil {
			logger.Warn("failed to preload chime", "path", cfg.ChimePath(), "error", err)
		}

		// Notifications and the control service share the session bus.
		var sender daemon.Sender
		conn, err := godbus.SessionBus()
		if err != nil {
			logger.Warn("no session bus, control and notifications disabled", "error", err)
		} else {
			sender = dbus.NewNotificationSender(conn)
		}
		notifier := daemon.NewNotifier(sender, logger)

		overlay = daemon.NewOverlay(daemon.Options{
			Scheduler: display.Scheduler{},
			Surface:   window,
			Detector:  detector,
			Config:    cfg,
			Chime:     player,
			Notifier:  notifier,
			Logger:    logger,
		})

		window.OnPointer = overlay.PointerMoved
		window.OnLeave = overlay.PointerLeft
		window.OnTimerToggle = overlay.ToggleTimer
		window.OnTimerReset = overlay.ResetTimer

		if conn != nil {
			control = dbus.NewControlServer(daemon.NewRemote(overlay, display.Dispatch), logger)
			if err := control.StartOn(conn); err != nil {
				logger.Warn("failed to start D-Bus control service", "error", err)
				control = nil
			}
		}
		overlay.OnStateChange(func(from, to transition.State) {
			if control == nil {
				return
			}
			if err := control.EmitStateChanged(from.String(), to.String()); err != nil {
				logger.Warn("failed to emit state change", "error", err)
			}
		})

		stopDisplay = detector.Watch(func(info geometry.NotchInfo) {
			window.SetMonitor(detector.Monitor(), detector.Screen())
			overlay.DisplayChanged(info)
		})

		configWatcher, err := daemon.NewConfigWatcher(configPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				glib.IdleAdd(func() {
					if newConfig.Display.Theme != cfg.Display.Theme {
						window.SetTheme(themeLoader.Load(newConfig.Display.Theme))
					}
					if newConfig.Timer.Chime != cfg.Timer.Chime {
						player.Invalidate(cfg.ChimePath())
					}

					detector.Configure(newConfig)
					window.SetMonitor(detector.Monitor(), detector.Screen())
					window.SetHover(newConfig.IntentConfig().Hover)
					overlay.ApplyConfig(newConfig)
					overlay.Redetect()

					cfg = newConfig
					notifier.NotifyConfigReloaded()
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				notifier.NotifyConfigError(err)
			})
			if err := configWatcher.Start(gctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			} else {
				watcher.Store(configWatcher)
			}
		}

		overlay.Start()
		logger.Info("bezeld ready", "dbus_interface", dbus.DBusInterface, "config", configPath)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if cw := watcher.Swap(nil); cw != nil {
			cw.Stop()
		}
		if stopDisplay != nil {
			stopDisplay()
		}
		if control != nil {
			_ = control.Stop()
		}
		if player != nil {
			player.Close()
		}
		if window != nil {
			window.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args[:1])

	cancel()
	if err := g.Wait(); err != nil {
		logger.Warn("background task failed", "error", err)
	}

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}
	logger.Info("bezeld stopped")
	return 0
}
