package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/npratt/gong/internal/config"
	"github.com/npratt/gong/internal/controller"
	"github.com/npratt/gong/internal/cue"
	"github.com/npratt/gong/internal/daemon"
	"github.com/npratt/gong/internal/events"
	"github.com/npratt/gong/internal/exec"
	"github.com/npratt/gong/internal/shutdown"
	"github.com/npratt/gong/internal/tui"
)

var version = "dev"

const (
	// subscriberBufferSize absorbs bursts while the TUI redraws or stdout blocks.
	subscriberBufferSize = 1000
	// shutdownTimeout bounds how long a signalled headless run may take to exit.
	shutdownTimeout = 5 * time.Second
)

// configKeys maps flags onto the config keys they override, so viper's
// precedence puts them above files and environment.
var configKeys = map[string]string{
	FlagEventLog:   "paths.event_log",
	FlagRest:       "timer.rest",
	FlagRound:      "timer.round",
	FlagRounds:     "timer.rounds",
	FlagCue:        "cue.mode",
	FlagCueCommand: "cue.command",
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := configKeys[f.Name]; ok {
			key = k
		}
		_ = viper.BindPFlag(key, f)
	})
}

// loadConfig loads the layered config and resolves its paths against the
// project root.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Paths, err = daemon.ResolvePaths(cfg.Paths, daemon.FindProjectRoot(""))
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	return cfg, nil
}

// getClient creates a control client for the timer running in this project.
func getClient() (*daemon.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return daemon.NewClient(cfg.Paths.Socket), nil
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := newJSONLogger(os.Stderr, logLevel)
	slog.SetDefault(logger)

	viper.SetEnvPrefix("GONG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "gong",
		Short: "Interval training timer",
		Long: `gong is a boxing-style interval timer. A session alternates a rest
countdown and a round countdown for a configured number of rounds and sounds
a cue every time a phase begins.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
				logger.Debug("verbose logging enabled")
			}
		},
	}

	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .gong/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Debug log file (default: stderr, or .gong/gong-debug.log with the TUI)")
	rootCmd.PersistentFlags().String(FlagEventLog, "", "Event log path (default: .gong/events.jsonl)")
	bindFlags(rootCmd.PersistentFlags())

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gong %s\n", version)
		},
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the interval timer",
		Long: `Start the interval timer.

With a terminal the TUI opens in edit mode: set rest, round and the number of
rounds, then press enter. With --headless (or without a terminal) the session
starts immediately and events are printed line by line until it ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			headless, _ := cmd.Flags().GetBool(FlagHeadless)
			tuiEnabled, _ := cmd.Flags().GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) && !headless {
				tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
			}
			if tuiEnabled && headless {
				return fmt.Errorf("--tui and --headless flags are incompatible")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pidFile := daemon.NewPIDFile(cfg.Paths.PID)
			if err := pidFile.Lock(cfg.Paths.Socket); err != nil {
				return err
			}
			defer pidFile.Unlock()

			// Debug logging goes to a file with the TUI, or when asked to.
			logPath := viper.GetString(FlagLogFile)
			if logPath == "" && tuiEnabled {
				if err := os.MkdirAll(cfg.Paths.DebugLogDir, 0755); err != nil {
					return fmt.Errorf("create debug log directory: %w", err)
				}
				logPath = filepath.Join(cfg.Paths.DebugLogDir, DebugLogName)
			}
			if logPath != "" {
				result, err := SetupFileLogger(logPath, logLevel, cfg.LogRotation)
				if err != nil {
					return err
				}
				defer func() { _ = result.Close() }()
				logger = result.Logger
				slog.SetDefault(logger)
			}

			logger.Info("gong starting",
				"version", version,
				"event_log", cfg.Paths.EventLog,
				"cue", cfg.Cue.Mode,
				"tui", tuiEnabled,
			)

			router := events.NewRouter(events.DefaultBufferSize)
			router.SetLogger(logger)

			ctx := cmd.Context()
			sinkCtx, sinkCancel := context.WithCancel(ctx)
			defer sinkCancel()

			logSink := events.NewLogSink(cfg.Paths.EventLog, events.WithMaxBackups(cfg.LogRotation.MaxBackups))
			if err := logSink.Start(sinkCtx, router.Subscribe()); err != nil {
				router.Close()
				return fmt.Errorf("start log sink: %w", err)
			}

			player, err := cue.New(cfg.Cue, os.Stdout, exec.NewExecRunner(), logger)
			if err != nil {
				router.Close()
				_ = logSink.Stop()
				return fmt.Errorf("create cue player: %w", err)
			}
			// Consumers drain the router after the controller and the
			// control socket have exited.
			var services, consumers errgroup.Group
			cueEvents := router.Subscribe()
			consumers.Go(func() error {
				cue.NewListener(player, logger).Run(sinkCtx, cueEvents)
				return nil
			})

			ctrl := controller.New(cfg.Interval(), router, controller.WithLogger(logger))
			services.Go(func() error {
				return ctrl.Run(ctx)
			})

			// The control socket is optional; a failure only disables remote commands.
			dmn := daemon.New(cfg.Paths.Socket, ctrl, logger)
			dmnCtx, dmnCancel := context.WithCancel(ctx)
			services.Go(func() error {
				if err := dmn.Start(dmnCtx); err != nil {
					logger.Warn("control socket unavailable", "error", err)
				}
				return nil
			})

			cleanup := func() {
				ctrl.Stop()
				dmnCancel()
				if err := services.Wait(); err != nil {
					logger.Error("timer shutdown", "error", err)
				}
				router.Close()
				_ = consumers.Wait()
				if w, ok := player.(interface{ Wait() }); ok {
					w.Wait()
				}
				sinkCancel()
				_ = logSink.Stop()
			}

			if tuiEnabled {
				tuiEvents := router.SubscribeBuffered(subscriberBufferSize)
				// A remote stop ends the TUI by closing its event stream.
				go func() {
					<-ctrl.Done()
					router.Unsubscribe(tuiEvents)
				}()
				app := tui.New(ctrl, tuiEvents,
					tui.WithOnQuit(ctrl.Stop),
					tui.WithAltScreen(cfg.TUI.AltScreen),
				)
				tuiErr := app.Run()
				cleanup()
				return tuiErr
			}

			sessionEvents := router.SubscribeBuffered(subscriberBufferSize)
			err = shutdown.RunWithGracefulShutdown(
				ctx,
				logger,
				shutdownTimeout,
				func(runCtx context.Context) error {
					return runHeadless(runCtx, ctrl, sessionEvents, os.Stdout)
				},
				func(context.Context) error {
					_, err := ctrl.Cancel()
					return err
				},
			)
			cleanup()
			return err
		},
	}

	startCmd.Flags().Duration(FlagRest, 0, "Rest duration (e.g. 30s)")
	startCmd.Flags().Duration(FlagRound, 0, "Round duration (e.g. 1m30s)")
	startCmd.Flags().String(FlagRounds, "", "Number of rounds")
	startCmd.Flags().String(FlagCue, "", "Cue mode (bell, command, none)")
	startCmd.Flags().String(FlagCueCommand, "", "Command run for each phase change in command mode")
	startCmd.Flags().Bool(FlagTUI, false, "Enable terminal UI")
	startCmd.Flags().Bool(FlagHeadless, false, "Start immediately and print events instead of the TUI")
	startCmd.Flags().VisitAll(func(f *pflag.Flag) {
		// --tui would shadow the tui config section.
		if key, ok := configKeys[f.Name]; ok {
			_ = viper.BindPFlag(key, f)
		}
	})

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "View recent events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			count, _ := cmd.Flags().GetInt(FlagCount)
			follow, _ := cmd.Flags().GetBool(FlagFollow)
			if follow {
				return tailFollow(cmd.Context(), os.Stdout, cfg.Paths.EventLog)
			}
			return tailLast(os.Stdout, cfg.Paths.EventLog, count)
		},
	}

	eventsCmd.Flags().Bool(FlagFollow, false, "Follow event stream (like tail -f)")
	eventsCmd.Flags().Int(FlagCount, 20, "Number of recent events to show")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration gong would run with, after merging defaults,
the global and project config files, --config, GONG_* environment variables
and flags. Paths are shown resolved against the project root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			status, err := client.Status()
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool(FlagJSON); asJSON {
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal status: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			printStatus(os.Stdout, status)
			return nil
		},
	}
	statusCmd.Flags().Bool(FlagJSON, false, "Output status as JSON")

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			resp, err := client.Cancel()
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer process",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			if err := client.Stop(); err != nil {
				return err
			}
			fmt.Println("Stop requested")
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(stopCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
