// Package app wires the wallboard core to its surfaces and runs the process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/watchfire-io/wallboard/internal/config"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/notify"
	"github.com/watchfire-io/wallboard/internal/server"
	"github.com/watchfire-io/wallboard/internal/tray"
	"github.com/watchfire-io/wallboard/internal/tui"
	"github.com/watchfire-io/wallboard/internal/wallboard"
	"github.com/watchfire-io/wallboard/internal/watcher"
)

// ErrAlreadyRunning is returned when another instance owns instance.yaml.
var ErrAlreadyRunning = errors.New("wallboard is already running")

var _ tray.AppState = (*App)(nil)

// Options selects which surfaces run.
type Options struct {
	Tray   bool
	View   bool
	Port   int // overrides settings.control.port when > 0
	Logger *slog.Logger
}

// App owns the registry and every surface attached to it.
type App struct {
	opts   Options
	logger *slog.Logger

	settingsMu sync.RWMutex
	settings   *models.Settings

	registry   *wallboard.Registry
	dispatcher *wallboard.Dispatcher
	gateway    *notify.Gateway
	ui         *tui.Surface

	server  *server.Server
	watcher *watcher.Watcher

	viewMu   sync.Mutex
	viewOpen bool

	done         chan struct{}
	doneOnce     sync.Once
	shutdownOnce sync.Once
}

// New builds the app from settings and a seed roster.
func New(settings *models.Settings, roster *models.Roster, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := wallboard.NewRegistry(roster.Agents)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	gateway := notify.New(settings.Notifications.Enabled, settings.Notifications.Icon, logger)

	var surface wallboard.TraySurface
	if opts.Tray {
		surface = tray.Surface{}
	}

	dispatcher := wallboard.NewDispatcher(registry, gateway, surface, wallboard.WithLogger(logger))

	a := &App{
		opts:       opts,
		logger:     logger.With("component", "app"),
		settings:   settings,
		registry:   registry,
		dispatcher: dispatcher,
		gateway:    gateway,
		done:       make(chan struct{}),
	}
	if opts.View {
		a.ui = tui.NewSurface(dispatcher)
	}
	return a, nil
}

// Dispatcher returns the app's dispatcher.
func (a *App) Dispatcher() *wallboard.Dispatcher {
	return a.dispatcher
}

// Run blocks until the app shuts down. With the tray enabled it must be
// called on the main goroutine.
func (a *App) Run() error {
	if a.opts.Tray {
		var startErr error
		tray.Run(a, a.logger, func() {
			if err := a.start(); err != nil {
				startErr = err
				a.RequestShutdown()
			}
		}, a.stop)
		return startErr
	}

	if err := a.start(); err != nil {
		return err
	}
	<-a.done
	a.stop()
	return nil
}

func (a *App) start() error {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return err
	}
	if running {
		return fmt.Errorf("%w (pid %d, port %d)", ErrAlreadyRunning, info.PID, info.Port)
	}

	port := a.opts.Port
	if port <= 0 {
		port = a.Settings().Control.Port
	}
	srv, err := server.New(a.dispatcher, port, a.logger)
	if err != nil {
		return err
	}
	a.server = srv

	info := models.NewInstanceInfo("localhost", srv.Port(), os.Getpid(), a.opts.Tray)
	if err := config.SaveInstanceInfo(info); err != nil {
		srv.Stop()
		return fmt.Errorf("failed to write instance info: %w", err)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			a.logger.Error("control API stopped", "error", err)
			a.RequestShutdown()
		}
	}()

	a.startWatcher()
	go a.handleSignals()

	a.dispatcher.RefreshTooltip()
	a.logger.Info("wallboard started", "port", srv.Port(), "pid", os.Getpid(), "agents", a.registry.Len())

	if a.opts.View {
		a.ShowWallboard()
	}
	return nil
}

func (a *App) stop() {
	a.closeDone()
	if a.ui != nil {
		a.ui.Close()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.server != nil {
		a.server.Stop()
	}
	if err := config.RemoveInstanceInfo(); err != nil {
		a.logger.Warn("failed to remove instance info", "error", err)
	}
	a.logger.Info("wallboard stopped")
}

func (a *App) startWatcher() {
	dir, err := config.GlobalDir()
	if err != nil {
		a.logger.Warn("settings reload disabled", "error", err)
		return
	}
	w, err := watcher.New(dir, a.logger)
	if err != nil {
		a.logger.Warn("settings reload disabled", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		a.logger.Warn("settings reload disabled", "error", err)
		return
	}
	a.watcher = w

	go func() {
		for {
			select {
			case <-a.done:
				return
			case ev := <-w.Events():
				a.handleConfigEvent(ev)
			}
		}
	}()
}

func (a *App) handleConfigEvent(ev watcher.Event) {
	switch ev.Type {
	case watcher.EventSettingsChanged:
		settings, err := config.LoadSettingsFrom(ev.Path)
		if err != nil {
			a.logger.Warn("settings reload failed", "path", ev.Path, "error", err)
			return
		}
		a.ApplySettings(settings)
	case watcher.EventRosterChanged:
		a.logger.Info("roster changed on disk; restart to load it", "path", ev.Path)
	}
}

// ApplySettings swaps in new settings. Notification and tray agent changes
// take effect immediately.
func (a *App) ApplySettings(settings *models.Settings) {
	stored := *settings
	a.settingsMu.Lock()
	a.settings = &stored
	a.settingsMu.Unlock()

	a.gateway.SetEnabled(settings.Notifications.Enabled)
	a.gateway.SetIcon(settings.Notifications.Icon)
	a.dispatcher.RefreshTooltip()
	a.logger.Info("settings applied",
		"notifications", settings.Notifications.Enabled, "tray_agent", settings.TrayAgent)
}

// Settings returns a copy of the current settings.
func (a *App) Settings() models.Settings {
	a.settingsMu.RLock()
	defer a.settingsMu.RUnlock()
	return *a.settings
}

func (a *App) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info("received signal, shutting down", "signal", sig.String())
		a.RequestShutdown()
	case <-a.done:
	}
}

// RequestShutdown stops the app. Safe to call more than once.
func (a *App) RequestShutdown() {
	a.shutdownOnce.Do(func() {
		a.closeDone()
		if a.opts.Tray {
			tray.Quit()
		}
	})
}

func (a *App) closeDone() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Done is closed once the app begins shutting down.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// TrayAgent implements tray.AppState: the configured agent, or the first one.
func (a *App) TrayAgent() (models.Agent, bool) {
	if name := a.Settings().TrayAgent; name != "" {
		if agent, err := a.registry.Get(name); err == nil {
			return agent, true
		}
	}
	return a.registry.First()
}

// AvailableCount implements tray.AppState.
func (a *App) AvailableCount() int {
	return a.registry.Count(models.AgentStatusAvailable)
}

// ChangeStatus implements tray.AppState.
func (a *App) ChangeStatus(status models.AgentStatus) {
	agent, ok := a.TrayAgent()
	if !ok {
		a.logger.Warn("tray status change ignored: no agents")
		return
	}
	if _, err := a.dispatcher.Dispatch(context.Background(), agent.Name, status, wallboard.OriginTray); err != nil {
		a.logger.Warn("tray status change failed", "agent", agent.Name, "error", err)
	}
}

// ShowWallboard implements tray.AppState. It opens the view unless it is
// already open or the app runs without one.
func (a *App) ShowWallboard() {
	if a.ui == nil {
		a.logger.Info("no wallboard view in this mode")
		return
	}

	a.viewMu.Lock()
	if a.viewOpen {
		a.viewMu.Unlock()
		return
	}
	a.viewOpen = true
	a.viewMu.Unlock()

	go a.runView()
}

func (a *App) runView() {
	result, err := a.ui.Run(tui.Options{
		ExportDefault: a.Settings().Export.DefaultFile,
		TrayRunning:   a.opts.Tray,
	})

	a.viewMu.Lock()
	a.viewOpen = false
	a.viewMu.Unlock()

	a.viewClosed(result, err)
}

// viewClosed decides what follows a closed view. Without a tray, or on an
// explicit quit, the app exits; otherwise it keeps running in the tray, even
// when the view failed to start.
func (a *App) viewClosed(result tui.Result, err error) {
	if err != nil {
		a.logger.Error("wallboard view failed", "error", err)
	}

	select {
	case <-a.done:
		return
	default:
	}

	if result.QuitApp || !a.opts.Tray {
		a.RequestShutdown()
		return
	}

	if err != nil {
		return
	}

	// Hidden to tray.
	if err := a.gateway.Submit(context.Background(), notify.HiddenToTray()); err != nil {
		a.logger.Warn("notification failed", "error", err)
	}
}
