package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	notifyoutadapter "fast/internal/modules/notify/adapter/out"
	notifyin "fast/internal/modules/notify/port/in"
	notifyout "fast/internal/modules/notify/port/out"
	notifyservice "fast/internal/modules/notify/service"
	notifyusecase "fast/internal/modules/notify/usecase"
	sessioninadapter "fast/internal/modules/session/adapter/in"
	sessionoutadapter "fast/internal/modules/session/adapter/out"
	sessionservice "fast/internal/modules/session/service"
	sessionusecase "fast/internal/modules/session/usecase"
	settingsinadapter "fast/internal/modules/settings/adapter/in"
	settingsoutadapter "fast/internal/modules/settings/adapter/out"
	settingsservice "fast/internal/modules/settings/service"
	settingsusecase "fast/internal/modules/settings/usecase"
	statsinadapter "fast/internal/modules/stats/adapter/in"
	statsservice "fast/internal/modules/stats/service"
	statsusecase "fast/internal/modules/stats/usecase"
	timerservice "fast/internal/modules/timer/service"
	"fast/internal/platform/clock"
	"fast/internal/platform/config"
	"fast/internal/platform/id"
	uiapp "fast/internal/ui/app"
)

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	StatsCLI    statsinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	Engine      *timerservice.Engine
	Notify      notifyin.Usecase
	Logger      hclog.Logger

	// AutoEnded delivers the session id after a goal completion has been
	// persisted. Buffered; consumers that never read lose nothing.
	AutoEnded <-chan string
}

func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "fast",
		Level:  hclog.Warn,
		Output: os.Stderr,
	})

	store, err := sessionoutadapter.NewSQLiteSessionStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	engine := timerservice.NewEngine(clk, time.Second)

	scheduler := notifyservice.NewScheduler(pickNotifier(cfg, logger), logger)
	notifyUC := notifyusecase.NewInteractor(scheduler)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, store),
		store,
		clk,
		sessionoutadapter.NewEngineTransitions(engine),
		sessionoutadapter.NewNotifyTransitions(notifyUC),
	)
	autoEnded := make(chan string, 1)
	engine.OnComplete(func(sessionID string, goalAt time.Time) {
		if _, err := sessionUC.EndAt(context.Background(), sessionID, goalAt); err != nil {
			logger.Warn("auto-end at goal failed", "session", sessionID, "error", err)
			return
		}
		select {
		case autoEnded <- sessionID:
		default:
		}
	})

	settingsUC := settingsusecase.NewInteractor(
		settingsservice.NewSettingsService(settingsoutadapter.NewYAMLSettingsStore(cfg.SettingsPath)),
		sessionUC,
		notifyUC,
	)
	notifyUC.BindSettings(settingsUC)

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(clk, sessionUC))

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		StatsCLI:    statsinadapter.NewCLIHandler(statsUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		Engine:      engine,
		Notify:      notifyUC,
		Logger:      logger,
		AutoEnded:   autoEnded,
	}, nil
}

// pickNotifier dispenses over the plugin when a notifier binary is
// installed in the data dir, and degrades to a no-op otherwise so the
// tracker stays fully usable without one.
func pickNotifier(cfg config.Config, logger hclog.Logger) notifyout.Notifier {
	info, err := os.Stat(cfg.NotifierPath)
	if err != nil || info.IsDir() {
		return notifyoutadapter.NewNoopNotifier()
	}
	logger.Debug("using notifier plugin", "path", cfg.NotifierPath)
	return notifyoutadapter.NewPluginNotifier(cfg.NotifierPath)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.StatsCLI, app.SettingsCLI, app.Engine)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
