package app

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/backend"
	"github.com/mindslayer001/tracebug/internal/config"
	"github.com/mindslayer001/tracebug/internal/core"
	"github.com/mindslayer001/tracebug/internal/dispatcher"
	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/eventbus"
	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
	"github.com/mindslayer001/tracebug/internal/update"
	"github.com/mindslayer001/tracebug/ui/styles"
)

// Options tweak a single run without touching the saved config
type Options struct {
	BaseURL   string           // Overrides the configured backend when set
	File      string           // Loaded into the editor on startup
	Clipboard render.Clipboard // Defaults to the system clipboard
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.AnalysisService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	env        update.Env
	preload    string
}

func NewApplication(cfg *config.Config, opts Options, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.GetBaseURL()
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)

	// A missing base URL leaves the service without an analyzer; submissions
	// then fail with a readable error instead of the app refusing to start.
	var analyzer core.Analyzer
	if baseURL != "" {
		analyzer = backend.NewClient(baseURL, cfg.GetTimeout(), logger)
	} else {
		logger.Warn("no backend base URL configured")
	}
	service := core.NewAnalysisService(analyzer, eb, logger)

	clip := opts.Clipboard
	if clip == nil {
		clip = render.SystemClipboard{}
	}

	model := &AppModel{
		appModel:   createInitialAppModel(eb, baseURL, logger),
		dispatcher: disp,
		env: update.Env{
			EventBus:  eb,
			Clipboard: clip,
			Logger:    logger,
		},
		preload: opts.File,
	}
	update.RefreshResponse(&model.appModel)

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	app.logger.Info("starting ui", zap.String("base_url", app.model.appModel.BaseURL))

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	_ = app.logger.Sync()
}

func createInitialAppModel(eb *eventbus.EventBus, baseURL string, logger *zap.Logger) models.AppModel {
	// Clearing the editor resets the submission so a late response is dropped
	ed := editor.New(func() {
		if err := eb.SendToCore(eventbus.ResetEvent{}); err != nil {
			logger.Error("failed to send reset to core", zap.Error(err))
		}
	})

	return models.AppModel{
		Editor:     ed,
		Submission: models.IdleState(),
		Picker:     newPicker(logger),
		Spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.NoticeStyle())),
		Response:   viewport.New(80, 10),
		Status:     "Ready",
		BaseURL:    baseURL,
	}
}

func newPicker(logger *zap.Logger) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = editor.AcceptedExtensions
	fp.ShowHidden = false
	fp.Height = 15

	if cwd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = cwd
	} else {
		logger.Warn("failed to resolve working directory", zap.Error(err))
	}
	return fp
}
