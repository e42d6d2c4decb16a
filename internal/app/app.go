// Package app wires configuration, storage, services, and the dialogue driver
// into the shared Telegram runtime.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	corebootstrap "github.com/hackmir/partsbot/core/bootstrap"
	coretelegram "github.com/hackmir/partsbot/core/telegram"
	tghelpers "github.com/hackmir/partsbot/core/telegram/helpers"
	"github.com/hackmir/partsbot/core/telegram/router"
	tgsender "github.com/hackmir/partsbot/core/telegram/sender"
	"github.com/hackmir/partsbot/internal/dialog"
	"github.com/hackmir/partsbot/internal/service"
	"github.com/hackmir/partsbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// App holds the assembled application graph for the bot process.
type App struct {
	cfg *Config
	db  *sqlx.DB

	yards *storage.ScrapyardRepo
	parts *storage.PartRepo

	directory *service.Directory
	catalog   *service.Parts

	driver *dialog.Driver
}

// New runs the shared bootstrap pipeline (logger, database, migrations) and
// builds the application services on top of it.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	result, err := corebootstrap.Run(corebootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:   cfg,
		db:    result.DB,
		yards: storage.NewScrapyardRepo(result.DB),
		parts: storage.NewPartRepo(result.DB),
	}
	a.directory = service.NewDirectory(a.yards)
	a.catalog = service.NewParts(a.parts)
	return a, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// TelegramRunOptions assembles registry, routes, and middleware for RunTelegram.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	dispatcher := tgsender.NewDispatcher(tgsender.Options{})
	notifier := service.NewAdminNotifier(dispatcher, a.cfg.Core.Telegram.AdminID)

	store := dialog.NewStore()
	a.driver = dialog.NewDriver(store, a.directory, a.catalog, notifier, a.cfg.Bot.AdminContact)

	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)

	// Idle-state menu selections arrive as plain text; the engine ignores
	// anything it does not recognize.
	reg.SetTextFallback(a.driver.ManagerHandler)

	rejectAdmin := func(c tele.Context) error {
		return tghelpers.SendText(c, "You do not have permission to run this command.")
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Core.Telegram.AdminID,
		OnAdminReject: rejectAdmin,
	})
	routes = append(routes, router.TextRoutes(a.driver, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Dispatcher:  dispatcher,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
	}, nil
}
