package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/keyboard"
	"github.com/sofiko-bakery/consultant-bot/internal/bot/render"
	errors "github.com/sofiko-bakery/consultant-bot/internal/errors"
	"github.com/sofiko-bakery/consultant-bot/internal/idempotency"
	"github.com/sofiko-bakery/consultant-bot/internal/middleware"
	"github.com/sofiko-bakery/consultant-bot/internal/session"
	"github.com/sofiko-bakery/consultant-bot/pkg/config"
)

// Bot wraps telebot.Bot with application dependencies required for handling updates.
type Bot struct {
	telebot            *telebot.Bot
	log                *slog.Logger
	cfg                config.Config
	store              *session.Store
	machine            *session.Machine
	router             *Router
	keyboard           *keyboard.Builder
	renderer           *render.Renderer
	errHandler         *errors.Handler
	rateLimitMw        *middleware.RateLimitMiddleware
	idempotencyManager idempotency.Manager
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	store *session.Store,
	machine *session.Machine,
	idempotencyManager idempotency.Manager,
	rateLimitMw *middleware.RateLimitMiddleware,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(log)
	renderer := render.New(kb, log)
	router := NewRouter(store, machine, renderer, log)
	errHandler := errors.NewHandler(log, cfg.Sentry.Enabled)

	b := &Bot{
		telebot:            tb,
		log:                log,
		cfg:                cfg,
		store:              store,
		machine:            machine,
		router:             router,
		keyboard:           kb,
		renderer:           renderer,
		errHandler:         errHandler,
		rateLimitMw:        rateLimitMw,
		idempotencyManager: idempotencyManager,
	}

	b.setupMiddlewares()
	b.registerTelebotHandlers()

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as
// health checks and reminder delivery.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// Router exposes the update router for additional route registration.
func (b *Bot) Router() *Router {
	return b.router
}

func (b *Bot) setupMiddlewares() {
	if b.router == nil {
		return
	}

	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(middleware.Idempotency(b.idempotencyManager, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	if b.rateLimitMw != nil {
		b.router.Use(b.rateLimitMw.Handle)
	}
	b.router.Use(middleware.Metrics)
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)
}
