package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/handlers"
	"github.com/sofiko-bakery/consultant-bot/internal/bot/keyboard"
	"github.com/sofiko-bakery/consultant-bot/internal/bot/render"
	"github.com/sofiko-bakery/consultant-bot/internal/session"
)

// eventFactory builds a session event from decoded callback payload.
type eventFactory func(payload string) session.Event

// Router resolves commands and button taps to session events and drives them
// through the per-user state machine.
type Router struct {
	mu          sync.RWMutex
	commands    map[string]session.Event
	callbacks   map[string]eventFactory
	middlewares []handlers.Middleware

	store    *session.Store
	machine  *session.Machine
	renderer *render.Renderer
	log      *slog.Logger
}

// NewRouter builds a Router with the default command and callback routes.
func NewRouter(store *session.Store, machine *session.Machine, renderer *render.Renderer, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	r := &Router{
		commands:    make(map[string]session.Event),
		callbacks:   make(map[string]eventFactory),
		middlewares: make([]handlers.Middleware, 0),
		store:       store,
		machine:     machine,
		renderer:    renderer,
		log:         log,
	}
	r.registerDefaults()

	return r
}

func (r *Router) registerDefaults() {
	r.RegisterCommand(CommandStart, session.Event{Kind: session.EventStart})
	r.RegisterCommand(CommandHelp, session.Event{Kind: session.EventHelp})
	r.RegisterCommand(CommandCourses, session.Event{Kind: session.EventSelectCourses})
	r.RegisterCommand(CommandOrder, session.Event{Kind: session.EventSelectBakery})
	r.RegisterCommand(CommandCancel, session.Event{Kind: session.EventBack})

	r.RegisterCallback(keyboard.CallbackCourses, static(session.EventSelectCourses))
	r.RegisterCallback(keyboard.CallbackBakery, static(session.EventSelectBakery))
	r.RegisterCallback(keyboard.CallbackHelp, static(session.EventHelp))
	r.RegisterCallback(keyboard.CallbackBackToMain, static(session.EventBack))
	r.RegisterCallback(keyboard.CallbackCheckout, static(session.EventCheckout))
	r.RegisterCallback(keyboard.CallbackCancelOrder, static(session.EventCancelOrder))
	r.RegisterCallback(keyboard.CallbackProvideContact, static(session.EventConfirmContact))
	r.RegisterCallback(keyboard.CallbackCourse, withID(session.EventSelectCourse))
	r.RegisterCallback(keyboard.CallbackPayCourse, withID(session.EventConfirmPay))
	r.RegisterCallback(keyboard.CallbackBakeryItem, withID(session.EventAddItem))
}

func static(kind session.EventKind) eventFactory {
	return func(string) session.Event {
		return session.Event{Kind: kind}
	}
}

func withID(kind session.EventKind) eventFactory {
	return func(payload string) session.Event {
		return session.Event{Kind: kind, ID: payload}
	}
}

// RegisterCommand maps a bot command to a session event.
func (r *Router) RegisterCommand(cmd string, ev session.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = ev
}

// RegisterCallback maps a callback verb to an event factory.
func (r *Router) RegisterCallback(unique string, factory eventFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[unique] = factory
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// Route directs the incoming update to the state machine.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	if cb := c.Callback(); cb != nil {
		return r.routeCallback(c, cb.Data)
	}

	return r.routeMessage(c)
}

func (r *Router) routeCallback(c telebot.Context, data string) error {
	data = strings.TrimSpace(strings.TrimPrefix(data, "\f"))

	unique, payload, err := keyboard.DecodeCallback(data)
	if err != nil {
		r.log.Warn("undecodable callback data", slog.String("data", data))
		return c.Respond()
	}

	factory := r.findCallbackFactory(unique)
	if factory == nil {
		// No route: let the machine redisplay the current screen.
		return r.execute(c, session.Event{})
	}

	return r.execute(c, factory(payload))
}

func (r *Router) routeMessage(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())

	if strings.HasPrefix(text, "/") {
		cmd := text
		if idx := strings.IndexAny(cmd, " @"); idx != -1 {
			cmd = cmd[:idx]
		}

		if ev, ok := r.getCommandEvent(cmd); ok {
			return r.execute(c, ev)
		}
	}

	// Free text and unknown commands redisplay the current screen.
	return r.execute(c, session.Event{})
}

func (r *Router) execute(c telebot.Context, ev session.Event) error {
	wrapped := r.applyMiddlewares(func(c telebot.Context) error {
		return r.handle(c, ev)
	})
	if wrapped == nil {
		return nil
	}

	return wrapped(c)
}

func (r *Router) handle(c telebot.Context, ev session.Event) error {
	sender := c.Sender()
	if sender == nil {
		r.log.Warn("update without sender, skipping")
		return nil
	}

	sess, _ := r.store.GetOrCreate(sender.ID)
	rn := r.machine.Handle(context.Background(), sess, ev)

	return r.renderer.Reply(c, rn)
}

func (r *Router) findCallbackFactory(unique string) eventFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.callbacks[unique]
}

func (r *Router) getCommandEvent(cmd string) (session.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.commands[cmd]
	return ev, ok
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
