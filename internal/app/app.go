package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/twmb/franz-go/pkg/sr"

	"github.com/ionecenter/marketplace/config"
	"github.com/ionecenter/marketplace/internal/adapter/catalog"
	"github.com/ionecenter/marketplace/internal/adapter/httphandler"
	"github.com/ionecenter/marketplace/internal/adapter/kafka"
	"github.com/ionecenter/marketplace/internal/adapter/kvstore"
	"github.com/ionecenter/marketplace/internal/adapter/remote"
	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
	"github.com/ionecenter/marketplace/internal/core/service"
	"github.com/ionecenter/marketplace/pkg/schema"
)

type stores struct {
	cart   *service.CartStore
	auth   *service.AuthStore
	prefs  *service.PrefsStore
	orders service.OrdersService
}

type App struct {
	ctx context.Context
	cfg config.Config

	kv         kvstore.DB
	sqlCatalog *catalog.SQLCatalog
	catalog    catalog.Catalog

	eventsProducer *kafka.ClientEventsProducer
	activityProc   *kafka.ActivityProcessor
	activityView   *kafka.ActivityView

	stores     stores
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initKVStore()
	app.initCatalog()
	app.initEventsPipeline()
	app.initStores()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initKVStore() {
	const op = "App.initKVStore"

	kv, err := kvstore.Open(app.cfg.KVPath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv
}

// initCatalog degrades to the seed catalog when the database is
// unconfigured or unreachable.
func (app *App) initCatalog() {
	const op = "App.initCatalog"

	if app.cfg.SQLDB == "" {
		app.catalog = catalog.New(nil)
		return
	}
	repo, err := catalog.NewSQLCatalog(app.ctx, app.cfg.SQLDB)
	if err != nil {
		slog.Warn("catalog database unavailable, serving seed data",
			"op", op, "err", err)
		app.catalog = catalog.New(nil)
		return
	}
	app.sqlCatalog = repo
	app.catalog = catalog.New(repo)
}

// initEventsPipeline wires the client-events producer, the activity
// processor and its view. The whole pipeline is best-effort: any setup
// failure disables it with a warning.
func (app *App) initEventsPipeline() {
	const op = "App.initEventsPipeline"
	log := slog.With("op", op)

	if !app.cfg.BrokerEnabled() {
		log.Info("broker is not configured, client events disabled")
		return
	}

	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		log.Warn("schema registry unavailable, client events disabled", "err", err)
		return
	}
	schemaCreater := schema.NewSchemaCreater(srClient)

	eventSubject := brokerCfg.Topics.ClientEvents + "-value"
	eventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(eventSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		log.Warn("failed to build client event serde, client events disabled", "err", err)
		return
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(app.ctx, brokerCfg.SeedBrokers, brokerCfg.Topics.ClientEvents),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		log.Warn("broker unavailable, client events disabled", "err", err)
		return
	}
	app.eventsProducer = &producer

	proc, err := kafka.NewActivityProcessor(
		brokerCfg.SeedBrokers,
		brokerCfg.Topics.ClientEvents,
		brokerCfg.Consumers.ActivityGroup,
		eventSerde,
	)
	if err != nil {
		log.Warn("failed to build activity processor, activity view disabled", "err", err)
		return
	}
	app.activityProc = &proc

	view, err := kafka.NewActivityView(
		brokerCfg.SeedBrokers, brokerCfg.Consumers.ActivityGroup,
	)
	if err != nil {
		log.Warn("failed to build activity view, activity view disabled", "err", err)
		app.activityProc = nil
		return
	}
	app.activityView = &view
}

func (app *App) initStores() {
	var mirror port.UserMirror
	if app.cfg.Remote.UsersURL != "" {
		mirror = remote.NewUsersMirror(app.cfg.Remote.UsersURL, app.cfg.Remote.UsersToken)
	}

	var authEvents port.EventsProducer
	if app.eventsProducer != nil {
		authEvents = app.eventsProducer
	}
	auth := service.NewAuthStore(app.kv, mirror, authEvents)

	// Cart events are attributed to the active session at emit time.
	var cartEvents port.EventsProducer
	if app.eventsProducer != nil {
		producer := app.eventsProducer
		cartEvents = port.EventsProducerFunc(
			func(ctx context.Context, e domain.ClientEvent) error {
				if u, ok := auth.Session(); ok {
					e.UserID = u.ID
				}
				return producer.ProduceEvent(ctx, e)
			})
	}
	cart := service.NewCartStore(app.kv, app.catalog, cartEvents)

	prefs := service.NewPrefsStore(app.kv)
	prefs.SubscribeLocale(func(l domain.Locale) {
		slog.Info("locale changed", "locale", l, "rtl", l.RTL())
	})

	var ordersSource port.OrdersSource
	if app.cfg.Remote.OrdersURL != "" {
		ordersSource = remote.NewOrdersClient(app.cfg.Remote.OrdersURL)
	}
	orders := service.NewOrdersService(ordersSource)

	app.stores = stores{cart: cart, auth: auth, prefs: prefs, orders: orders}
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.catalog)
	httphandler.RegisterCart(mux, app.stores.cart, app.catalog)
	httphandler.RegisterAuth(mux, app.stores.auth)
	httphandler.RegisterPrefs(mux, app.stores.prefs)
	httphandler.RegisterOrders(mux, app.stores.orders)
	httphandler.RegisterAdmin(mux, app.stores.auth)
	if app.activityView != nil {
		httphandler.RegisterActivity(mux, app.activityView)
	}

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	if app.activityProc != nil {
		go app.activityProc.Run(app.ctx)
	}
	if app.activityView != nil {
		go app.activityView.Run(app.ctx)
	}

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.activityProc != nil {
		app.activityProc.Close()
	}
	if app.eventsProducer != nil {
		app.eventsProducer.Close()
	}
	if app.sqlCatalog != nil {
		app.sqlCatalog.Close()
	}
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
