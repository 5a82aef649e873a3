package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/config"
	"github.com/2beens/dietplan/internal/db"
	"github.com/2beens/dietplan/internal/middleware"
	"github.com/2beens/dietplan/internal/misc"
	"github.com/2beens/dietplan/internal/nutrition/foods"
	"github.com/2beens/dietplan/internal/nutrition/plans"
	"github.com/2beens/dietplan/internal/nutrition/reminders"
	"github.com/2beens/dietplan/internal/nutrition/strategy"
	"github.com/2beens/dietplan/internal/nutrition/tracking"
	"github.com/2beens/dietplan/internal/telemetry/metrics"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

// plans with all their meals are the largest bodies we take
const maxRequestBodyBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessions    *auth.SessionStore
	rateLimiter middleware.RequestRateLimiter
	catalog     *foods.Catalog
	planService *plans.Service
	tracker     *tracking.Tracker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "dietplan-backend")
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     cfg.Secrets.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus("dietplan", params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager("dietplan", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.setupComponents(newReminderDebouncer(cfg, rdb))

	return s, nil
}

func newReminderDebouncer(cfg *config.Config, rdb *redis.Client) reminders.Debouncer {
	switch cfg.ReminderBackend {
	case config.ReminderBackendMemory:
		log.Debugf("reminders debounce: in-memory, window %s", cfg.ReminderDebounce())
		return reminders.NewMemoryDebouncer(cfg.ReminderDebounce())
	default:
		log.Debugf("reminders debounce: redis, window %s", cfg.ReminderDebounce())
		return reminders.NewRedisDebouncer(rdb, cfg.ReminderDebounce())
	}
}

func (s *Server) setupComponents(debouncer reminders.Debouncer) {
	tracedHttpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	dispatcher := reminders.NewDispatcher(
		reminders.NewHTTPScheduler(
			s.config.NotificationServiceURL,
			s.config.Secrets.NotificationToken,
			tracedHttpClient,
		),
		debouncer,
		s.metricsManager,
	)

	s.sessions = auth.NewSessionStore(auth.DefaultTTL, s.redisClient)
	s.rateLimiter = redis_rate.NewLimiter(s.redisClient)
	s.catalog = foods.NewCatalog(
		foods.NewRepo(s.dbPool),
		s.config.FoodSearchCacheSizeMB,
		s.config.FoodSearchCacheTTL(),
		s.metricsManager,
	)
	s.planService = plans.NewService(plans.NewRepo(s.dbPool), s.catalog, dispatcher, s.metricsManager)
	s.tracker = tracking.NewTracker(tracking.NewRepo(s.dbPool), s.planService, s.metricsManager)
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	strategyHandler := strategy.NewHandler()
	r.HandleFunc("/nutrition/strategies", strategyHandler.HandleList).Methods("GET", "OPTIONS").Name("list-strategies")
	r.HandleFunc("/nutrition/strategies/{strategy}", strategyHandler.HandleCompute).Methods("GET", "OPTIONS").Name("compute-strategy")
	r.HandleFunc("/nutrition/targets", strategyHandler.HandleTargets).Methods("POST", "OPTIONS").Name("compute-targets")

	foodsHandler := foods.NewHandler(s.catalog)
	searchRouter := r.PathPrefix("/foods/search").Subrouter()
	searchRouter.HandleFunc("", foodsHandler.HandleSearch).Methods("GET", "OPTIONS").Name("search-foods")
	searchRouter.Use(middleware.RateLimit(s.rateLimiter, "foods-search", s.config.FoodSearchRateLimitPerMin, s.metricsManager))
	r.HandleFunc("/foods", foodsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-food")
	r.HandleFunc("/foods/{id}", foodsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-food")
	r.HandleFunc("/foods/{id}", foodsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-food")
	r.HandleFunc("/foods/{id}", foodsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-food")
	r.HandleFunc("/foods/{id}/select", foodsHandler.HandleSelect).Methods("POST", "OPTIONS").Name("select-food")

	plansHandler := plans.NewHandler(s.planService)
	r.HandleFunc("/plans", plansHandler.HandleCreatePlan).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/plans/{id}", plansHandler.HandleGetPlan).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/plans/{id}", plansHandler.HandleUpdatePlan).Methods("PUT", "OPTIONS").Name("update-plan")
	r.HandleFunc("/plans/{id}", plansHandler.HandleDeletePlan).Methods("DELETE", "OPTIONS").Name("delete-plan")
	r.HandleFunc("/plans/{id}/activate", plansHandler.HandleActivatePlan).Methods("POST", "OPTIONS").Name("activate-plan")
	r.HandleFunc("/plans/{id}/finish", plansHandler.HandleFinishPlan).Methods("POST", "OPTIONS").Name("finish-plan")
	r.HandleFunc("/plans/{id}/meals", plansHandler.HandleAddMeal).Methods("POST", "OPTIONS").Name("new-meal")
	r.HandleFunc("/meals/{meal}", plansHandler.HandleUpdateMeal).Methods("PUT", "OPTIONS").Name("update-meal")
	r.HandleFunc("/meals/{meal}", plansHandler.HandleDeleteMeal).Methods("DELETE", "OPTIONS").Name("delete-meal")
	r.HandleFunc("/meals/{meal}/items", plansHandler.HandleAddItem).Methods("POST", "OPTIONS").Name("new-item")
	r.HandleFunc("/items/{item}", plansHandler.HandleUpdateItem).Methods("PUT", "OPTIONS").Name("update-item")
	r.HandleFunc("/items/{item}", plansHandler.HandleDeleteItem).Methods("DELETE", "OPTIONS").Name("delete-item")
	r.HandleFunc("/plans/{id}/days/{day}/copy", plansHandler.HandleCopyDay).Methods("POST", "OPTIONS").Name("copy-day")
	r.HandleFunc("/plans/{id}/days/{day}/paste", plansHandler.HandlePasteDay).Methods("POST", "OPTIONS").Name("paste-day")
	r.HandleFunc("/plans/{id}/days/{day}", plansHandler.HandleClearDay).Methods("DELETE", "OPTIONS").Name("clear-day")
	r.HandleFunc("/students/{student}/plans", plansHandler.HandleListStudentPlans).Methods("GET", "OPTIONS").Name("list-student-plans")
	r.HandleFunc("/students/{student}/plan", plansHandler.HandleStudentPlan).Methods("GET", "OPTIONS").Name("student-plan")

	trackingHandler := tracking.NewHandler(s.tracker)
	r.HandleFunc("/tracking/{date}", trackingHandler.HandleDayState).Methods("GET", "OPTIONS").Name("day-state")
	r.HandleFunc("/tracking/{date}/meals/{meal}", trackingHandler.HandleToggle).Methods("PUT", "OPTIONS").Name("toggle-meal")
	r.HandleFunc("/tracking/{date}/summary", trackingHandler.HandleSummary).Methods("GET", "OPTIONS").Name("day-summary")
	r.HandleFunc("/students/{student}/tracking/{date}/summary", trackingHandler.HandleSummary).Methods("GET", "OPTIONS").Name("student-day-summary")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessions)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}
