// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"crm-client/internal/config"
	configHandler "crm-client/internal/handlers/config"
	customerHandler "crm-client/internal/handlers/customer"
	dashboardHandler "crm-client/internal/handlers/dashboard"
	emailHandler "crm-client/internal/handlers/email"
	notifyH "crm-client/internal/handlers/notification"
	taskHandler "crm-client/internal/handlers/task"
	wsHandler "crm-client/internal/handlers/websocket"
	"crm-client/internal/middleware"
	"crm-client/internal/remotesync"
	configUsecase "crm-client/internal/service/config"
	customersvc "crm-client/internal/service/customer"
	emailsvc "crm-client/internal/service/email"
	notifyUsecase "crm-client/internal/service/notification"
	tasksvc "crm-client/internal/service/task"
	"crm-client/internal/websocket"
	wsHandlers "crm-client/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	logger     *zap.Logger
	httpServer *http.Server
	syncer     *remotesync.Syncer
	stopHub    context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New()}
}

func newLogger(cfg config.AppConfig) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Printf("[LOGGER] falling back to no-op logger: %v", err)
		return zap.NewNop()
	}
	return logger
}

// Start wires the console and serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	// ----- Logger -----
	logger := newLogger(s.cfg)
	s.logger = logger

	// ----- CRM backend -----
	client := remotesync.NewHTTPClient(s.cfg.BackendURL, s.cfg.BackendTimeout, logger)
	syncer := remotesync.NewSyncer(client, logger, s.cfg.SyncTimeout)
	mail := remotesync.NewMailClient(client)
	s.syncer = syncer

	// ----- WebSocket Hub -----
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	hub := websocket.NewHub(logger)

	// ----- Services (Usecases) -----
	notifService := notifyUsecase.NewNotificationService(s.cfg.NotificationDuration, hub, logger)
	connection := configUsecase.NewConnectionService(s.cfg.BackendConnected, hub, logger)
	emailConfigService := configUsecase.NewEmailConfigService(mail, logger)

	customerService := customersvc.NewCustomerService(nil, syncer, time.Now, logger)
	taskService := tasksvc.NewTaskService(nil, syncer, customerService.Names(), time.Now, logger)
	emailService := emailsvc.NewEmailService(nil, mail, customerService, customerService.Names(), s.cfg.SenderName, time.Now, logger)
	customerService.RegisterDependent(taskService)
	customerService.RegisterDependent(emailService)

	// Register WebSocket handlers
	notificationWSHandler := wsHandlers.NewNotificationHandler(notifService)
	if err := hub.RegisterHandler(notificationWSHandler); err != nil {
		return fmt.Errorf("register websocket handler: %w", err)
	}
	hub.OnConnect = notificationWSHandler.SendCurrent

	// Start hub
	go hub.Run(hubCtx)

	if s.cfg.BackendLoadOnStart {
		s.loadFromBackend(customerService, taskService)
	}

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler:  customerHandler.NewCustomerHandler(customerService, notifService, connection, logger),
		TaskHandler:      taskHandler.NewTaskHandler(taskService, notifService, connection, logger),
		EmailHandler:     emailHandler.NewEmailHandler(emailService, notifService, logger),
		ConfigHandler:    configHandler.NewConfigHandler(emailConfigService, connection, notifService, logger),
		DashboardHandler: dashboardHandler.NewDashboardHandler(customerService, taskService, emailService),
		NotifHandler:     notifyH.NewNotificationHandler(notifService),
		WSHandler:        wsHandler.NewWebSocketHandler(hub, logger, s.cfg.CORSOrigins...),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(middleware.DefaultCORSConfig(s.cfg.CORSOrigins)),
	)

	// ----- Router -----
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}
	logger.Info("server running",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("backend", s.cfg.BackendURL),
		zap.Bool("connected", connection.Connected()),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// loadFromBackend seeds the collections at startup. Failures leave them empty.
func (s *Server) loadFromBackend(customers *customersvc.CustomerService, tasks *tasksvc.TaskService) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.BackendTimeout)
	defer cancel()

	if res := customers.LoadFromBackend(ctx); !res.Success {
		s.logger.Warn("initial customer load failed", zap.String("error", res.Error))
	}
	if res := tasks.LoadFromBackend(ctx); !res.Success {
		s.logger.Warn("initial task load failed", zap.String("error", res.Error))
	}
}

// Shutdown stops accepting requests, waits for in-flight backend pushes and
// closes every socket.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	if s.syncer != nil {
		done := make(chan struct{})
		go func() {
			s.syncer.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			s.logger.Warn("shutdown before all backend pushes finished")
		}
	}

	if s.stopHub != nil {
		s.stopHub()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	return err
}
