package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/controller"
	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/route"
	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/agent"
	"github.com/hugohenrick/agente-atendimento/internal/aggregator"
	"github.com/hugohenrick/agente-atendimento/internal/capability"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/internal/infrastructure/database"
	"github.com/hugohenrick/agente-atendimento/internal/rag"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router           *gin.Engine
	db               *pgxpool.Pool
	logger           logger.Logger
	tenantRepository tenant.Repository
	chatController   *controller.ChatController
	tenantController *controller.TenantController
	statsController  *controller.StatsController
	userController   *controller.UserController
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
// conectadas
func NewApp() (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Repositórios
	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Capacidades de linguagem natural
	anthropic, err := capability.NewAnthropicClient(log)
	if err != nil {
		db.Close()
		return nil, err
	}
	caps := capability.Suite{
		Classifier: anthropic,
		Extractor:  anthropic,
		Sentiment:  anthropic,
		Responder:  anthropic,
	}

	// Recuperação de contexto e motor do agente
	retriever := rag.NewService(db, rag.NewHashEmbedder(), log)
	engine := agent.NewEngine(agent.Store{
		Tenants:  tenantRepo,
		Products: productRepo,
		Orders:   orderRepo,
		Reviews:  reviewRepo,
		Stats:    statsRepo,
	}, caps, retriever, log)

	agg := aggregator.NewAggregator(tenantRepo, conversationRepo, orderRepo, productRepo, statsRepo, log)

	// Controllers
	chatController := controller.NewChatController(engine, tenantRepo, conversationRepo, orderRepo, userRepo, log)
	tenantController := controller.NewTenantController(tenantRepo)
	statsController := controller.NewStatsController(tenantRepo, conversationRepo, productRepo, statsRepo, agg, log)
	userController := controller.NewUserController(userRepo, conversationRepo, orderRepo)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	return &App{
		router:           router,
		db:               db,
		logger:           log,
		tenantRepository: tenantRepo,
		chatController:   chatController,
		tenantController: tenantController,
		statsController:  statsController,
		userController:   userController,
	}, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	api.GET("/health", a.healthCheck)

	route.SetupChatRoutes(api, a.chatController)
	route.SetupTenantRoutes(api, a.tenantController)
	route.SetupStatsRoutes(api, a.statsController)
	route.SetupUserRoutes(api, a.userController)
}

// healthCheck verifica a conectividade com o banco contando os tenants ativos
func (a *App) healthCheck(c *gin.Context) {
	tenants, err := a.tenantRepository.ListActive(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"active_tenants": len(tenants),
	})
}

// Start inicia o servidor HTTP e espera por um sinal de término para fazer
// o shutdown gracioso
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// corsMiddleware configura o CORS a partir da variável CORS_ORIGINS
// (origens separadas por vírgula; vazio libera todas)
func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" || origins == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = strings.Split(origins, ",")
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	return cors.New(config)
}
