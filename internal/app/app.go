package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/config"
	"github.com/Michaelnacaya1234/Accounting-services/internal/db"
	"github.com/Michaelnacaya1234/Accounting-services/internal/handlers"
	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"
	"github.com/Michaelnacaya1234/Accounting-services/internal/middleware"
	"github.com/Michaelnacaya1234/Accounting-services/internal/queue"
	"github.com/Michaelnacaya1234/Accounting-services/internal/ratelimit"
	"github.com/Michaelnacaya1234/Accounting-services/internal/repository"
	"github.com/Michaelnacaya1234/Accounting-services/internal/resettoken"
	"github.com/Michaelnacaya1234/Accounting-services/internal/routes"
	"github.com/Michaelnacaya1234/Accounting-services/internal/services"
	"github.com/Michaelnacaya1234/Accounting-services/internal/storage"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const mailWorkers = 3

// App держит роутер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	Router *mux.Router

	pool   *pgxpool.Pool
	redis  *redis.Client
	mail   queue.Queue
	cancel context.CancelFunc
}

func InitApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{cancel: cancel}

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg); err != nil {
			a.Close()
			return nil, err
		}
		logger.Log.Info("Миграции применены")
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("postgres %s: %w", cfg.GetDSNSafe(), err)
	}
	a.pool = conn

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	clientRepo := repository.NewClientRepository(conn)
	employeeRepo := repository.NewEmployeeRepository(conn)

	// Почта и очередь уведомлений
	sender, err := mailer.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.mail, err = newMailQueue(ctx, cfg, sender)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Redis: лимиты и одноразовость токенов
	var limiter services.RateLimiter
	opts := []resettoken.Option{resettoken.WithDecoyDelay(cfg.ResetDecoyDelay())}
	if cfg.RedisAddr != "" {
		a.redis, err = ratelimit.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.Close()
			return nil, err
		}
		limiter = ratelimit.NewLimiter(a.redis, time.Now)
		if cfg.PasswordResetSingleUse {
			opts = append(opts, resettoken.WithConsumedSet(ratelimit.NewConsumedSet(a.redis, time.Now)))
		}
	}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := storage.NewLocal(cfg.UploadsDir)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Сервисы
	emailService := services.NewEmailService(sender, cfg.LoginURL())
	resetFlow := resettoken.New(resettoken.Config{
		Secret:   cfg.PasswordResetSecret,
		TTL:      cfg.ResetTTL(),
		LinkBase: cfg.ResetLinkBase(),
	}, userRepo, userRepo, emailService, opts...)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL())
	passwordService := services.NewPasswordService(resetFlow, limiter, cfg.ResetRateLimitPerHour)
	clientService := services.NewClientService(clientRepo, emailService, a.mail)
	employeeService := services.NewEmployeeService(employeeRepo, clientRepo)

	if err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		a.Close()
		return nil, err
	}

	// Маршруты
	a.Router = mux.NewRouter()
	routes.InitRoutes(a.Router, cfg.JWTSecret, trustedProxies, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Password:  handlers.NewPasswordHandler(passwordService),
		Clients:   handlers.NewClientHandler(clientService),
		Employees: handlers.NewEmployeeHandler(employeeService, store, cfg.MaxUploadMB),
		Uploads:   handlers.NewUploadHandler(store),
	})

	return a, nil
}

// newMailQueue выбирает RabbitMQ, если он настроен, иначе очередь в памяти.
func newMailQueue(ctx context.Context, cfg *config.Config, sender mailer.Sender) (queue.Queue, error) {
	if cfg.RabbitMQURL == "" {
		return queue.NewMemoryQueue(sender, 100, mailWorkers), nil
	}

	rq, err := queue.NewRabbitQueue(cfg.RabbitMQURL, cfg.NotifyQueue, sender)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := rq.Consume(ctx); err != nil {
			logger.Log.Error("Консьюмер уведомлений остановлен", zap.Error(err))
		}
	}()
	logger.Log.Info("Уведомления идут через RabbitMQ", zap.String("queue", cfg.NotifyQueue))
	return rq, nil
}

// Close останавливает консьюмер, дожидается очереди писем и закрывает соединения.
func (a *App) Close() {
	a.cancel()
	if a.mail != nil {
		if err := a.mail.Close(); err != nil {
			logger.Log.Warn("Ошибка закрытия очереди писем", zap.Error(err))
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
