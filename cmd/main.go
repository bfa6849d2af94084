package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	"todolist-service/internal/api"
	"todolist-service/internal/config"
	"todolist-service/internal/entity"
	"todolist-service/internal/repository"
	"todolist-service/internal/service"
	"todolist-service/migrations"
)

func connectDB(dsn, dbname string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s: %v", i+1, dbname, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s after retries: %v", dbname, err)
}

// seedUserStore builds the static single-user credential store. The password
// is hashed here so the plaintext never leaves process startup.
func seedUserStore(cfg *config.Config) (*repository.StaticUserStore, error) {
	hash, err := service.HashPassword(cfg.SeedPassword)
	if err != nil {
		return nil, err
	}

	return repository.NewStaticUserStore(entity.UserCredential{
		UserProfile: entity.UserProfile{
			Username: cfg.SeedUsername,
			Email:    cfg.SeedEmail,
			FullName: cfg.SeedFullName,
			Disabled: false,
		},
		HashedPassword: hash,
	}), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectDB(cfg.DSN(), cfg.DBName)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateTodos(db); err != nil {
		log.Fatalf("Failed to migrate todos table: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
	}

	var kafkaWriter *kafka.Writer
	if cfg.KafkaBrokers != "" {
		kafkaWriter = config.NewKafkaWriter(cfg.KafkaBrokers, "todo-events")
	}

	userStore, err := seedUserStore(cfg)
	if err != nil {
		log.Fatalf("Failed to seed user store: %v", err)
	}

	todoRepo := repository.NewTodoRepository(db)
	todoService := service.NewTodoService(todoRepo, kafkaWriter, rdb)
	authService := service.NewAuthService(userStore, []byte(cfg.SecretKey))
	todoHandler := api.NewTodoHandler(todoService)
	userHandler := api.NewUserHandler(authService, todoService)

	e := echo.New()
	e.Renderer = api.NewRenderer()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/", todoHandler.Home)
	e.POST("/add", todoHandler.Add)
	e.GET("/update/:todo_id", todoHandler.Toggle)
	e.GET("/description/:todo_id", todoHandler.UpdateDescription)
	e.GET("/complete_status/:todo_id", todoHandler.SetCompleteStatus)
	e.GET("/delet/:todo_id", todoHandler.Delete)

	e.POST("/token", userHandler.Login)

	user := e.Group("/user", api.AuthMiddleware([]byte(cfg.SecretKey)))
	user.GET("/me", userHandler.Me)
	user.GET("/me/todolist/", userHandler.MyTodoList)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "todolist-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
