package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cumplimed/backend/config"
	"cumplimed/backend/internal/api/handler"
	"cumplimed/backend/internal/api/router"
	"cumplimed/backend/internal/repository"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/database"
	applogger "cumplimed/backend/pkg/logger"
	"cumplimed/backend/pkg/redis"
)

func main() {
	// 1. Cargar configuración
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error cargando configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. Inicializar logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error inicializando logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando aplicación...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Conectar a la base de datos
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("error conectando a la base de datos", zap.Error(err))
	}
	logger.Info("conexión a base de datos establecida")

	// 3.1 Ejecutar migraciones
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("error obteniendo sql.DB subyacente", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("error ejecutando migraciones", zap.Error(err))
	}

	// 4. Conectar a Redis (opcional: si falla se degrada sin caché de
	// configuración operativa, no se interrumpe el arranque)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("conexión a Redis fallida, la caché de configuración operativa queda deshabilitada", zap.Error(err))
		rdb = nil
	}

	// 5. Inyección de dependencias: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, rdb, logger)
	h := handler.NewHandler(svc)

	// 6. Inicializar rutas
	engine := router.Setup(cfg, h, logger)

	// 7. Arrancar servidor HTTP (con apagado elegante)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("error en servidor HTTP", zap.Error(err))
		}
	}()

	// 8. Escuchar señales del sistema, apagado elegante
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal de apagado recibida, cerrando...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error cerrando servidor", zap.Error(err))
	}

	// Cerrar conexión a base de datos
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// Cerrar conexión a Redis
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor detenido")
}
