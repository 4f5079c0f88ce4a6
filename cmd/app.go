package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"podmarket/api"
	"podmarket/config"
	"podmarket/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 组装完成的应用进程：HTTP 服务器加上它的依赖
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// Run 启动 HTTP 服务器并阻塞到收到退出信号，随后优雅关闭。
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.config.App.Env))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
		return err
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", zap.Error(err))
			}
		}
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// GetEngine 返回 Gin engine，主要用于 HTTP 层测试。
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
