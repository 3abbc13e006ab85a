package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	logger_adapter "property-catalog/internal/adapters/logger"
	property_api_client "property-catalog/internal/adapters/property_api_client"
	"property-catalog/internal/adapters/rest"
	"property-catalog/internal/configs"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/contracts"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/port"
	"property-catalog/internal/core/retry"
	"property-catalog/internal/core/usecase"
	fluentlogger "property-catalog/pkg/fluent_logger"
	"syscall"
	"time"
)

const (
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options - параметры сборки приложения. Нулевое значение подходит для сервера.
type Options struct {
	EnvPath string
	// LogWriter - куда пишет stdout-логгер. CLI направляет логи в stderr.
	LogWriter io.Writer
	// LogLevel переопределяет STDOUT_LOG_LEVEL.
	LogLevel  string
	OnSuccess func(message string)
	OnError   func(err *apierr.APIError)
}

type App struct {
	config    *configs.AppConfig
	apiClient *property_api_client.Client
	catalog   *usecase.CatalogController
	apiServer *rest.Server

	logs   *logger_adapter.MultiLoggerAdapter
	logger port.LoggerPort
}

func NewApp(opts Options) (*App, error) {
	appConfig, err := configs.LoadConfig(opts.EnvPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	level := appConfig.StdoutLogger.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   opts.LogWriter,
		Level:    logger_adapter.ParseLevel(level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. АДАПТЕРЫ ---
	apiClient := property_api_client.NewClient(property_api_client.Config{
		BaseURL: appConfig.ApiClient.BaseURL,
		Timeout: requestTimeout,
		Retry:   retry.DefaultOptions(),
	})

	validator, err := contracts.NewSchemaValidator()
	if err != nil {
		appLogger.Error("Failed to compile input schemas", err, nil)
		return nil, fmt.Errorf("failed to create input validator: %w", err)
	}

	// --- 3. КОНТРОЛЛЕР КАТАЛОГА ---
	onSuccess := opts.OnSuccess
	if onSuccess == nil {
		onSuccess = func(message string) {
			appLogger.Info("Notification", port.Fields{"message": message})
		}
	}
	onError := opts.OnError
	if onError == nil {
		onError = func(err *apierr.APIError) {
			appLogger.Warn("Error notification", port.Fields{
				"message": apierr.UserFriendlyMessage(err), "status_code": err.StatusCode,
			})
		}
	}

	catalog := usecase.NewCatalogController(apiClient, usecase.ControllerOptions{
		Logger:    baseLogger,
		Validator: validator,
		OnSuccess: onSuccess,
		OnError:   onError,
	})
	appLogger.Debug("Catalog controller configured", port.Fields{"api_base_url": apiClient.BaseURL()})

	return &App{
		config:    appConfig,
		apiClient: apiClient,
		catalog:   catalog,
		logs:      multiLogger,
		logger:    appLogger,
	}, nil
}

// Catalog возвращает контроллер для CLI-команд.
func (a *App) Catalog() *usecase.CatalogController {
	return a.catalog
}

// API - клиент API каталога для справочных запросов CLI.
func (a *App) API() port.PropertyAPIPort {
	return a.apiClient
}

// Context - контекст с логгером приложения для вызовов из CLI.
func (a *App) Context(ctx context.Context) context.Context {
	return contextkeys.ContextWithLogger(ctx, a.logger)
}

// Run загружает каталог, поднимает HTTP-фасад и ждет сигнала завершения.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()
	defer a.Close()

	handlers := rest.NewCatalogHandler(a.catalog, usecase.DefaultQuietPeriod)
	a.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           a.config.Rest.PORT,
		AllowedOrigins: a.config.Rest.CORSAllowedOrigins,
	}, handlers, a.logger)

	a.logger.Info("Application is starting...", port.Fields{"api_base_url": a.apiClient.BaseURL()})
	a.catalog.Mount(a.Context(appCtx))

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// Close отменяет отложенную перезагрузку каталога и закрывает логгеры.
func (a *App) Close() {
	a.catalog.Close()
	a.logger.Debug("Application shut down.", nil)

	if err := a.logs.Close(); err != nil {
		// fluent может быть уже недоступен
		fmt.Fprintf(os.Stderr, "ERROR: Error closing loggers: %v\n", err)
	}
}
