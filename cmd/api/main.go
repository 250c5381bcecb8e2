package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/suhana-bhanu/attendance-system/internal/config"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	appHTTP "github.com/suhana-bhanu/attendance-system/internal/handler/http"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/cron"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/database"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/jwt"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/sse"
	"github.com/suhana-bhanu/attendance-system/internal/repository/memory"
	"github.com/suhana-bhanu/attendance-system/internal/repository/mongodb"
	"github.com/suhana-bhanu/attendance-system/internal/repository/postgresql"
	attendanceService "github.com/suhana-bhanu/attendance-system/internal/service/attendance"
	serviceAuth "github.com/suhana-bhanu/attendance-system/internal/service/auth"
	dashboardService "github.com/suhana-bhanu/attendance-system/internal/service/dashboard"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// stores bundles the repositories of one driver with its health check and teardown.
type stores struct {
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	pinger     appHTTP.Pinger
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("Error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	loc := cfg.Location()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(st.employees, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(st.attendance, st.employees, hub, loc)
	dashboardSvc := dashboardService.NewDashboardService(st.attendance, st.employees, loc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(attendanceSvc, hub),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewHealthHandler(st.pinger, cfg.Database.Driver),
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.AbsentSweepEnabled {
		cron.NewAbsentJobs(st.attendance, st.employees, loc).RegisterJobs(scheduler, cfg.Cron.AbsentSweepInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(connectCtx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		if err := postgresql.EnsureSchema(connectCtx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			employees:  postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			pinger:     db,
			close:      db.Close,
		}, nil

	case config.DriverMongo:
		db, err := database.NewMongoDB(connectCtx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(connectCtx, db); err != nil {
			_ = db.Close(context.Background())
			return nil, err
		}
		return &stores{
			employees:  mongodb.NewEmployeeRepository(db),
			attendance: mongodb.NewAttendanceRepository(db),
			pinger:     db,
			close: func() {
				if err := db.Close(context.Background()); err != nil {
					slog.Error("Error closing mongodb client", "error", err)
				}
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		slog.Warn("Using in-memory store, data is lost on restart")
		return &stores{
			employees:  memory.NewEmployeeRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			pinger:     store,
			close:      func() {},
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
