package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/givenmphiwe/bioclock-backend-go/internal/config"
	appHTTP "github.com/givenmphiwe/bioclock-backend-go/internal/handler/http"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/cron"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/jwt"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/sse"
	"github.com/givenmphiwe/bioclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/givenmphiwe/bioclock-backend-go/internal/service/attendance"
	serviceAuth "github.com/givenmphiwe/bioclock-backend-go/internal/service/auth"
	dashboardService "github.com/givenmphiwe/bioclock-backend-go/internal/service/dashboard"
	employeeService "github.com/givenmphiwe/bioclock-backend-go/internal/service/employee"
	leaveService "github.com/givenmphiwe/bioclock-backend-go/internal/service/leave"
	payrollService "github.com/givenmphiwe/bioclock-backend-go/internal/service/payroll"
	settingsService "github.com/givenmphiwe/bioclock-backend-go/internal/service/settings"
	userService "github.com/givenmphiwe/bioclock-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()
	registry := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(registry)

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(userRepo, JWTRepository)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, settingsRepo, hub)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, settingsRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, settingsRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, employeeRepo, leaveRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, appMetrics),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, appMetrics),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Presence:   appHTTP.NewPresenceHandler(hub, appMetrics),
	}

	router := appHTTP.NewRouter(JWTService, handlers, appMetrics, registry, cfg.App.AllowedOrigins)

	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, settingsRepo, appMetrics)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-auto-resolution", time.Hour, attendanceJobs.ResolveOpenRecords)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
