package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/paycore-hr/payroll-backend-go/internal/config"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	appHTTP "github.com/paycore-hr/payroll-backend-go/internal/handler/http"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paycore-hr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/paycore-hr/payroll-backend-go/internal/service/attendance"
	payrollService "github.com/paycore-hr/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	weights := payroll.ScoreWeights{
		LatePenalty:    cfg.Performance.LatePenalty,
		AbsencePenalty: cfg.Performance.AbsencePenalty,
		ExcellentMin:   cfg.Performance.ExcellentMin,
		GoodMin:        cfg.Performance.GoodMin,
		AverageMin:     cfg.Performance.AverageMin,
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, weights)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		attendanceHandler,
		payrollHandler,
		cfg.App.Env,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
