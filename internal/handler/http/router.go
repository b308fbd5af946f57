package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	env string,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paycore-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/import", attendanceHandler.Import)
			r.Post("/import/workbook", attendanceHandler.ImportWorkbook)
			r.Get("/", attendanceHandler.List)
			r.Get("/{id}", attendanceHandler.Get)
			r.Put("/{id}", attendanceHandler.Correct)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/period", payrollHandler.GetPeriod)
			r.Get("/summary/{employeeID}", payrollHandler.GetSummary)
			r.Get("/performance/{employeeID}", payrollHandler.GetPerformance)
			r.Get("/leave-eligibility/{employeeID}", payrollHandler.GetLeaveEligibility)
			r.Get("/report", payrollHandler.GetReport)
		})
	})

	return r
}
