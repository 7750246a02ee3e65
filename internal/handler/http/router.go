package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hrsuite/payroll-backend-go/internal/handler/http/middleware"
	"github.com/hrsuite/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollDraftHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		// Requires authentication; payroll runs are a manager function.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireManager)

			r.Route("/payroll/draft", func(r chi.Router) {
				r.Post("/", payrollHandler.FetchDraft)
				r.Get("/", payrollHandler.GetDraft)
				r.Delete("/", payrollHandler.DiscardDraft)

				r.Route("/items/{kind}/{id}", func(r chi.Router) {
					r.Post("/toggle", payrollHandler.ToggleLineItem)
					r.Post("/edit", payrollHandler.BeginLineItemEdit)
					r.Put("/edit", payrollHandler.UpdateLineItemWorking)
					r.Post("/edit/commit", payrollHandler.CommitLineItemEdit)
					r.Post("/edit/cancel", payrollHandler.CancelLineItemEdit)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Post("/{id}/toggle", payrollHandler.ToggleHolidayGroup)
					r.Route("/dates/{id}", func(r chi.Router) {
						r.Post("/edit", payrollHandler.BeginHolidayDateEdit)
						r.Put("/edit", payrollHandler.UpdateHolidayDateWorking)
						r.Post("/edit/commit", payrollHandler.CommitHolidayDateEdit)
						r.Post("/edit/cancel", payrollHandler.CancelHolidayDateEdit)
					})
				})

				r.Route("/final-payable", func(r chi.Router) {
					r.Post("/edit", payrollHandler.BeginFinalPayableEdit)
					r.Post("/edit/commit", payrollHandler.CommitFinalPayable)
					r.Post("/edit/cancel", payrollHandler.CancelFinalPayableEdit)
					r.Post("/reset", payrollHandler.ResetFinalPayableToAuto)
				})

				r.Put("/remark", payrollHandler.SetRemark)
				r.Post("/submit", payrollHandler.Submit)
			})
		})
	})
	return r
}
