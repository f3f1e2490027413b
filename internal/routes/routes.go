package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/stockpile-app/stockpile-backend/internal/config"
	"github.com/stockpile-app/stockpile-backend/internal/handlers"
	"github.com/stockpile-app/stockpile-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, cfg *config.Settings) {
	protect := middleware.Protect(cfg.JWTSecret)

	// Credential endpoints get a per-IP limit so password guessing and
	// reset-mail flooding stay cheap to absorb.
	authLimit := httprate.LimitByIP(10, time.Minute)

	r.Route("/api/users", func(r chi.Router) {
		r.With(authLimit).Post("/register", handlers.Register)
		r.With(authLimit).Post("/login", handlers.Login)
		r.Get("/logout", handlers.Logout)
		r.Get("/loggedin", handlers.LoginStatus)
		r.With(authLimit).Post("/forgotpassword", handlers.ForgotPassword)
		r.With(authLimit).Patch("/resetpassword/{resetToken}", handlers.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Get("/getuser", handlers.GetUser)
			r.Patch("/updateuser", handlers.UpdateUser)
			r.Patch("/updatepassword", handlers.UpdatePassword)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(protect)
		r.Post("/createproduct", handlers.CreateProduct)
		r.Get("/", handlers.GetProducts)
		r.Get("/{productId}", handlers.GetProduct)
		r.Delete("/{productId}", handlers.DeleteProduct)
		r.Patch("/{productId}", handlers.UpdateProduct)
	})

	r.With(protect).Post("/api/contactus/", handlers.Contact)
}
