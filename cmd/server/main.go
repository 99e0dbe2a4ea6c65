package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"detallado/internal/api"
	"detallado/internal/auth"
	"detallado/internal/repository"
	"detallado/internal/service"
	"detallado/internal/wizard"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo, sender)
	bookingSvc := service.NewBookingService(bookingRepo, authSvc, sender)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	reviewSvc := service.NewReviewService(reviewRepo)

	wizardStore := wizard.NewStore()
	jobSvc := service.NewJobService(jobRepo, userRepo, wizardStore)

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	catalogHandler := api.NewCatalogHandler()
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	reviewHandler := api.NewReviewHandler(reviewSvc, authSvc)
	wizardHandler := api.NewWizardHandler(wizardStore, bookingSvc, vehicleSvc, authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/catalog/vehicle-types", catalogHandler.VehicleTypes).Methods("GET")
	r.HandleFunc("/api/catalog/services", catalogHandler.Services).Methods("GET")
	r.HandleFunc("/api/catalog/time-slots", catalogHandler.TimeSlots).Methods("GET")
	r.HandleFunc("/api/testimonials", reviewHandler.Testimonials).Methods("GET")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")

	// Auth endpoints
	r.HandleFunc("/api/auth/signup", authHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", authHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/auth/password-reset", authHandler.RequestPasswordReset).Methods("POST")
	r.HandleFunc("/api/auth/password-reset/confirm", authHandler.ResetPassword).Methods("POST")
	r.Handle("/api/auth/me", auth.RequireAuth(http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Booking endpoints: availability and creation work with or without a
	// session; creating without one auto-provisions an account.
	optional := r.PathPrefix("/api").Subrouter()
	optional.Use(auth.OptionalAuth)
	optional.HandleFunc("/availability", bookingHandler.MonthAvailability).Methods("GET")
	optional.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")

	// Wizard endpoints
	wz := r.PathPrefix("/api/wizard").Subrouter()
	wz.Use(auth.OptionalAuth)
	wz.HandleFunc("", wizardHandler.Start).Methods("POST")
	wz.HandleFunc("/{id}", wizardHandler.GetState).Methods("GET")
	wz.HandleFunc("/{id}", wizardHandler.Restart).Methods("DELETE")
	wz.Handle("/{id}/saved-vehicle", auth.RequireAuth(http.HandlerFunc(wizardHandler.SelectSavedVehicle))).Methods("POST")
	wz.HandleFunc("/{id}/new-vehicle", wizardHandler.StartNewVehicle).Methods("POST")
	wz.HandleFunc("/{id}/vehicle-type", wizardHandler.SelectVehicleType).Methods("POST")
	wz.HandleFunc("/{id}/service", wizardHandler.SelectService).Methods("POST")
	wz.HandleFunc("/{id}/client-info", wizardHandler.SetClientInfo).Methods("POST")
	wz.HandleFunc("/{id}/schedule", wizardHandler.SetSchedule).Methods("POST")
	wz.HandleFunc("/{id}/next", wizardHandler.Next).Methods("POST")
	wz.HandleFunc("/{id}/prev", wizardHandler.Prev).Methods("POST")
	wz.HandleFunc("/{id}/jump", wizardHandler.Jump).Methods("POST")
	wz.HandleFunc("/{id}/confirm", wizardHandler.Confirm).Methods("POST")

	// Dashboard endpoints (protected)
	dashboard := r.PathPrefix("/api").Subrouter()
	dashboard.Use(auth.RequireAuth)
	dashboard.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	dashboard.HandleFunc("/bookings/{code}", bookingHandler.CancelBooking).Methods("DELETE")
	dashboard.HandleFunc("/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	dashboard.HandleFunc("/vehicles", vehicleHandler.CreateVehicle).Methods("POST")
	dashboard.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	dashboard.HandleFunc("/vehicles/{id}/primary", vehicleHandler.SetPrimaryVehicle).Methods("PUT")
	dashboard.HandleFunc("/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	dashboard.HandleFunc("/reviews", reviewHandler.ListReviews).Methods("GET")
	dashboard.HandleFunc("/reviews", reviewHandler.CreateReview).Methods("POST")
	dashboard.HandleFunc("/reviews/{id}", reviewHandler.DeleteReview).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.FinishPastBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
		if err := jobSvc.CleanupResetTokens(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@every 15m", jobSvc.SweepWizardSessions)
	c.Start()
	defer c.Stop()

	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(allowedOrigins, ",")),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Accept-Language"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}
