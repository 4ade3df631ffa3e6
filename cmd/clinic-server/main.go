package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthnexus/clinic/internal/config"
	"github.com/healthnexus/clinic/internal/domain/billing"
	"github.com/healthnexus/clinic/internal/domain/booking"
	"github.com/healthnexus/clinic/internal/domain/catalog"
	"github.com/healthnexus/clinic/internal/domain/identity"
	"github.com/healthnexus/clinic/internal/domain/prescription"
	"github.com/healthnexus/clinic/internal/platform/apperr"
	"github.com/healthnexus/clinic/internal/platform/auth"
	"github.com/healthnexus/clinic/internal/platform/db"
	"github.com/healthnexus/clinic/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "HealthNexus clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample doctors and medical tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			doctorRepo := catalog.NewDoctorRepoPG(pool)
			sampleDoctors := []*catalog.Doctor{
				{
					Name:            "Dr. Sarah Mitchell",
					Speciality:      "Cardiologist",
					ConsultationFee: 150,
					Rating:          4.8,
					Experience:      12,
					Qualification:   "MD, FACC",
					AvailableSlots:  []string{"9:00 AM", "10:30 AM", "2:00 PM"},
				},
				{
					Name:            "Dr. James Okafor",
					Speciality:      "Dermatologist",
					ConsultationFee: 100,
					Rating:          4.6,
					Experience:      8,
					Qualification:   "MD",
				},
				{
					Name:            "Dr. Priya Raman",
					Speciality:      "Pediatrician",
					ConsultationFee: 90,
					Rating:          4.9,
					Experience:      15,
					Qualification:   "MD, FAAP",
					AvailableSlots:  []string{"11:00 AM", "3:00 PM", "4:30 PM"},
				},
			}
			for _, d := range sampleDoctors {
				if err := doctorRepo.Create(ctx, d); err != nil {
					return fmt.Errorf("seed doctor %q: %w", d.Name, err)
				}
			}

			tests := catalog.NewMedicalTestRepoPG(pool)
			for _, t := range []*catalog.MedicalTest{
				{Name: "Complete Blood Count", Description: "Measures red cells, white cells and platelets.", Price: 45},
				{Name: "Lipid Panel", Description: "Cholesterol and triglyceride levels.", Price: 60},
				{Name: "Thyroid Function", Description: "TSH, T3 and T4 levels.", Price: 75},
			} {
				if err := tests.Create(ctx, t); err != nil {
					return fmt.Errorf("seed test %q: %w", t.Name, err)
				}
			}

			hash, err := auth.HashPassword("demo1234")
			if err != nil {
				return err
			}
			demo := &identity.Patient{
				Name:         "Demo Patient",
				Email:        "demo@example.com",
				PasswordHash: hash,
				Address:      "12 Elm Street",
				Phone:        "555-0100",
				DateOfBirth:  "1990-04-12",
			}
			if err := identity.NewPatientRepoPG(pool).Create(ctx, demo); err != nil {
				return fmt.Errorf("seed patient: %w", err)
			}

			bill := &billing.Bill{
				PatientID:   demo.ID,
				ServiceName: "Consultation",
				Amount:      150,
			}
			if err := billing.NewBillRepoPG(pool).CreateBill(ctx, bill); err != nil {
				return fmt.Errorf("seed bill: %w", err)
			}

			rx := &prescription.Prescription{
				PatientID: demo.ID,
				DoctorID:  sampleDoctors[0].ID,
				Disease:   "Hypertension",
				Medicines: []prescription.Medicine{
					{Name: "Lisinopril", Dosage: "10mg", Frequency: "once daily"},
				},
				Instructions: "Take in the morning with water.",
			}
			if err := prescription.NewRepoPG(pool).Create(ctx, rx); err != nil {
				return fmt.Errorf("seed prescription: %w", err)
			}

			fmt.Println("Seed data inserted.")
			return nil
		},
	}
}

// routeRegistrar is implemented by every domain handler.
type routeRegistrar interface {
	RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc)
}

// newRouter assembles the echo instance with the production middleware chain
// and error handler. The caller adds /health, which needs the database pool.
func newRouter(logger zerolog.Logger, requestTimeout time.Duration, corsOrigins []string, tokens *auth.TokenIssuer, handlers ...routeRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(requestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	requireAuth := auth.RequireAuth(tokens)
	api := e.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api, requireAuth)
	}
	return e
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
	txRunner := db.PoolTxRunner{Pool: pool}

	patientRepo := identity.NewPatientRepoPG(pool)
	identitySvc := identity.NewService(patientRepo, tokens)

	doctorRepo := catalog.NewDoctorRepoPG(pool)
	testRepo := catalog.NewMedicalTestRepoPG(pool)
	catalogSvc := catalog.NewService(doctorRepo, testRepo)

	apptRepo := booking.NewAppointmentRepoPG(pool)
	bookedTestRepo := booking.NewBookedTestRepoPG(pool)
	bookingSvc := booking.NewService(apptRepo, bookedTestRepo, catalogSvc, txRunner)

	billRepo := billing.NewBillRepoPG(pool)
	billingSvc := billing.NewService(billRepo, txRunner)

	prescriptionRepo := prescription.NewRepoPG(pool)
	prescriptionSvc := prescription.NewService(prescriptionRepo)

	e := newRouter(logger, cfg.Timeout(), cfg.CORSOrigins, tokens,
		identity.NewHandler(identitySvc),
		catalog.NewHandler(catalogSvc),
		booking.NewHandler(bookingSvc),
		billing.NewHandler(billingSvc),
		prescription.NewHandler(prescriptionSvc),
	)
	e.GET("/health", db.HealthHandler(pool))

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
