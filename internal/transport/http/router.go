package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	adminapp "github.com/onboarding-api/internal/application/admin"
	"github.com/onboarding-api/internal/application/catalog"
	"github.com/onboarding-api/internal/application/onboarding"
	profileapp "github.com/onboarding-api/internal/application/profile"
	subscriptionapp "github.com/onboarding-api/internal/application/subscription"
	"github.com/onboarding-api/internal/config"
	"github.com/onboarding-api/internal/domain"
	"github.com/onboarding-api/internal/infrastructure/cognito"
	"github.com/onboarding-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/onboarding-api/internal/infrastructure/jwt"
	s3infra "github.com/onboarding-api/internal/infrastructure/s3"
	"github.com/onboarding-api/internal/infrastructure/smtp"
	"github.com/onboarding-api/internal/infrastructure/sns"
	"github.com/onboarding-api/internal/infrastructure/whatsapp"
	"github.com/onboarding-api/internal/transport/http/handler"
	appmiddleware "github.com/onboarding-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	OTPRepo          *dynamo.OTPRepo
	ServiceRepo      *dynamo.ServiceRepo
	SubscriptionRepo *dynamo.SubscriptionRepo
	AdminRepo        *dynamo.AdminRepo
	Provider         cognito.IdentityProvider
	Mailer           smtp.Mailer
	WhatsAppSender   whatsapp.Sender
	SMSSender        sns.SMSSender
	S3Store          *s3infra.Store
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	var phone onboarding.PhoneChannel
	if cfg.PhoneChannel == "sns" && deps.SMSSender != nil {
		phone = onboarding.NewSMSChannel(deps.SMSSender)
	} else {
		phone = onboarding.NewWhatsAppChannel(deps.WhatsAppSender, cfg.OTPTTL)
	}

	onboardingSvc := onboarding.NewService(onboarding.ServiceDeps{
		UserRepo:   deps.UserRepo,
		OTPRepo:    deps.OTPRepo,
		Provider:   deps.Provider,
		Email:      onboarding.NewMailChannel(deps.Mailer, cfg.OTPTTL),
		Phone:      phone,
		OTPTTL:     cfg.OTPTTL,
		BcryptCost: cfg.BcryptCost,
	})
	catalogSvc := catalog.NewService(deps.ServiceRepo)
	subscriptionSvc := subscriptionapp.NewService(deps.SubscriptionRepo)
	adminSvc := adminapp.NewService(deps.AdminRepo, deps.JWTProvider)
	profileSvc := profileapp.NewService(deps.UserRepo, deps.S3Store)

	healthH := handler.NewHealthHandler()
	onboardingH := handler.NewOnboardingHandler(onboardingSvc)
	serviceH := handler.NewServiceHandler(catalogSvc)
	subscriptionH := handler.NewSubscriptionHandler(subscriptionSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	profileH := handler.NewProfileHandler(profileSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/users", onboardingH.Signup)
		r.With(sensitiveRL.Limit).Post("/users/verify", onboardingH.Verify)
		r.With(sensitiveRL.Limit).Post("/sessions/login", onboardingH.Login)
		r.With(sensitiveRL.Limit).Post("/admin/login", adminH.Login)
		r.Post("/subscriptions", subscriptionH.Subscribe)
		r.Get("/services", serviceH.List)
		r.Get("/services/{id}", serviceH.Get)

		// ── Admin routes ─────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Post("/services", serviceH.Create)
			r.Put("/services/{id}", serviceH.Update)
			r.Delete("/services/{id}", serviceH.Delete)
			r.Put("/users/{email}", profileH.Update)
			r.Post("/users/{email}/photo", profileH.UploadPhoto)
		})
	})

	return r
}
