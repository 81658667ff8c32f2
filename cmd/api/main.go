package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/onboarding-api/internal/config"
	"github.com/onboarding-api/internal/infrastructure/cognito"
	"github.com/onboarding-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/onboarding-api/internal/infrastructure/jwt"
	s3infra "github.com/onboarding-api/internal/infrastructure/s3"
	"github.com/onboarding-api/internal/infrastructure/smtp"
	"github.com/onboarding-api/internal/infrastructure/sns"
	"github.com/onboarding-api/internal/infrastructure/whatsapp"
	transporthttp "github.com/onboarding-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the DynamoDB table (creates it if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTableName)

	// Identity provider.
	idp, err := cognito.NewProvider(cfg)
	if err != nil {
		log.Fatalf("identity provider not available: %v", err)
	}

	// JWT provider for admin sessions.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider not available: %v", err)
	}

	// S3 store for profile photos.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer (email channel).
	mailer := smtp.NewMailer(cfg)

	// WhatsApp sender (primary phone channel).
	waSender := whatsapp.NewSender(cfg)

	// SNS SMS sender (fallback phone channel — optional).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTableName),
		OTPRepo:          dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTableName),
		ServiceRepo:      dynamo.NewServiceRepo(dynamoClient, cfg.DynamoTableName),
		SubscriptionRepo: dynamo.NewSubscriptionRepo(dynamoClient, cfg.DynamoTableName),
		AdminRepo:        dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTableName),
		Provider:         idp,
		Mailer:           mailer,
		WhatsAppSender:   waSender,
		SMSSender:        smsSender,
		S3Store:          s3Store,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
