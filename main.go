package main

import (
	"context"

	"SehatCare/clients"
	"SehatCare/config"
	"SehatCare/config/jwt"
	redis "SehatCare/config/redis"
	"SehatCare/controllers"
	"SehatCare/jobs"
	"SehatCare/mailer"
	"SehatCare/middleware"
	"SehatCare/migrations"
	"SehatCare/routes"
	"SehatCare/server"
	"SehatCare/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	run()
}

/*
* Push configuration into the packages that hold process-wide settings
* External clients are only built when their credentials are present
 */
func wire(ctx context.Context, cfg *config.Config) {
	jwt.Configure(cfg.JWTSecret, cfg.TokenExpiry)
	redis.TTL = cfg.CacheTTL
	services.UploadRoot = cfg.UploadDir
	services.UnsafeRadius = cfg.UnsafeRadius
	services.BufferDistance = cfg.BufferDistance
	controllers.SecureCookies = cfg.IsProduction()

	if err := middleware.RegisterValidators(); err != nil {
		log.Error().Err(err).Msg("Error registering validators")
	}

	key, err := services.LoadOrGenerateSigningKey(cfg.SigningKeyPath)
	if err != nil {
		log.Error().Err(err).Msg("Error loading prescription signing key")
	} else {
		services.SetSigningKey(key)
	}

	if cfg.SMTPUser != "" {
		services.Mailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	if cfg.GoogleAPIKey != "" {
		gen, err := clients.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error().Err(err).Msg("Error creating Gemini client")
		} else {
			services.Generator = gen
		}
	}

	if cfg.MapsAPIKey != "" {
		directions, err := clients.NewMapsClient(cfg.MapsAPIKey)
		if err != nil {
			log.Error().Err(err).Msg("Error creating maps client")
		} else {
			services.Directions = directions
		}
	}

	switch {
	case cfg.VaultBackend == "s3" && cfg.S3Bucket != "":
		vault, err := clients.NewS3Client(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
		if err != nil {
			log.Error().Err(err).Msg("Error creating S3 client")
		} else {
			services.Vault = vault
		}
	case cfg.PinataJWT != "":
		services.Vault = clients.NewPinataClient(cfg.PinataJWT, cfg.PinataAPI, cfg.PinataGW)
	}
}

func run() {
	cfg := config.Get()
	ctx := context.Background()
	wire(ctx, cfg)

	defaultopts := server.GetDefaultOptions()

	options := server.Options{
		CacheEnabled:     defaultopts.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: !isTest,
		JobsHandler: func() {
			if isTest {
				return
			}
			if err := jobs.ImportSeedData(ctx, cfg.SeedDataPath); err != nil {
				log.Error().Err(err).Msg("Error importing seed data")
			}
			if _, err := jobs.StartDailyScheduler(cfg.ReminderSchedule); err != nil {
				log.Error().Err(err).Msg("Error starting reminder scheduler")
			}
		},

		MigrationEnabled: !isTest,
		MigrationHandler: func() {
			if isTest {
				return
			}
			if err := migrations.Run(ctx); err != nil {
				log.Fatal().Err(err).Msg("Migration failed")
			}
		},

		WebServerPreHandler: func(r *gin.Engine) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.AllowedOrigins,
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				AllowCredentials: true,
			}))
			routes.Routes(r)
		},
	}
	startServer(options)
}
