package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/emandor/studyhelp_service/internal/cache"
	"github.com/emandor/studyhelp_service/internal/config"
	"github.com/emandor/studyhelp_service/internal/middleware"
	"github.com/emandor/studyhelp_service/internal/ocr"
	"github.com/emandor/studyhelp_service/internal/providers"
	"github.com/emandor/studyhelp_service/internal/studyguide"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	tlog.Info().Str("port", cfg.AppPort).Msg("booting studyhelp_service")

	opts := studyguide.Options{
		OCRMaxW:    cfg.OCRImgMaxW,
		OCRQuality: cfg.OCRImgQuality,
		OCRGray:    cfg.OCRImgGrayscale,
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			tlog.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis_unavailable")
		} else {
			defer rdb.Close()
			opts.PDFCache = cache.NewTextCache(rdb, "pdf:", cfg.ExtractCacheTTL)
			opts.ImageCache = cache.NewTextCache(rdb, "img:", cfg.ExtractCacheTTL)
		}
	}

	reader, err := ocr.New(cfg.OCREngine, cfg.OCRLang, cfg.Credentials.OpenAI, cfg.OCROpenAIModel, cfg.OpenAIBaseURL, cfg.ProviderTimeout)
	if err != nil {
		tlog.Warn().Err(err).Str("engine", cfg.OCREngine).Msg("ocr_disabled")
	}
	opts.OCR = reader

	svc := studyguide.NewService(providers.Build(ctx, cfg), opts)
	if len(svc.Providers()) == 0 {
		tlog.Warn().Msg("no_providers_configured")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxBodyLimit * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RequestLog())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	studyguide.NewHandler(cfg, svc).Register(app.Group("/api/v1"))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
