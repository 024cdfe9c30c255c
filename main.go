package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/config"
	"github.com/clinica-hce/historia-backend/database"
	"github.com/clinica-hce/historia-backend/handlers"
	"github.com/clinica-hce/historia-backend/routes"
	"github.com/clinica-hce/historia-backend/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Cargar()
	if err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}

	ctx := context.Background()
	pool, err := database.Conectar(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}
	defer pool.Close()

	// Migración y sembrado son pasos explícitos del arranque
	if err := database.Migrar(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	if cfg.SembrarUsuarios {
		if err := database.Sembrar(ctx, pool, cfg); err != nil {
			log.Fatal().Err(err).Msg("sembrado fallido")
		}
	}

	tokens := auth.NewTokenService(cfg.JWTSecret)
	h := handlers.New(
		store.NewUsuariosPG(pool),
		store.NewPacientesPG(pool),
		store.NewAdmisionesPG(pool),
		store.NewLoginLogsPG(pool),
		tokens,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName: "Historia Clínica Electrónica API v1.0.0",
	})

	routes.SetupRoutes(app, h, tokens, cfg.StaticDir)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	log.Info().Str("puerto", cfg.Port).Msg("servidor iniciado")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("servidor detenido")
	}
}
