package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/handlers"
	"github.com/clinica-hce/historia-backend/middleware"
	"github.com/clinica-hce/historia-backend/models"
)

// SetupRoutes registra middleware global y todas las rutas del API
func SetupRoutes(app *fiber.App, h *handlers.Handler, tokens *auth.TokenService, staticDir string) {
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Historia Clínica Electrónica API",
		})
	})

	// Frontend estático, si el directorio existe
	if staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			app.Static("/static", staticDir)
			app.Get("/", func(c *fiber.Ctx) error {
				return c.SendFile(staticDir + "/index.html")
			})
		}
	}

	// Logins segmentados por rol, con rate limiting por IP
	limitado := middleware.AuthRateLimiter()
	app.Post("/token/medico", limitado, h.LoginMedico)
	app.Post("/token/paciente", limitado, h.LoginPaciente)
	app.Post("/token/admisionista", limitado, h.LoginAdmisionista)

	// Todo lo demás requiere token bearer válido
	protegido := middleware.JWTMiddleware(tokens)

	app.Get("/perfil", protegido, h.ObtenerPerfil)
	app.Get("/paciente/:documento_id", protegido, h.ObtenerPaciente)
	app.Put("/paciente/:documento_id", protegido, h.ActualizarPaciente)
	app.Get("/exportar_pdf/:documento_id", protegido, h.ExportarPDF)

	app.Post("/admission", protegido, middleware.RequireRol(models.RolAdmisionista), h.CrearAdmision)
	app.Get("/login_logs", protegido, middleware.RequireRol(models.RolAdmisionista), h.ObtenerLoginLogs)
	app.Post("/users", protegido, middleware.RequireRol(models.RolAdmisionista), h.CrearUsuario)

	mfa := app.Group("/mfa", protegido)
	mfa.Post("/setup", h.SetupMFA)
	mfa.Post("/verify", h.VerifyMFA)
	mfa.Post("/disable", h.DisableMFA)
}
