// Package handlers orquesta autenticación, autorización y acceso a datos
// para cada operación del API.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/store"
)

// Handler agrupa las dependencias de los endpoints. Los stores se reciben
// como interfaces para poder sustituirlos en las pruebas.
type Handler struct {
	Usuarios   store.UsuarioStore
	Pacientes  store.PacienteStore
	Admisiones store.AdmisionStore
	LoginLogs  store.LoginLogStore
	Tokens     *auth.TokenService
	// Ahora permite fijar el reloj en pruebas
	Ahora func() time.Time
}

func New(usuarios store.UsuarioStore, pacientes store.PacienteStore, admisiones store.AdmisionStore, logs store.LoginLogStore, tokens *auth.TokenService) *Handler {
	return &Handler{
		Usuarios:   usuarios,
		Pacientes:  pacientes,
		Admisiones: admisiones,
		LoginLogs:  logs,
		Tokens:     tokens,
		Ahora:      time.Now,
	}
}

// usernameActual y rolActual leen la identidad que dejó el JWTMiddleware
func usernameActual(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}

func rolActual(c *fiber.Ctx) string {
	rol, _ := c.Locals("rol").(string)
	return rol
}
