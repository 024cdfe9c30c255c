package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/middleware"
	"github.com/clinica-hce/historia-backend/models"
	"github.com/clinica-hce/historia-backend/store"
)

// LoginMedico autentica personal médico. POST /token/medico
func (h *Handler) LoginMedico(c *fiber.Ctx) error {
	return h.login(c, c.FormValue("username"), models.RolMedico)
}

// LoginPaciente autentica pacientes con su documento. POST /token/paciente
func (h *Handler) LoginPaciente(c *fiber.Ctx) error {
	return h.login(c, c.FormValue("documento_id"), models.RolPaciente)
}

// LoginAdmisionista autentica personal de admisión. POST /token/admisionista
func (h *Handler) LoginAdmisionista(c *fiber.Ctx) error {
	return h.login(c, c.FormValue("username"), models.RolAdmisionista)
}

// login es el camino compartido de los tres endpoints: verifica credenciales,
// exige que el rol coincida con la entrada usada, emite el token y registra
// el acceso. Los intentos fallidos no se registran.
func (h *Handler) login(c *fiber.Ctx, username, rolEsperado string) error {
	password := c.FormValue("password")
	ip := middleware.ClientIP(c)

	u, err := store.VerificarCredenciales(c.Context(), h.Usuarios, username, password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}
	if u == nil || u.Rol != rolEsperado {
		log.Warn().Str("username", username).Str("ip", ip).Str("rol", rolEsperado).
			Msg("intento de login fallido")
		return c.Status(401).JSON(fiber.Map{"error": "Credenciales inválidas"})
	}

	// Las cuentas con MFA habilitado requieren además un código vigente. Un
	// código ausente o incorrecto es indistinguible de credenciales malas.
	if u.MFAEnabled {
		ok, restantes := auth.ValidarCodigoMFA(u.MFASecret, u.BackupCodes, c.FormValue("mfa_code"))
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Credenciales inválidas"})
		}
		if restantes != u.BackupCodes {
			if err := h.Usuarios.ActualizarMFA(c.Context(), u.Username, u.MFASecret, restantes, true); err != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
			}
		}
	}

	token, err := h.Tokens.Emitir(u)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al generar token"})
	}

	entrada := models.LoginLog{
		Username:  username,
		Rol:       u.Rol,
		Timestamp: h.Ahora().Format(time.RFC3339),
		IPAddress: &ip,
	}
	if err := h.LoginLogs.Registrar(c.Context(), &entrada); err != nil {
		log.Error().Err(err).Str("username", username).Msg("no se pudo registrar el login")
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}

	return c.JSON(models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Rol:         u.Rol,
	})
}

// ObtenerPerfil devuelve la identidad del token. GET /perfil
func (h *Handler) ObtenerPerfil(c *fiber.Ctx) error {
	return c.JSON(models.PerfilResponse{
		Username: usernameActual(c),
		Rol:      rolActual(c),
	})
}

// ObtenerLoginLogs lista los accesos más recientes, del más nuevo al más
// viejo. GET /login_logs — solo admisionista (RequireRol en la ruta).
func (h *Handler) ObtenerLoginLogs(c *fiber.Ctx) error {
	limite, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limite < 1 {
		limite = 50
	}

	entradas, err := h.LoginLogs.Recientes(c.Context(), limite)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al obtener logs"})
	}
	if entradas == nil {
		entradas = []models.LoginLog{}
	}
	return c.JSON(entradas)
}
