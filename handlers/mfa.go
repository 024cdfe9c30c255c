package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/models"
)

// SetupMFA genera un secreto TOTP y códigos de respaldo para la cuenta
// autenticada. El secreto queda pendiente hasta que VerifyMFA confirme un
// código válido. POST /mfa/setup
func (h *Handler) SetupMFA(c *fiber.Ctx) error {
	u, err := h.Usuarios.PorUsername(c.Context(), usernameActual(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}

	// Se exige la contraseña de nuevo antes de tocar la configuración MFA
	if !auth.VerificarPassword(u.HashedPassword, c.FormValue("password")) {
		return c.Status(401).JSON(fiber.Map{"error": "Credenciales inválidas"})
	}

	clave, err := auth.GenerarClaveMFA(u.Username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al generar el secreto"})
	}
	codigos := auth.GenerarCodigosRespaldo(8)

	// mfa_enabled queda en false hasta verificar
	if err := h.Usuarios.ActualizarMFA(c.Context(), u.Username, clave.Secret(), strings.Join(codigos, ","), false); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al guardar el secreto"})
	}

	return c.JSON(models.MFASetupResponse{
		Secret:      clave.Secret(),
		QRCodeURL:   clave.URL(),
		BackupCodes: codigos,
	})
}

// VerifyMFA confirma un código TOTP contra el secreto pendiente y habilita
// MFA para la cuenta. POST /mfa/verify
func (h *Handler) VerifyMFA(c *fiber.Ctx) error {
	u, err := h.Usuarios.PorUsername(c.Context(), usernameActual(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}
	if u.MFASecret == "" {
		return c.Status(400).JSON(fiber.Map{"error": "MFA no está configurado"})
	}

	if !totp.Validate(c.FormValue("code"), u.MFASecret) {
		return c.Status(400).JSON(fiber.Map{"error": "Código inválido"})
	}

	if err := h.Usuarios.ActualizarMFA(c.Context(), u.Username, u.MFASecret, u.BackupCodes, true); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al habilitar MFA"})
	}
	return c.JSON(fiber.Map{"message": "MFA habilitado"})
}

// DisableMFA apaga MFA y descarta secreto y códigos de respaldo.
// POST /mfa/disable
func (h *Handler) DisableMFA(c *fiber.Ctx) error {
	u, err := h.Usuarios.PorUsername(c.Context(), usernameActual(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}
	if !auth.VerificarPassword(u.HashedPassword, c.FormValue("password")) {
		return c.Status(401).JSON(fiber.Map{"error": "Credenciales inválidas"})
	}

	if err := h.Usuarios.ActualizarMFA(c.Context(), u.Username, "", "", false); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al deshabilitar MFA"})
	}
	return c.JSON(fiber.Map{"message": "MFA deshabilitado"})
}
