package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/models"
)

type crearAdmisionRequest struct {
	DocumentoID  string  `json:"documento_id" form:"documento_id"`
	FechaIngreso string  `json:"fecha_ingreso" form:"fecha_ingreso"`
	Motivo       *string `json:"motivo" form:"motivo"`
}

// CrearAdmision registra un ingreso para un paciente existente. Las
// admisiones son inmutables una vez creadas. POST /admission
func (h *Handler) CrearAdmision(c *fiber.Ctx) error {
	if !auth.PuedeCrearAdmision(rolActual(c)) {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para esta acción",
		})
	}

	var req crearAdmisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if req.DocumentoID == "" || req.FechaIngreso == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Documento ID y fecha de ingreso son requeridos",
		})
	}

	existe, err := h.Pacientes.Existe(c.Context(), req.DocumentoID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}
	if !existe {
		return c.Status(404).JSON(fiber.Map{"error": "Paciente no encontrado"})
	}

	admisionistaID, err := h.idUsuarioActual(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}

	admision := models.Admision{
		DocumentoID:    req.DocumentoID,
		FechaIngreso:   req.FechaIngreso,
		Motivo:         req.Motivo,
		AdmisionistaID: admisionistaID,
	}
	id, err := h.Admisiones.Crear(c.Context(), &admision)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al crear la admisión"})
	}

	return c.JSON(fiber.Map{"message": "Admisión creada", "id": id})
}

// idUsuarioActual resuelve el id numérico de la identidad del token. El token
// solo lleva username y rol, así que el id se busca en el momento de usarlo.
func (h *Handler) idUsuarioActual(c *fiber.Ctx) (int, error) {
	u, err := h.Usuarios.PorUsername(c.Context(), usernameActual(c))
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
