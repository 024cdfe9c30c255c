package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/pdf"
	"github.com/clinica-hce/historia-backend/store"
)

// ExportarPDF descarga la historia clínica formateada como PDF.
// GET /exportar_pdf/:documento_id
func (h *Handler) ExportarPDF(c *fiber.Ctx) error {
	documentoID := c.Params("documento_id")

	if !auth.PuedeExportarHistoria(rolActual(c), usernameActual(c), documentoID) {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para exportar PDF",
		})
	}

	paciente, err := h.Pacientes.PorDocumento(c.Context(), documentoID)
	if errors.Is(err, store.ErrNoEncontrado) {
		return c.Status(404).JSON(fiber.Map{"error": "Paciente no encontrado"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}

	admisiones, err := h.Admisiones.PorDocumento(c.Context(), documentoID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}

	contenido, err := pdf.GenerarHistoria(paciente, admisiones)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al generar el PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=historia_%s.pdf`, documentoID))
	return c.Send(contenido)
}
