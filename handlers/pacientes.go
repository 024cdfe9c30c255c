package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/models"
	"github.com/clinica-hce/historia-backend/store"
)

// ObtenerPaciente devuelve la historia clínica completa con sus admisiones.
// GET /paciente/:documento_id
func (h *Handler) ObtenerPaciente(c *fiber.Ctx) error {
	documentoID := c.Params("documento_id")

	if !auth.PuedeLeerHistoria(rolActual(c), usernameActual(c), documentoID) {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para ver esta historia",
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

	resp := fiber.Map{
		"documento_id":     paciente.DocumentoID,
		"nombre":           paciente.Nombre,
		"apellido":         paciente.Apellido,
		"fecha_nacimiento": paciente.FechaNacimiento,
		"fecha_creacion":   paciente.FechaCreacion,
	}
	for _, campo := range models.CamposClinicos {
		resp[campo] = paciente.Secciones[campo]
	}

	listado := make([]fiber.Map, 0, len(admisiones))
	for _, a := range admisiones {
		listado = append(listado, fiber.Map{
			"id":            a.ID,
			"fecha_ingreso": a.FechaIngreso,
			"motivo":        a.Motivo,
		})
	}
	resp["admissions"] = listado

	return c.JSON(resp)
}

// ActualizarPaciente escribe las secciones clínicas permitidas para el rol.
// El médico solo persiste notas_medico: el resto de los valores enviados se
// descarta sin error. PUT /paciente/:documento_id
func (h *Handler) ActualizarPaciente(c *fiber.Ctx) error {
	documentoID := c.Params("documento_id")
	rol := rolActual(c)

	if !auth.PuedeEscribirHistoria(rol) {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para actualizar historias clínicas",
		})
	}

	campos := make(map[string]string)
	for _, campo := range auth.CamposEscritura(rol) {
		campos[campo] = c.FormValue(campo)
	}

	err := h.Pacientes.ActualizarCampos(c.Context(), documentoID, campos)
	if errors.Is(err, store.ErrNoEncontrado) {
		return c.Status(404).JSON(fiber.Map{"error": "Paciente no encontrado"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al actualizar la historia"})
	}

	mensaje := "Historia clínica actualizada"
	if rol == models.RolMedico {
		mensaje = "Notas del médico actualizadas"
	}
	return c.JSON(fiber.Map{"message": mensaje})
}
