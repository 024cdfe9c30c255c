package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/models"
	"github.com/clinica-hce/historia-backend/store"
)

// CrearUsuario da de alta una identidad y, para el rol paciente, su historia
// clínica en la misma transacción. El username y la contraseña inicial son el
// documento del paciente. POST /users — solo admisionista.
func (h *Handler) CrearUsuario(c *fiber.Ctx) error {
	if !auth.PuedeCrearUsuarios(rolActual(c)) {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para esta acción",
		})
	}

	documentoID := c.FormValue("documento_id")
	nombre := c.FormValue("nombre")
	apellido := c.FormValue("apellido")
	fechaNacimiento := c.FormValue("fecha_nacimiento")
	rol := c.FormValue("role")

	if !esNumerico(documentoID) {
		return c.Status(400).JSON(fiber.Map{"error": "Documento ID debe ser numérico"})
	}
	if nombre == "" || apellido == "" || fechaNacimiento == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Nombre, apellido y fecha de nacimiento son requeridos",
		})
	}
	if !models.RolValido(rol) {
		return c.Status(400).JSON(fiber.Map{"error": "Rol inválido"})
	}

	existe, err := h.Pacientes.Existe(c.Context(), documentoID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error interno del servidor"})
	}
	if existe {
		return c.Status(400).JSON(fiber.Map{
			"error": "No se puede crear el paciente porque ya existe un paciente con este ID",
		})
	}

	// Política deliberada: username y contraseña inicial son el documento
	username := documentoID
	password := documentoID

	hash, err := auth.HashPassword(password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al procesar la contraseña"})
	}

	usuario := models.Usuario{
		Username:       username,
		HashedPassword: hash,
		Rol:            rol,
	}

	var paciente *models.Paciente
	if rol == models.RolPaciente {
		paciente = &models.Paciente{
			DocumentoID:     documentoID,
			Nombre:          nombre,
			Apellido:        apellido,
			FechaNacimiento: fechaNacimiento,
			FechaCreacion:   h.Ahora().Format(time.RFC3339),
			Secciones:       make(map[string]*string),
		}
		for _, campo := range models.CamposClinicos {
			if valor := c.FormValue(campo); valor != "" {
				v := valor
				paciente.Secciones[campo] = &v
			}
		}
	}

	err = h.Usuarios.CrearConPaciente(c.Context(), &usuario, paciente)
	if errors.Is(err, store.ErrUsuarioDuplicado) {
		return c.Status(400).JSON(fiber.Map{"error": "Usuario ya existe"})
	}
	if errors.Is(err, store.ErrPacienteDuplicado) {
		return c.Status(400).JSON(fiber.Map{
			"error": "No se puede crear el paciente porque ya existe un paciente con este ID",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al crear el usuario"})
	}

	mensaje := "Usuario creado exitosamente"
	if rol == models.RolPaciente {
		mensaje = "Paciente creado correctamente"
	}
	return c.JSON(fiber.Map{
		"message":  mensaje,
		"username": username,
		"role":     rol,
		"password": password,
	})
}

func esNumerico(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
