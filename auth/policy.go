package auth

import "github.com/clinica-hce/historia-backend/models"

// Decisiones de autorización sobre la historia clínica. Todas las funciones
// niegan por defecto: cada permiso existente está listado explícitamente.

// camposEscritura define qué secciones clínicas puede escribir cada rol. El
// médico solo escribe sus notas; los valores que envíe para las demás
// secciones se descartan en silencio. El admisionista escribe todas.
var camposEscritura = map[string][]string{
	models.RolMedico:       {"notas_medico"},
	models.RolAdmisionista: models.CamposClinicos,
}

// CamposEscritura devuelve la lista de secciones que el rol puede escribir.
// Para roles sin permiso de escritura devuelve nil.
func CamposEscritura(rol string) []string {
	return camposEscritura[rol]
}

// PuedeEscribirHistoria indica si el rol tiene algún permiso de escritura
func PuedeEscribirHistoria(rol string) bool {
	return len(camposEscritura[rol]) > 0
}

// PuedeLeerHistoria decide el acceso de lectura a la historia completa.
// Médicos y admisionistas leen cualquier historia; un paciente solo la suya.
func PuedeLeerHistoria(rol, username, documentoID string) bool {
	switch rol {
	case models.RolMedico, models.RolAdmisionista:
		return true
	case models.RolPaciente:
		return documentoID == username
	}
	return false
}

// PuedeExportarHistoria decide el acceso a la exportación en PDF. Igual que
// la lectura, pero el rol resultados también está permitido.
func PuedeExportarHistoria(rol, username, documentoID string) bool {
	switch rol {
	case models.RolResultados, models.RolMedico, models.RolAdmisionista:
		return true
	case models.RolPaciente:
		return documentoID == username
	}
	return false
}

// PuedeCrearAdmision: solo el admisionista registra ingresos
func PuedeCrearAdmision(rol string) bool {
	return rol == models.RolAdmisionista
}

// PuedeCrearUsuarios: solo el admisionista da de alta identidades y pacientes
func PuedeCrearUsuarios(rol string) bool {
	return rol == models.RolAdmisionista
}

// PuedeVerLoginLogs: solo el admisionista consulta el registro de accesos
func PuedeVerLoginLogs(rol string) bool {
	return rol == models.RolAdmisionista
}
