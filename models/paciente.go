package models

// CamposClinicos enumera, en orden de presentación, las secciones de texto
// libre de la historia clínica. El orden se usa tanto en las consultas SQL
// como en el PDF exportado.
var CamposClinicos = []string{
	"antecedentes_interes",
	"anamnesis_exploracion",
	"evolucion_clinica",
	"ordenes_medicas",
	"tratamiento_farmacologico",
	"planificacion_cuidados",
	"constantes_datos_basicos",
	"interconsulta",
	"exploraciones_complementarias",
	"consentimientos_informados",
	"informacion_alta",
	"otra_informacion_clinica",
	"informacion_anestesia",
	"informacion_quirurgica",
	"informacion_urgencia",
	"informacion_parto",
	"informacion_anatomia_patologica",
	"datos_sociales",
	"notas_medico",
}

// TitulosCampos mapea cada sección clínica a su título legible
var TitulosCampos = map[string]string{
	"antecedentes_interes":            "Antecedentes de Interés",
	"anamnesis_exploracion":           "Anamnesis y Exploración",
	"evolucion_clinica":               "Evolución Clínica",
	"ordenes_medicas":                 "Órdenes Médicas",
	"tratamiento_farmacologico":       "Tratamiento Farmacológico",
	"planificacion_cuidados":          "Planificación de Cuidados",
	"constantes_datos_basicos":        "Constantes y Datos Básicos",
	"interconsulta":                   "Interconsulta",
	"exploraciones_complementarias":   "Exploraciones Complementarias",
	"consentimientos_informados":      "Consentimientos Informados",
	"informacion_alta":                "Información de Alta",
	"otra_informacion_clinica":        "Otra Información Clínica",
	"informacion_anestesia":           "Información de Anestesia",
	"informacion_quirurgica":          "Información Quirúrgica",
	"informacion_urgencia":            "Información de Urgencia",
	"informacion_parto":               "Información del Parto",
	"informacion_anatomia_patologica": "Información de Anatomía Patológica",
	"datos_sociales":                  "Datos Sociales",
	"notas_medico":                    "Notas del Médico",
}

// EsCampoClinico indica si nombre es una sección clínica conocida
func EsCampoClinico(nombre string) bool {
	_, ok := TitulosCampos[nombre]
	return ok
}

// Paciente representa la tabla pacientes. Las secciones clínicas son
// opcionales; un puntero nil significa que la sección nunca fue escrita.
type Paciente struct {
	ID              int    `json:"id"`
	DocumentoID     string `json:"documento_id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	FechaCreacion   string `json:"fecha_creacion"`
	// Secciones clínicas indexadas por nombre de columna
	Secciones map[string]*string `json:"-"`
}

// Seccion devuelve el texto de una sección o "" si está vacía
func (p *Paciente) Seccion(nombre string) string {
	if v, ok := p.Secciones[nombre]; ok && v != nil {
		return *v
	}
	return ""
}
