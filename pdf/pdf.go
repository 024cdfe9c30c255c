// Package pdf genera la historia clínica en PDF. Es una función pura sobre
// datos ya autorizados: las decisiones de acceso ocurren antes de llegar aquí.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/clinica-hce/historia-backend/models"
)

// GenerarHistoria produce el PDF de la historia clínica completa: cabecera
// del paciente, admisiones y cada sección clínica en orden fijo.
func GenerarHistoria(p *models.Paciente, admisiones []models.Admision) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(15, 13, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, tr("Historia Clínica Electrónica"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	cabecera := []string{
		fmt.Sprintf("Documento: %s", p.DocumentoID),
		fmt.Sprintf("Nombre: %s %s", p.Nombre, p.Apellido),
		fmt.Sprintf("Fecha de Nacimiento: %s", p.FechaNacimiento),
		fmt.Sprintf("Fecha de Creación: %s", p.FechaCreacion),
	}
	for _, linea := range cabecera {
		doc.CellFormat(0, 6, tr(linea), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	escribirSeccion(doc, tr, "Admisiones", textoAdmisiones(admisiones))
	for _, campo := range models.CamposClinicos {
		escribirSeccion(doc, tr, models.TitulosCampos[campo], p.Seccion(campo))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escribirSeccion(doc *fpdf.Fpdf, tr func(string) string, titulo, texto string) {
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 9, tr(titulo), "", 1, "L", false, 0, "")
	if texto == "" {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 6, tr("(Sin información)"), "", 1, "L", false, 0, "")
	} else {
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(texto), "", "L", false)
	}
	doc.Ln(3)
}

func textoAdmisiones(admisiones []models.Admision) string {
	if len(admisiones) == 0 {
		return "(Sin admisiones)"
	}
	var texto string
	for i, a := range admisiones {
		motivo := "Sin motivo"
		if a.Motivo != nil && *a.Motivo != "" {
			motivo = *a.Motivo
		}
		if i > 0 {
			texto += "\n"
		}
		texto += fmt.Sprintf("Fecha: %s, Motivo: %s", a.FechaIngreso, motivo)
	}
	return texto
}
