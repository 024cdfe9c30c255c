package models

// Admision representa la tabla admisiones. Un paciente puede tener muchas
// admisiones; una vez creadas no se modifican ni se eliminan.
type Admision struct {
	ID             int     `json:"id"`
	DocumentoID    string  `json:"documento_id"`
	FechaIngreso   string  `json:"fecha_ingreso"`
	Motivo         *string `json:"motivo"`
	AdmisionistaID int     `json:"admisionista_id"`
}
