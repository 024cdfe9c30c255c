package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica-hce/historia-backend/models"
)

// PacientesPG implementa PacienteStore sobre PostgreSQL
type PacientesPG struct {
	pool *pgxpool.Pool
}

func NewPacientesPG(pool *pgxpool.Pool) *PacientesPG {
	return &PacientesPG{pool: pool}
}

func (s *PacientesPG) PorDocumento(ctx context.Context, documentoID string) (*models.Paciente, error) {
	query := `SELECT id, documento_id, nombre, apellido, fecha_nacimiento, fecha_creacion, ` +
		strings.Join(models.CamposClinicos, ", ") +
		` FROM pacientes WHERE documento_id = $1`

	p := models.Paciente{Secciones: make(map[string]*string, len(models.CamposClinicos))}
	secciones := make([]*string, len(models.CamposClinicos))
	dest := []interface{}{&p.ID, &p.DocumentoID, &p.Nombre, &p.Apellido, &p.FechaNacimiento, &p.FechaCreacion}
	for i := range secciones {
		dest = append(dest, &secciones[i])
	}

	err := s.pool.QueryRow(ctx, query, documentoID).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	for i, nombre := range models.CamposClinicos {
		p.Secciones[nombre] = secciones[i]
	}
	return &p, nil
}

func (s *PacientesPG) Existe(ctx context.Context, documentoID string) (bool, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pacientes WHERE documento_id = $1`, documentoID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PacientesPG) ActualizarCampos(ctx context.Context, documentoID string, campos map[string]string) error {
	return actualizarCamposTx(ctx, s.pool, documentoID, campos)
}

// ejecutor cubre tanto el pool como una transacción abierta
type ejecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// actualizarCamposTx arma el UPDATE solo con las columnas recibidas,
// recorriendo CamposClinicos para que el orden de parámetros sea estable
func actualizarCamposTx(ctx context.Context, ex ejecutor, documentoID string, campos map[string]string) error {
	if len(campos) == 0 {
		return nil
	}
	var sets []string
	var args []interface{}
	i := 1
	for _, nombre := range models.CamposClinicos {
		valor, ok := campos[nombre]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", nombre, i))
		args = append(args, valor)
		i++
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, documentoID)
	query := fmt.Sprintf("UPDATE pacientes SET %s WHERE documento_id = $%d",
		strings.Join(sets, ", "), i)

	tag, err := ex.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEncontrado
	}
	return nil
}
