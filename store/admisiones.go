package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica-hce/historia-backend/models"
)

// AdmisionesPG implementa AdmisionStore sobre PostgreSQL
type AdmisionesPG struct {
	pool *pgxpool.Pool
}

func NewAdmisionesPG(pool *pgxpool.Pool) *AdmisionesPG {
	return &AdmisionesPG{pool: pool}
}

func (s *AdmisionesPG) Crear(ctx context.Context, a *models.Admision) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO admisiones (documento_id, fecha_ingreso, motivo, admisionista_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		a.DocumentoID, a.FechaIngreso, a.Motivo, a.AdmisionistaID).Scan(&id)
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

func (s *AdmisionesPG) PorDocumento(ctx context.Context, documentoID string) ([]models.Admision, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, documento_id, fecha_ingreso, motivo, admisionista_id
		 FROM admisiones WHERE documento_id = $1 ORDER BY id`, documentoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admisiones []models.Admision
	for rows.Next() {
		var a models.Admision
		if err := rows.Scan(&a.ID, &a.DocumentoID, &a.FechaIngreso, &a.Motivo, &a.AdmisionistaID); err != nil {
			return nil, err
		}
		admisiones = append(admisiones, a)
	}
	return admisiones, rows.Err()
}
