package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica-hce/historia-backend/models"
)

// LoginLogsPG implementa LoginLogStore sobre PostgreSQL
type LoginLogsPG struct {
	pool *pgxpool.Pool
}

func NewLoginLogsPG(pool *pgxpool.Pool) *LoginLogsPG {
	return &LoginLogsPG{pool: pool}
}

func (s *LoginLogsPG) Registrar(ctx context.Context, e *models.LoginLog) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO login_logs (username, role, timestamp, ip_address)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Username, e.Rol, e.Timestamp, e.IPAddress).Scan(&e.ID)
}

func (s *LoginLogsPG) Recientes(ctx context.Context, limite int) ([]models.LoginLog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, username, role, timestamp, ip_address
		 FROM login_logs ORDER BY timestamp DESC LIMIT $1`, limite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entradas []models.LoginLog
	for rows.Next() {
		var e models.LoginLog
		if err := rows.Scan(&e.ID, &e.Username, &e.Rol, &e.Timestamp, &e.IPAddress); err != nil {
			return nil, err
		}
		entradas = append(entradas, e)
	}
	return entradas, rows.Err()
}
