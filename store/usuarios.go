package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica-hce/historia-backend/models"
)

// UsuariosPG implementa UsuarioStore sobre PostgreSQL
type UsuariosPG struct {
	pool *pgxpool.Pool
}

func NewUsuariosPG(pool *pgxpool.Pool) *UsuariosPG {
	return &UsuariosPG{pool: pool}
}

func (s *UsuariosPG) PorUsername(ctx context.Context, username string) (*models.Usuario, error) {
	var u models.Usuario
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, hashed_password, role, mfa_enabled, mfa_secret, backup_codes
		 FROM users WHERE username = $1`, username).Scan(
		&u.ID, &u.Username, &u.HashedPassword, &u.Rol, &u.MFAEnabled, &u.MFASecret, &u.BackupCodes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UsuariosPG) Crear(ctx context.Context, u *models.Usuario) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, hashed_password, role) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.HashedPassword, u.Rol).Scan(&u.ID)
	if esViolacionUnicidad(err) {
		return ErrUsuarioDuplicado
	}
	return err
}

// CrearConPaciente inserta identidad e historia clínica dentro de la misma
// transacción. Si cualquiera de las dos inserciones falla no queda nada
// persistido.
func (s *UsuariosPG) CrearConPaciente(ctx context.Context, u *models.Usuario, p *models.Paciente) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, hashed_password, role) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.HashedPassword, u.Rol).Scan(&u.ID)
	if esViolacionUnicidad(err) {
		return ErrUsuarioDuplicado
	}
	if err != nil {
		return err
	}

	if p != nil {
		err = tx.QueryRow(ctx,
			`INSERT INTO pacientes (documento_id, nombre, apellido, fecha_nacimiento, fecha_creacion)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.DocumentoID, p.Nombre, p.Apellido, p.FechaNacimiento, p.FechaCreacion).Scan(&p.ID)
		if esViolacionUnicidad(err) {
			return ErrPacienteDuplicado
		}
		if err != nil {
			return err
		}
		if len(p.Secciones) > 0 {
			campos := make(map[string]string, len(p.Secciones))
			for nombre, valor := range p.Secciones {
				if valor != nil {
					campos[nombre] = *valor
				}
			}
			if err := actualizarCamposTx(ctx, tx, p.DocumentoID, campos); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (s *UsuariosPG) ActualizarMFA(ctx context.Context, username, secreto, codigosRespaldo string, habilitado bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET mfa_secret = $1, backup_codes = $2, mfa_enabled = $3 WHERE username = $4`,
		secreto, codigosRespaldo, habilitado, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// esViolacionUnicidad detecta el código 23505 (unique_violation) de PostgreSQL
func esViolacionUnicidad(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
