package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/config"
	"github.com/clinica-hce/historia-backend/models"
)

// Migrar crea las cuatro tablas si no existen. Es idempotente: ejecutarla en
// cada arranque no altera datos ya persistidos.
func Migrar(ctx context.Context, pool *pgxpool.Pool) error {
	var columnasClinicas strings.Builder
	for _, campo := range models.CamposClinicos {
		columnasClinicas.WriteString(fmt.Sprintf(",\n\t\t%s TEXT", campo))
	}

	sentencias := []string{
		`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		hashed_password TEXT NOT NULL,
		role TEXT NOT NULL,
		mfa_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		mfa_secret TEXT NOT NULL DEFAULT '',
		backup_codes TEXT NOT NULL DEFAULT ''
	)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS pacientes (
		id SERIAL PRIMARY KEY,
		documento_id TEXT UNIQUE NOT NULL,
		nombre TEXT NOT NULL,
		apellido TEXT NOT NULL,
		fecha_nacimiento TEXT NOT NULL,
		fecha_creacion TEXT NOT NULL%s
	)`, columnasClinicas.String()),
		`CREATE TABLE IF NOT EXISTS admisiones (
		id SERIAL PRIMARY KEY,
		documento_id TEXT NOT NULL,
		fecha_ingreso TEXT NOT NULL,
		motivo TEXT,
		admisionista_id INTEGER NOT NULL
	)`,
		`CREATE TABLE IF NOT EXISTS login_logs (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		role TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		ip_address TEXT
	)`,
		`CREATE INDEX IF NOT EXISTS idx_admisiones_documento ON admisiones (documento_id)`,
		`CREATE INDEX IF NOT EXISTS idx_login_logs_timestamp ON login_logs (timestamp DESC)`,
	}

	for _, sentencia := range sentencias {
		if _, err := pool.Exec(ctx, sentencia); err != nil {
			return fmt.Errorf("migración: %w", err)
		}
	}
	log.Info().Msg("esquema verificado")
	return nil
}

// Sembrar crea las cuentas de personal por defecto con las credenciales de la
// configuración. Usa ON CONFLICT DO NOTHING: si la cuenta ya existe no se
// toca, incluida su contraseña.
func Sembrar(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	cuentas := []struct {
		username string
		password string
		rol      string
	}{
		{cfg.MedicoUser, cfg.MedicoPassword, models.RolMedico},
		{cfg.AdmisionUser, cfg.AdmisionPassword, models.RolAdmisionista},
	}

	for _, cuenta := range cuentas {
		hash, err := auth.HashPassword(cuenta.password)
		if err != nil {
			return err
		}
		tag, err := pool.Exec(ctx,
			`INSERT INTO users (username, hashed_password, role) VALUES ($1, $2, $3)
			 ON CONFLICT (username) DO NOTHING`,
			cuenta.username, hash, cuenta.rol)
		if err != nil {
			return fmt.Errorf("sembrado de %s: %w", cuenta.username, err)
		}
		if tag.RowsAffected() > 0 {
			log.Info().Str("username", cuenta.username).Str("rol", cuenta.rol).
				Msg("cuenta por defecto creada")
		}
	}
	return nil
}
