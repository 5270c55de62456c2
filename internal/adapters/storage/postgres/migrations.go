package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// migrations del esquema local (solo cuando no hay BACKEND_URL).
var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "0001_patients",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS patients (
					id          TEXT PRIMARY KEY,
					name        TEXT NOT NULL,
					species     TEXT NOT NULL,
					breed       TEXT NOT NULL DEFAULT '',
					sex         TEXT NOT NULL,
					birth_date  DATE NULL,
					owner_name  TEXT NOT NULL,
					owner_phone TEXT NOT NULL DEFAULT '',
					owner_email TEXT NOT NULL DEFAULT '',
					notes       TEXT NOT NULL DEFAULT '',
					created_at  TIMESTAMPTZ NOT NULL,
					updated_at  TIMESTAMPTZ NOT NULL
				)`,
			},
			Down: []string{`DROP TABLE IF EXISTS patients`},
		},
		{
			Id: "0002_appointments",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS appointments (
					id          TEXT PRIMARY KEY,
					subject_id  TEXT NOT NULL REFERENCES patients(id),
					start_at    TIMESTAMPTZ NOT NULL,
					end_at      TIMESTAMPTZ NOT NULL,
					notes       TEXT NOT NULL DEFAULT '',
					kind        TEXT NOT NULL,
					status      TEXT NOT NULL,
					created_at  TIMESTAMPTZ NOT NULL,
					updated_at  TIMESTAMPTZ NOT NULL,
					CHECK (end_at > start_at)
				)`,
				`CREATE INDEX IF NOT EXISTS appointments_subject_start_idx ON appointments (subject_id, start_at)`,
				`CREATE INDEX IF NOT EXISTS appointments_start_idx ON appointments (start_at)`,
			},
			Down: []string{`DROP TABLE IF EXISTS appointments`},
		},
	},
}

// Migrate aplica las migraciones pendientes. Devuelve cuántas corrió.
func Migrate(db *sql.DB) (int, error) {
	return migrate.Exec(db, "postgres", migrations, migrate.Up)
}
