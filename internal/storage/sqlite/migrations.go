package sqlite

import "database/sql"

// schema sets up the database. It runs on startup and is safe to repeat.
// Salaries are TEXT so the decimal string round-trips without float conversion.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    contact TEXT NOT NULL,
    designation TEXT NOT NULL,
    salary TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS salary_adjustments (
    id TEXT PRIMARY KEY,
    designation TEXT NOT NULL,
    mode TEXT NOT NULL,
    magnitude TEXT NOT NULL,
    updated_count INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employees_designation ON employees(designation);
CREATE INDEX IF NOT EXISTS idx_salary_adjustments_created_at ON salary_adjustments(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
