package database

import (
	"log"
)

func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgreSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgreSQL Database.", "Initializing Tables")
	return s.InitTables()
}

func (s *PostgreSQLStore) InitEnums() error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'task_status') THEN
				CREATE TYPE task_status AS ENUM ('TODO', 'IN_PROGRESS', 'DONE');
			END IF;
		END $$;
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *PostgreSQLStore) InitTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id          BIGSERIAL PRIMARY KEY,
			title       VARCHAR(100) NOT NULL CHECK (btrim(title) <> ''),
			description VARCHAR(500),
			status      task_status NOT NULL,
			due_date    DATE
		);
	`
	_, err := s.db.Exec(query)
	return err
}
