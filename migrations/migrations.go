package migrations

import "database/sql"

// AutoMigrateTodos creates the todos table if it does not exist yet.
func AutoMigrateTodos(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS todos (
		task_id INT AUTO_INCREMENT PRIMARY KEY,
		task_name VARCHAR(100) NOT NULL,
		task_description VARCHAR(100),
		complete_status BOOLEAN NOT NULL DEFAULT FALSE
	)`

	_, err := db.Exec(query)
	return err
}
