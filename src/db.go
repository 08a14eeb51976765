package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// memoryDSN keeps the grid in process memory; nothing is written to disk and
// everything is discarded when the database is closed.
const memoryDSN = ":memory:"

// Row holds a stored grid row: its rowid and the cell values.
type Row struct {
	ID    int64
	Cells []int
}

// initializeDB opens the sqlite database and ensures the cells table exists.
func initializeDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	// each connection to :memory: is its own database, so pin the pool to one
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	createRows := `
	CREATE TABLE IF NOT EXISTS rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		data TEXT
	);
	`
	if _, err := db.Exec(createRows); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed ensuring rows table exists: %w", err)
	}
	return db, nil
}

// insertRow stores cells as a JSON array and returns the inserted id.
func insertRow(db *sql.DB, cells []int) (int64, error) {
	js, err := json.Marshal(cells)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec("INSERT INTO rows (data) VALUES (?)", string(js))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// getAllRows returns every row in insertion order.
func getAllRows(db *sql.DB) ([]Row, error) {
	rows, err := db.Query("SELECT id, data FROM rows ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var id int64
		var dataStr string
		if err := rows.Scan(&id, &dataStr); err != nil {
			return nil, err
		}
		var cells []int
		if err := json.Unmarshal([]byte(dataStr), &cells); err != nil {
			return nil, fmt.Errorf("row %d: %w", id, err)
		}
		out = append(out, Row{ID: id, Cells: cells})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadRow(db *sql.DB, id int64) ([]int, error) {
	var dataStr string
	if err := db.QueryRow("SELECT data FROM rows WHERE id = ?", id).Scan(&dataStr); err != nil {
		return nil, err
	}
	var cells []int
	if err := json.Unmarshal([]byte(dataStr), &cells); err != nil {
		return nil, fmt.Errorf("row %d: %w", id, err)
	}
	return cells, nil
}

// getCell reads one cell of a stored row.
func getCell(db *sql.DB, id int64, col int) (int, error) {
	cells, err := loadRow(db, id)
	if err != nil {
		return 0, err
	}
	if col < 0 || col >= len(cells) {
		return 0, fmt.Errorf("row %d: column %d out of range", id, col)
	}
	return cells[col], nil
}

// updateCell loads the row blob, overwrites one cell and writes it back.
// The row width never changes.
func updateCell(db *sql.DB, id int64, col int, value int) error {
	cells, err := loadRow(db, id)
	if err != nil {
		return err
	}
	if col < 0 || col >= len(cells) {
		return fmt.Errorf("row %d: column %d out of range", id, col)
	}
	cells[col] = value
	js, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	_, err = db.Exec("UPDATE rows SET data = ? WHERE id = ?", string(js), id)
	return err
}

// dumpRow is debug helper
func dumpRow(r Row) string {
	b, _ := json.Marshal(r.Cells)
	return fmt.Sprintf("id=%d data=%s", r.ID, string(b))
}
