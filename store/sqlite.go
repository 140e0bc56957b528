package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/stevemurr/market/model"
)

// SqliteBackend stores both collections in a single SQLite database.
//
// Tables:
//
//	clients(id, name, surname, balance)  PRIMARY KEY (id)
//	products(id, name, price, stock)     PRIMARY KEY (id)
//
// A save rewrites the whole table inside one transaction.
type SqliteBackend struct {
	db *sql.DB
}

func NewSqliteBackend(dbPath string) (*SqliteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		surname TEXT NOT NULL,
		balance REAL NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		stock INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteBackend{db: db}, nil
}

func (s *SqliteBackend) Close() error {
	return s.db.Close()
}

func (s *SqliteBackend) LoadClients() (map[uint32]model.Client, error) {
	rows, err := s.db.Query("SELECT id, name, surname, balance FROM clients")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[uint32]model.Client)
	for rows.Next() {
		var (
			id uint32
			c  model.Client
		)
		if err := rows.Scan(&id, &c.Name, &c.Surname, &c.Balance); err != nil {
			return nil, err
		}
		result[id] = c
	}
	return result, rows.Err()
}

func (s *SqliteBackend) LoadProducts() (map[uint32]model.Product, error) {
	rows, err := s.db.Query("SELECT id, name, price, stock FROM products")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[uint32]model.Product)
	for rows.Next() {
		var (
			id uint32
			p  model.Product
		)
		if err := rows.Scan(&id, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		result[id] = p
	}
	return result, rows.Err()
}

func (s *SqliteBackend) SaveClients(clients map[uint32]model.Client) error {
	return s.replace("clients",
		"INSERT INTO clients (id, name, surname, balance) VALUES (?, ?, ?, ?)",
		func(stmt *sql.Stmt) error {
			for id, c := range clients {
				if _, err := stmt.Exec(id, c.Name, c.Surname, c.Balance); err != nil {
					return err
				}
			}
			return nil
		})
}

func (s *SqliteBackend) SaveProducts(products map[uint32]model.Product) error {
	return s.replace("products",
		"INSERT INTO products (id, name, price, stock) VALUES (?, ?, ?, ?)",
		func(stmt *sql.Stmt) error {
			for id, p := range products {
				if _, err := stmt.Exec(id, p.Name, p.Price, p.Stock); err != nil {
					return err
				}
			}
			return nil
		})
}

// replace empties table and refills it through insert within one transaction.
func (s *SqliteBackend) replace(table, insert string, fill func(*sql.Stmt) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return err
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return err
	}
	defer stmt.Close()
	if err := fill(stmt); err != nil {
		return err
	}
	return tx.Commit()
}
