package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

// Row structs mirror the DB tables directly; the service layer maps them to
// the wire DTOs the cashier frontend expects.
type ProductRow struct {
	ID        int64
	Name      string
	Price     float64
	Stock     int
	CreatedAt time.Time
}

type CustomerRow struct {
	ID      int64
	Name    string
	Address sql.NullString
	Phone   sql.NullString
}

type UserRow struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Role         string
}

type SaleRow struct {
	ID            int64
	Date          time.Time
	Total         float64
	CustomerName  sql.NullString
	CustomerPhone sql.NullString
	CreatedAt     time.Time
}

type SaleItemRow struct {
	ID          int64
	ProductName string
	Price       float64
	Quantity    int
	Subtotal    float64
}

type SummaryRow struct {
	Transactions int
	Revenue      float64
	Average      float64
	Max          float64
	Min          float64
}

type RecentSaleRow struct {
	ID           int64
	Date         time.Time
	Total        float64
	CustomerName string
}

type HistoryRow struct {
	ID           int64
	Date         time.Time
	Total        float64
	CustomerName sql.NullString
	ItemCount    int
}

// PostgresStore is a Store backed by Postgres.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// RunMigrations applies the embedded SQL migrations. fsys must contain a
// "migrations" directory in golang-migrate naming.
func (s *PostgresStore) RunMigrations(fsys fs.FS) error {
	src, err := iofs.New(fsys, "migrations")
	if err != nil {
		return fmt.Errorf("could not load migration source: %w", err)
	}
	driver, err := postgres.WithInstance(s.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// --- products ---

func (s *PostgresStore) ListProducts() ([]ProductRow, error) {
	rows, err := s.DB.Query(`SELECT id, name, price, stock, created_at FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ProductRow{}
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetProduct(id int64) (ProductRow, error) {
	var p ProductRow
	err := s.DB.QueryRow(
		`SELECT id, name, price, stock, created_at FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt)
	return p, err
}

func (s *PostgresStore) CreateProduct(name string, price float64, stock int) (int64, error) {
	var id int64
	err := s.DB.QueryRow(
		`INSERT INTO products (name, price, stock) VALUES ($1, $2, $3) RETURNING id`,
		name, price, stock,
	).Scan(&id)
	return id, err
}

// UpdateProduct sets price and stock together, matching the cashier
// frontend's edit form.
func (s *PostgresStore) UpdateProduct(id int64, price float64, stock int) error {
	res, err := s.DB.Exec(`UPDATE products SET price = $1, stock = $2 WHERE id = $3`, price, stock, id)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- customers ---

func (s *PostgresStore) ListCustomers() ([]CustomerRow, error) {
	rows, err := s.DB.Query(`SELECT id, name, address, phone FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CustomerRow{}
	for rows.Next() {
		var c CustomerRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCustomer(id int64) (CustomerRow, error) {
	var c CustomerRow
	err := s.DB.QueryRow(
		`SELECT id, name, address, phone FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Phone)
	return c, err
}

func (s *PostgresStore) CreateCustomer(name, address, phone string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(
		`INSERT INTO customers (name, address, phone) VALUES ($1, $2, $3) RETURNING id`,
		name, address, phone,
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) UpdateCustomer(id int64, name, address, phone string) error {
	res, err := s.DB.Exec(
		`UPDATE customers SET name = $1, address = $2, phone = $3 WHERE id = $4`,
		name, address, phone, id,
	)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) DeleteCustomer(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- users ---

func (s *PostgresStore) GetUserByUsername(username string) (UserRow, error) {
	var u UserRow
	err := s.DB.QueryRow(
		`SELECT id, username, password_hash, full_name, role FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role)
	return u, err
}
