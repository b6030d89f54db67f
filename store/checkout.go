package store

import (
	"database/sql"
	"time"
)

const (
	insertSaleQuery = `INSERT INTO sales (sale_date, total, customer_id) VALUES ($1, $2, $3) RETURNING id`
	getStockQuery   = `SELECT stock FROM products WHERE id = $1`
	insertItemQuery = `INSERT INTO sale_items (sale_id, product_id, quantity, subtotal) VALUES ($1, $2, $3, $4)`
	// Guarded so a concurrent checkout can never drive stock below zero:
	// the loser of the race affects zero rows instead.
	decStockQuery = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
)

// checkoutTx implements CheckoutTx on top of a single *sql.Tx. The per-item
// statements are prepared once at begin and released on Commit and Rollback.
type checkoutTx struct {
	tx         *sql.Tx
	getStock   *sql.Stmt
	insertItem *sql.Stmt
	decStock   *sql.Stmt
}

func (s *PostgresStore) BeginCheckout() (CheckoutTx, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	ct := &checkoutTx{tx: tx}
	if ct.getStock, err = tx.Prepare(getStockQuery); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if ct.insertItem, err = tx.Prepare(insertItemQuery); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if ct.decStock, err = tx.Prepare(decStockQuery); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return ct, nil
}

func (t *checkoutTx) InsertSale(date time.Time, total float64, customerID *int64) (int64, error) {
	var cid sql.NullInt64
	if customerID != nil {
		cid = sql.NullInt64{Int64: *customerID, Valid: true}
	}
	var id int64
	err := t.tx.QueryRow(insertSaleQuery, date, total, cid).Scan(&id)
	return id, err
}

func (t *checkoutTx) GetStock(productID int64) (int, error) {
	var stock int
	if err := t.getStock.QueryRow(productID).Scan(&stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func (t *checkoutTx) InsertLineItem(saleID, productID int64, quantity int, subtotal float64) error {
	_, err := t.insertItem.Exec(saleID, productID, quantity, subtotal)
	return err
}

func (t *checkoutTx) DecrementStock(productID int64, quantity int) (int64, error) {
	res, err := t.decStock.Exec(quantity, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *checkoutTx) closeStmts() {
	if t.getStock != nil {
		_ = t.getStock.Close()
	}
	if t.insertItem != nil {
		_ = t.insertItem.Close()
	}
	if t.decStock != nil {
		_ = t.decStock.Close()
	}
}

func (t *checkoutTx) Commit() error {
	t.closeStmts()
	return t.tx.Commit()
}

func (t *checkoutTx) Rollback() error {
	t.closeStmts()
	return t.tx.Rollback()
}
