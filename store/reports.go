package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *PostgresStore) ListSales(limit int) ([]SaleRow, error) {
	rows, err := s.DB.Query(`
		SELECT s.id, s.sale_date, s.total, c.name, c.phone, s.created_at
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		ORDER BY s.sale_date DESC, s.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SaleRow{}
	for rows.Next() {
		var r SaleRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Total, &r.CustomerName, &r.CustomerPhone, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetSale(id int64) (SaleRow, error) {
	var r SaleRow
	err := s.DB.QueryRow(`
		SELECT s.id, s.sale_date, s.total, c.name, c.phone, s.created_at
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1
	`, id).Scan(&r.ID, &r.Date, &r.Total, &r.CustomerName, &r.CustomerPhone, &r.CreatedAt)
	return r, err
}

func (s *PostgresStore) GetSaleItems(saleID int64) ([]SaleItemRow, error) {
	rows, err := s.DB.Query(`
		SELECT si.id, p.name, p.price, si.quantity, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id
	`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SaleItemRow{}
	for rows.Next() {
		var it SaleItemRow
		if err := rows.Scan(&it.ID, &it.ProductName, &it.Price, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// SalesSummary aggregates the last 30 days of sales.
func (s *PostgresStore) SalesSummary() (SummaryRow, error) {
	var r SummaryRow
	err := s.DB.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(total), 0),
		       COALESCE(AVG(total), 0),
		       COALESCE(MAX(total), 0),
		       COALESCE(MIN(total), 0)
		FROM sales
		WHERE sale_date >= CURRENT_DATE - 30
	`).Scan(&r.Transactions, &r.Revenue, &r.Average, &r.Max, &r.Min)
	return r, err
}

func (s *PostgresStore) TodayStats() (float64, int, error) {
	var income float64
	var count int
	err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE sale_date = CURRENT_DATE
	`).Scan(&income, &count)
	return income, count, err
}

func (s *PostgresStore) RecentSales(limit int) ([]RecentSaleRow, error) {
	rows, err := s.DB.Query(`
		SELECT s.id, s.sale_date, s.total, COALESCE(c.name, 'Umum')
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		ORDER BY s.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RecentSaleRow{}
	for rows.Next() {
		var r RecentSaleRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Total, &r.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SalesTotalForDate(date time.Time) (float64, error) {
	var total float64
	err := s.DB.QueryRow(
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE sale_date = $1`,
		date.Format("2006-01-02"),
	).Scan(&total)
	return total, err
}

// ListHistory returns one page of the transaction history between start and
// end (inclusive), optionally filtered by customer name or sale id, plus the
// total row count for pagination.
func (s *PostgresStore) ListHistory(start, end time.Time, search string, page, limit int) ([]HistoryRow, int, error) {
	where := `WHERE s.sale_date BETWEEN $1 AND $2`
	args := []interface{}{start.Format("2006-01-02"), end.Format("2006-01-02")}
	if search != "" {
		where += fmt.Sprintf(` AND (c.name ILIKE $%d OR CAST(s.id AS TEXT) LIKE $%d)`, len(args)+1, len(args)+1)
		args = append(args, "%"+search+"%")
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.sale_date, s.total, c.name, COUNT(si.id)
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN sale_items si ON si.sale_id = s.id
		%s
		GROUP BY s.id, c.name
		ORDER BY s.sale_date DESC, s.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	offset := (page - 1) * limit
	rows, err := s.DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []HistoryRow{}
	for rows.Next() {
		var r HistoryRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Total, &r.CustomerName, &r.ItemCount); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := strings.Join([]string{`
		SELECT COUNT(DISTINCT s.id)
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
	`, where}, "")
	var total int
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
