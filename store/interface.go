package store

import "time"

// Store is the persistence capability consumed by the service layer.
// Single-row lookups return sql.ErrNoRows when nothing matches.
type Store interface {
	// BeginCheckout opens the unit of work for one checkout call. The
	// returned transaction must be finished with Commit or Rollback on
	// every path.
	BeginCheckout() (CheckoutTx, error)

	ListProducts() ([]ProductRow, error)
	GetProduct(id int64) (ProductRow, error)
	CreateProduct(name string, price float64, stock int) (int64, error)
	UpdateProduct(id int64, price float64, stock int) error

	ListCustomers() ([]CustomerRow, error)
	GetCustomer(id int64) (CustomerRow, error)
	CreateCustomer(name, address, phone string) (int64, error)
	UpdateCustomer(id int64, name, address, phone string) error
	DeleteCustomer(id int64) error

	GetUserByUsername(username string) (UserRow, error)

	ListSales(limit int) ([]SaleRow, error)
	GetSale(id int64) (SaleRow, error)
	GetSaleItems(saleID int64) ([]SaleItemRow, error)
	SalesSummary() (SummaryRow, error)
	TodayStats() (income float64, count int, err error)
	RecentSales(limit int) ([]RecentSaleRow, error)
	SalesTotalForDate(date time.Time) (float64, error)
	ListHistory(start, end time.Time, search string, page, limit int) ([]HistoryRow, int, error)

	Close() error
}

// CheckoutTx is the transactional envelope for a single checkout: the sale
// header insert, every line-item insert, and every stock decrement go
// through it and persist only on Commit.
type CheckoutTx interface {
	InsertSale(date time.Time, total float64, customerID *int64) (int64, error)
	GetStock(productID int64) (int, error)
	InsertLineItem(saleID, productID int64, quantity int, subtotal float64) error
	// DecrementStock subtracts quantity from the product's stock and
	// reports how many rows were affected. The update is guarded so it
	// never drives stock below zero; zero rows means the product vanished
	// or a concurrent checkout took the remaining stock.
	DecrementStock(productID int64, quantity int) (int64, error)
	Commit() error
	Rollback() error
}
