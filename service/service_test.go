package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"kasir-backend/store"
)

// ---- fakeStore implementing store.Store for tests ----

type fakeStore struct {
	BeginCheckoutFn     func() (store.CheckoutTx, error)
	ListProductsFn      func() ([]store.ProductRow, error)
	GetProductFn        func(id int64) (store.ProductRow, error)
	CreateProductFn     func(name string, price float64, stock int) (int64, error)
	UpdateProductFn     func(id int64, price float64, stock int) error
	ListCustomersFn     func() ([]store.CustomerRow, error)
	GetCustomerFn       func(id int64) (store.CustomerRow, error)
	CreateCustomerFn    func(name, address, phone string) (int64, error)
	UpdateCustomerFn    func(id int64, name, address, phone string) error
	DeleteCustomerFn    func(id int64) error
	GetUserByUsernameFn func(username string) (store.UserRow, error)
	ListSalesFn         func(limit int) ([]store.SaleRow, error)
	GetSaleFn           func(id int64) (store.SaleRow, error)
	GetSaleItemsFn      func(saleID int64) ([]store.SaleItemRow, error)
	SalesSummaryFn      func() (store.SummaryRow, error)
	TodayStatsFn        func() (float64, int, error)
	RecentSalesFn       func(limit int) ([]store.RecentSaleRow, error)
	SalesTotalForDateFn func(date time.Time) (float64, error)
	ListHistoryFn       func(start, end time.Time, search string, page, limit int) ([]store.HistoryRow, int, error)
}

func (f *fakeStore) BeginCheckout() (store.CheckoutTx, error) { return f.BeginCheckoutFn() }
func (f *fakeStore) ListProducts() ([]store.ProductRow, error) {
	return f.ListProductsFn()
}
func (f *fakeStore) GetProduct(id int64) (store.ProductRow, error) { return f.GetProductFn(id) }
func (f *fakeStore) CreateProduct(name string, price float64, stock int) (int64, error) {
	return f.CreateProductFn(name, price, stock)
}
func (f *fakeStore) UpdateProduct(id int64, price float64, stock int) error {
	return f.UpdateProductFn(id, price, stock)
}
func (f *fakeStore) ListCustomers() ([]store.CustomerRow, error)     { return f.ListCustomersFn() }
func (f *fakeStore) GetCustomer(id int64) (store.CustomerRow, error) { return f.GetCustomerFn(id) }
func (f *fakeStore) CreateCustomer(name, address, phone string) (int64, error) {
	return f.CreateCustomerFn(name, address, phone)
}
func (f *fakeStore) UpdateCustomer(id int64, name, address, phone string) error {
	return f.UpdateCustomerFn(id, name, address, phone)
}
func (f *fakeStore) DeleteCustomer(id int64) error { return f.DeleteCustomerFn(id) }
func (f *fakeStore) GetUserByUsername(username string) (store.UserRow, error) {
	return f.GetUserByUsernameFn(username)
}
func (f *fakeStore) ListSales(limit int) ([]store.SaleRow, error) { return f.ListSalesFn(limit) }
func (f *fakeStore) GetSale(id int64) (store.SaleRow, error)      { return f.GetSaleFn(id) }
func (f *fakeStore) GetSaleItems(saleID int64) ([]store.SaleItemRow, error) {
	return f.GetSaleItemsFn(saleID)
}
func (f *fakeStore) SalesSummary() (store.SummaryRow, error) { return f.SalesSummaryFn() }
func (f *fakeStore) TodayStats() (float64, int, error)       { return f.TodayStatsFn() }
func (f *fakeStore) RecentSales(limit int) ([]store.RecentSaleRow, error) {
	return f.RecentSalesFn(limit)
}
func (f *fakeStore) SalesTotalForDate(date time.Time) (float64, error) {
	return f.SalesTotalForDateFn(date)
}
func (f *fakeStore) ListHistory(start, end time.Time, search string, page, limit int) ([]store.HistoryRow, int, error) {
	return f.ListHistoryFn(start, end, search, page, limit)
}
func (f *fakeStore) Close() error { return nil }

// ---- Tests ----

func TestLogin(t *testing.T) {
	fs := &fakeStore{
		GetUserByUsernameFn: func(username string) (store.UserRow, error) {
			if username != "admin" {
				return store.UserRow{}, sql.ErrNoRows
			}
			return store.UserRow{ID: 1, Username: "admin", PasswordHash: "rahasia", FullName: "Admin Toko", Role: "admin"}, nil
		},
	}
	svc := NewService(fs)

	if _, err := svc.Login("", "x"); err == nil {
		t.Fatalf("expected error for missing username")
	}
	if _, err := svc.Login("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	u, err := svc.Login("admin", "rahasia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1 || u.Username != "admin" || u.FullName != "Admin Toko" || u.Role != "admin" {
		t.Fatalf("unexpected user dto: %+v", u)
	}
}

func TestCreateProductValidationAndForwarding(t *testing.T) {
	svc := NewService(&fakeStore{
		CreateProductFn: func(name string, price float64, stock int) (int64, error) {
			return 123, nil
		},
	})

	if _, err := svc.CreateProduct("", 10, 5); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := svc.CreateProduct("Kopi", -1, 5); err == nil {
		t.Fatalf("expected error for negative price")
	}
	if _, err := svc.CreateProduct("Kopi", 10, -1); err == nil {
		t.Fatalf("expected error for negative stock")
	}

	id, err := svc.CreateProduct("Kopi", 12.5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 123 {
		t.Fatalf("expected id 123, got %d", id)
	}
}

func TestListProductsMapping(t *testing.T) {
	svc := NewService(&fakeStore{
		ListProductsFn: func() ([]store.ProductRow, error) {
			return []store.ProductRow{
				{ID: 1, Name: "Gula", Price: 12000, Stock: 40},
				{ID: 2, Name: "Kopi", Price: 25000, Stock: 15},
			}, nil
		},
	})

	out, err := svc.ListProducts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}
	if out[0].ID != 1 || out[0].Name != "Gula" || out[0].Price != 12000 || out[0].Stock != 40 {
		t.Fatalf("unexpected mapping: %+v", out[0])
	}
}

func TestCustomerMappingHandlesNulls(t *testing.T) {
	svc := NewService(&fakeStore{
		GetCustomerFn: func(id int64) (store.CustomerRow, error) {
			return store.CustomerRow{
				ID:      7,
				Name:    "Budi",
				Address: sql.NullString{String: "Jl. Melati 5", Valid: true},
				Phone:   sql.NullString{Valid: false},
			}, nil
		},
	})

	c, err := svc.GetCustomer(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Address != "Jl. Melati 5" {
		t.Fatalf("expected address mapped, got %q", c.Address)
	}
	if c.Phone != "" {
		t.Fatalf("expected empty phone for null column, got %q", c.Phone)
	}
}

func TestUpdateCustomerValidation(t *testing.T) {
	called := false
	svc := NewService(&fakeStore{
		UpdateCustomerFn: func(id int64, name, address, phone string) error {
			called = true
			return nil
		},
	})

	if err := svc.UpdateCustomer(1, "", "", ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := svc.UpdateCustomer(1, "Budi", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected store.UpdateCustomer to be called")
	}
}

func TestListSalesMapping(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 29, 14, 3, 7, 0, time.UTC)
	svc := NewService(&fakeStore{
		ListSalesFn: func(limit int) ([]store.SaleRow, error) {
			if limit != 50 {
				t.Fatalf("expected limit 50, got %d", limit)
			}
			return []store.SaleRow{
				{ID: 9, Date: day, Total: 42000, CustomerName: sql.NullString{String: "Budi", Valid: true}, CreatedAt: created},
				{ID: 8, Date: day, Total: 15000, CreatedAt: created},
			}, nil
		},
	})

	out, err := svc.ListSales()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Date != "2026-08-29" || out[0].CustomerName != "Budi" {
		t.Fatalf("unexpected first row: %+v", out[0])
	}
	if out[1].CustomerName != "Pelanggan Umum" {
		t.Fatalf("expected fallback customer name, got %q", out[1].CustomerName)
	}
}

func TestSaleDetailMapping(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	svc := NewService(&fakeStore{
		GetSaleFn: func(id int64) (store.SaleRow, error) {
			return store.SaleRow{ID: id, Date: day, Total: 42000}, nil
		},
		GetSaleItemsFn: func(saleID int64) ([]store.SaleItemRow, error) {
			return []store.SaleItemRow{
				{ID: 1, ProductName: "Kopi", Price: 25000, Quantity: 1, Subtotal: 25000},
				{ID: 2, ProductName: "Gula", Price: 12000, Quantity: 1, Subtotal: 17000},
			}, nil
		},
	})

	d, err := svc.SaleDetail(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sale.CustomerName != "Pelanggan Umum" || d.Sale.CustomerPhone != "-" {
		t.Fatalf("expected anonymous-customer fallbacks, got %+v", d.Sale)
	}
	if len(d.Items) != 2 || d.Items[0].ProductName != "Kopi" {
		t.Fatalf("unexpected items: %+v", d.Items)
	}
}

func TestSaleDetailNotFoundPropagates(t *testing.T) {
	svc := NewService(&fakeStore{
		GetSaleFn: func(id int64) (store.SaleRow, error) {
			return store.SaleRow{}, sql.ErrNoRows
		},
	})
	if _, err := svc.SaleDetail(404); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDashboardAggregation(t *testing.T) {
	var chartDates []string
	svc := NewService(&fakeStore{
		TodayStatsFn: func() (float64, int, error) { return 150000, 3, nil },
		RecentSalesFn: func(limit int) ([]store.RecentSaleRow, error) {
			if limit != 10 {
				t.Fatalf("expected limit 10, got %d", limit)
			}
			return []store.RecentSaleRow{
				{ID: 12, Date: time.Now(), Total: 50000, CustomerName: "Umum"},
			}, nil
		},
		SalesTotalForDateFn: func(date time.Time) (float64, error) {
			chartDates = append(chartDates, date.Format("2006-01-02"))
			return 10000, nil
		},
	})

	d, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TodayIncome != 150000 || d.TodayCount != 3 {
		t.Fatalf("unexpected today stats: %+v", d)
	}
	if len(d.Chart) != 7 {
		t.Fatalf("expected 7 chart points, got %d", len(d.Chart))
	}
	if chartDates[6] != time.Now().Format("2006-01-02") {
		t.Fatalf("expected chart to end today, got %v", chartDates)
	}
	if d.Chart[0].Total != 10000 {
		t.Fatalf("unexpected chart total: %+v", d.Chart[0])
	}
}

func TestHistoryMapping(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	svc := NewService(&fakeStore{
		ListHistoryFn: func(start, end time.Time, search string, page, limit int) ([]store.HistoryRow, int, error) {
			if search != "budi" || page != 2 || limit != 20 {
				t.Fatalf("unexpected filter args: %q %d %d", search, page, limit)
			}
			return []store.HistoryRow{
				{ID: 31, Date: day, Total: 60000, CustomerName: sql.NullString{String: "Budi", Valid: true}, ItemCount: 4},
				{ID: 30, Date: day, Total: 12000, ItemCount: 1},
			}, 41, nil
		},
	})

	out, err := svc.History(day.AddDate(0, 0, -14), day, "budi", 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 41 || len(out.Rows) != 2 {
		t.Fatalf("unexpected page: total=%d rows=%d", out.Total, len(out.Rows))
	}
	if out.Rows[0].ItemCount != 4 || out.Rows[1].CustomerName != "" {
		t.Fatalf("unexpected rows: %+v", out.Rows)
	}
}

func TestListProductsStoreError(t *testing.T) {
	svc := NewService(&fakeStore{
		ListProductsFn: func() ([]store.ProductRow, error) { return nil, errors.New("db down") },
	})
	if _, err := svc.ListProducts(); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
