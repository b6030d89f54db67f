package service

import "time"

type ServiceInterface interface {
	Login(username, password string) (UserDTO, error)

	ListProducts() ([]ProductDTO, error)
	GetProduct(id int64) (ProductDTO, error)
	CreateProduct(name string, price float64, stock int) (int64, error)
	UpdateProduct(id int64, price float64, stock int) error

	ListCustomers() ([]CustomerDTO, error)
	GetCustomer(id int64) (CustomerDTO, error)
	CreateCustomer(name, address, phone string) (int64, error)
	UpdateCustomer(id int64, name, address, phone string) error
	DeleteCustomer(id int64) error

	Checkout(cart Cart) (CheckoutResult, error)

	ListSales() ([]SaleDTO, error)
	SaleDetail(id int64) (SaleDetailDTO, error)
	SalesSummary() (SummaryDTO, error)
	Dashboard() (DashboardDTO, error)
	History(start, end time.Time, search string, page, limit int) (HistoryPage, error)
}
