package service

import (
	"database/sql"
	"errors"

	"kasir-backend/store"
)

// Login failure sentinels; the handler maps both to 401. Messages match the
// cashier frontend's expectations.
var (
	ErrUserNotFound  = errors.New("Username tidak ditemukan")
	ErrWrongPassword = errors.New("Password salah")
)

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Login checks the credentials against the stored user record. The stored
// password is compared verbatim, preserving the original application's
// behavior (the column holds plain text despite its name).
func (s *Service) Login(username, password string) (UserDTO, error) {
	if username == "" || password == "" {
		return UserDTO{}, errors.New("Username dan password harus diisi")
	}
	u, err := s.store.GetUserByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return UserDTO{}, ErrUserNotFound
	}
	if err != nil {
		return UserDTO{}, err
	}
	if password != u.PasswordHash {
		return UserDTO{}, ErrWrongPassword
	}
	return UserDTO{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}, nil
}

// --- products ---

func (s *Service) ListProducts() ([]ProductDTO, error) {
	rows, err := s.store.ListProducts()
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductDTO{ID: r.ID, Name: r.Name, Price: r.Price, Stock: r.Stock})
	}
	return out, nil
}

func (s *Service) GetProduct(id int64) (ProductDTO, error) {
	r, err := s.store.GetProduct(id)
	if err != nil {
		return ProductDTO{}, err
	}
	return ProductDTO{ID: r.ID, Name: r.Name, Price: r.Price, Stock: r.Stock}, nil
}

func (s *Service) CreateProduct(name string, price float64, stock int) (int64, error) {
	if name == "" {
		return 0, errors.New("name required")
	}
	if price < 0 {
		return 0, errors.New("price must be >= 0")
	}
	if stock < 0 {
		return 0, errors.New("stock cannot be negative")
	}
	return s.store.CreateProduct(name, price, stock)
}

func (s *Service) UpdateProduct(id int64, price float64, stock int) error {
	if price < 0 {
		return errors.New("price must be >= 0")
	}
	if stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return s.store.UpdateProduct(id, price, stock)
}

// --- customers ---

func (s *Service) ListCustomers() ([]CustomerDTO, error) {
	rows, err := s.store.ListCustomers()
	if err != nil {
		return nil, err
	}
	out := make([]CustomerDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, customerDTO(r))
	}
	return out, nil
}

func (s *Service) GetCustomer(id int64) (CustomerDTO, error) {
	r, err := s.store.GetCustomer(id)
	if err != nil {
		return CustomerDTO{}, err
	}
	return customerDTO(r), nil
}

func (s *Service) CreateCustomer(name, address, phone string) (int64, error) {
	if name == "" {
		return 0, errors.New("name required")
	}
	return s.store.CreateCustomer(name, address, phone)
}

func (s *Service) UpdateCustomer(id int64, name, address, phone string) error {
	if name == "" {
		return errors.New("name required")
	}
	return s.store.UpdateCustomer(id, name, address, phone)
}

func (s *Service) DeleteCustomer(id int64) error {
	return s.store.DeleteCustomer(id)
}

func customerDTO(r store.CustomerRow) CustomerDTO {
	c := CustomerDTO{ID: r.ID, Name: r.Name}
	if r.Address.Valid {
		c.Address = r.Address.String
	}
	if r.Phone.Valid {
		c.Phone = r.Phone.String
	}
	return c
}

// --- DTOs (wire field names match the cashier frontend) ---

type ProductDTO struct {
	ID    int64   `json:"ProdukID"`
	Name  string  `json:"NamaProduk"`
	Price float64 `json:"Harga"`
	Stock int     `json:"Stok"`
}

type CustomerDTO struct {
	ID      int64  `json:"PelangganID"`
	Name    string `json:"NamaPelanggan"`
	Address string `json:"Alamat"`
	Phone   string `json:"NomorTelepon"`
}

type UserDTO struct {
	ID       int64  `json:"UserID"`
	Username string `json:"Username"`
	FullName string `json:"NamaLengkap"`
	Role     string `json:"Role"`
}
