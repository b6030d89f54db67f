package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"kasir-backend/service"
)

// Handler is the HTTP layer that talks to service.ServiceInterface.
type Handler struct {
	svc service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{svc: s}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.Login).Methods("POST")

	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/{id:[0-9]+}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products/{id:[0-9]+}", h.UpdateProduct).Methods("PUT")

	r.HandleFunc("/customers", h.ListCustomers).Methods("GET")
	r.HandleFunc("/customers", h.CreateCustomer).Methods("POST")
	r.HandleFunc("/customers/{id:[0-9]+}", h.GetCustomer).Methods("GET")
	r.HandleFunc("/customers/{id:[0-9]+}", h.UpdateCustomer).Methods("PUT")
	r.HandleFunc("/customers/{id:[0-9]+}", h.DeleteCustomer).Methods("DELETE")

	r.HandleFunc("/checkout", h.Checkout).Methods("POST")

	r.HandleFunc("/sales", h.ListSales).Methods("GET")
	r.HandleFunc("/sales/summary", h.SalesSummary).Methods("GET")
	r.HandleFunc("/sales/{id:[0-9]+}", h.SaleDetail).Methods("GET")

	r.HandleFunc("/history", h.History).Methods("GET")
	r.HandleFunc("/history/{id:[0-9]+}", h.SaleDetail).Methods("GET")

	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "Not found")
	})
}

// --- request / response shapes ---

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createProductReq struct {
	Name  string   `json:"NamaProduk"`
	Price *float64 `json:"Harga"`
	Stock *int     `json:"Stok"`
}

type updateProductReq struct {
	Price *float64 `json:"Harga"`
	Stock *int     `json:"Stok"`
}

type customerReq struct {
	Name    string `json:"NamaPelanggan"`
	Address string `json:"Alamat"`
	Phone   string `json:"NomorTelepon"`
}

type checkoutReq struct {
	Items      []service.CartItem `json:"items"`
	Total      float64            `json:"total"`
	CustomerID *int64             `json:"pelangganId"`
}

type checkoutResp struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	SaleID      int64   `json:"penjualanId"`
	TotalItems  int     `json:"totalItems"`
	TotalAmount float64 `json:"totalAmount"`
}

type dashboardResp struct {
	Success            bool                    `json:"success"`
	TodayIncome        float64                 `json:"today_income"`
	TodayCount         int                     `json:"today_count"`
	RecentTransactions []service.RecentSaleDTO `json:"recent_transactions"`
	SalesChart         []service.ChartPointDTO `json:"sales_chart"`
}

type historyResp struct {
	Success bool                    `json:"success"`
	Data    []service.HistoryRowDTO `json:"data"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]interface{}{"success": false, "message": msg})
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": msg})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// --- auth ---

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Username dan password harus diisi")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Username dan password harus diisi")
		return
	}

	user, err := h.svc.Login(req.Username, req.Password)
	if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
		writeFail(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login berhasil",
		"user":    user,
	})
}

// --- products ---

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ListProducts()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(pathID(r))
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Price == nil || req.Stock == nil {
		writeFail(w, http.StatusBadRequest, "Missing required fields (NamaProduk, Harga, Stok)")
		return
	}

	id, err := h.svc.CreateProduct(req.Name, *req.Price, *req.Stock)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product added successfully",
		"id":      id,
	})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Price == nil || req.Stock == nil {
		writeFail(w, http.StatusBadRequest, "Product ID, Stock, and Price are required")
		return
	}

	err := h.svc.UpdateProduct(pathID(r), *req.Price, *req.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeOK(w, "Product updated successfully")
}

// --- customers ---

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListCustomers()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCustomer(pathID(r))
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "Customer name is required")
		return
	}

	id, err := h.svc.CreateCustomer(req.Name, req.Address, req.Phone)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Customer added successfully",
		"id":      id,
	})
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "Customer ID and name are required")
		return
	}

	err := h.svc.UpdateCustomer(pathID(r), req.Name, req.Address, req.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeOK(w, "Customer updated successfully")
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteCustomer(pathID(r))
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeOK(w, "Customer deleted successfully")
}

// --- checkout ---

// Checkout handles POST /checkout.
// body: { "items": [{"ProdukID":1,"quantity":2,"subtotal":20.0}], "total": 20.0, "pelangganId": 3 }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid data: items and total are required")
		return
	}

	res, err := h.svc.Checkout(service.Cart{
		Items:      req.Items,
		Total:      req.Total,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		// Validation, not-found, insufficient-stock, and store failures all
		// surface as the same 400 failure shape; only the message differs.
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, checkoutResp{
		Success:     true,
		Message:     "Transaction completed successfully",
		SaleID:      res.SaleID,
		TotalItems:  res.ItemCount,
		TotalAmount: res.Total,
	})
}

// --- sales / reports ---

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *Handler) SaleDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.SaleDetail(pathID(r))
	if errors.Is(err, sql.ErrNoRows) {
		writeFail(w, http.StatusNotFound, "Sale not found")
		return
	}
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.SalesSummary()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard()
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dashboardResp{
		Success:            true,
		TodayIncome:        d.TodayIncome,
		TodayCount:         d.TodayCount,
		RecentTransactions: d.Recent,
		SalesChart:         d.Chart,
	})
}

// History handles GET /history?start_date=&end_date=&search=&page=&limit=.
// start_date defaults to the first of the current month, end_date to today.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := time.Now()

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if v := q.Get("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "Invalid start_date")
			return
		}
		start = parsed
	}
	end := now
	if v := q.Get("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "Invalid end_date")
			return
		}
		end = parsed
	}

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := 20
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}

	res, err := h.svc.History(start, end, q.Get("search"), page, limit)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, historyResp{
		Success: true,
		Data:    res.Rows,
		Total:   res.Total,
		Page:    page,
		Limit:   limit,
	})
}
