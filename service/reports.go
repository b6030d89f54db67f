package service

import "time"

const dateLayout = "2006-01-02"

func (s *Service) ListSales() ([]SaleDTO, error) {
	rows, err := s.store.ListSales(50)
	if err != nil {
		return nil, err
	}
	out := make([]SaleDTO, 0, len(rows))
	for _, r := range rows {
		d := SaleDTO{
			ID:           r.ID,
			Date:         r.Date.Format(dateLayout),
			Total:        r.Total,
			CustomerName: "Pelanggan Umum",
			CreatedAt:    r.CreatedAt.Format(time.DateTime),
		}
		if r.CustomerName.Valid {
			d.CustomerName = r.CustomerName.String
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) SaleDetail(id int64) (SaleDetailDTO, error) {
	sale, err := s.store.GetSale(id)
	if err != nil {
		return SaleDetailDTO{}, err
	}
	items, err := s.store.GetSaleItems(id)
	if err != nil {
		return SaleDetailDTO{}, err
	}

	header := SaleHeaderDTO{
		ID:            sale.ID,
		Date:          sale.Date.Format(dateLayout),
		Total:         sale.Total,
		CustomerName:  "Pelanggan Umum",
		CustomerPhone: "-",
	}
	if sale.CustomerName.Valid {
		header.CustomerName = sale.CustomerName.String
	}
	if sale.CustomerPhone.Valid {
		header.CustomerPhone = sale.CustomerPhone.String
	}

	dto := SaleDetailDTO{Sale: header, Items: make([]SaleItemDTO, 0, len(items))}
	for _, it := range items {
		dto.Items = append(dto.Items, SaleItemDTO{
			ID:          it.ID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}
	return dto, nil
}

func (s *Service) SalesSummary() (SummaryDTO, error) {
	r, err := s.store.SalesSummary()
	if err != nil {
		return SummaryDTO{}, err
	}
	return SummaryDTO{
		Transactions: r.Transactions,
		Revenue:      r.Revenue,
		Average:      r.Average,
		Max:          r.Max,
		Min:          r.Min,
	}, nil
}

// Dashboard aggregates today's totals, the last 10 transactions, and a
// 7-day sales chart ending today.
func (s *Service) Dashboard() (DashboardDTO, error) {
	income, count, err := s.store.TodayStats()
	if err != nil {
		return DashboardDTO{}, err
	}

	recent, err := s.store.RecentSales(10)
	if err != nil {
		return DashboardDTO{}, err
	}

	dto := DashboardDTO{
		TodayIncome: income,
		TodayCount:  count,
		Recent:      make([]RecentSaleDTO, 0, len(recent)),
		Chart:       make([]ChartPointDTO, 0, 7),
	}
	for _, r := range recent {
		dto.Recent = append(dto.Recent, RecentSaleDTO{
			ID:           r.ID,
			Date:         r.Date.Format(dateLayout),
			Total:        r.Total,
			CustomerName: r.CustomerName,
		})
	}

	for i := 6; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i)
		total, err := s.store.SalesTotalForDate(day)
		if err != nil {
			return DashboardDTO{}, err
		}
		dto.Chart = append(dto.Chart, ChartPointDTO{Date: day.Format(dateLayout), Total: total})
	}
	return dto, nil
}

func (s *Service) History(start, end time.Time, search string, page, limit int) (HistoryPage, error) {
	rows, total, err := s.store.ListHistory(start, end, search, page, limit)
	if err != nil {
		return HistoryPage{}, err
	}
	out := HistoryPage{Rows: make([]HistoryRowDTO, 0, len(rows)), Total: total}
	for _, r := range rows {
		d := HistoryRowDTO{
			ID:        r.ID,
			Date:      r.Date.Format(dateLayout),
			Total:     r.Total,
			ItemCount: r.ItemCount,
		}
		if r.CustomerName.Valid {
			d.CustomerName = r.CustomerName.String
		}
		out.Rows = append(out.Rows, d)
	}
	return out, nil
}

// --- report DTOs ---

type SaleDTO struct {
	ID           int64   `json:"PenjualanID"`
	Date         string  `json:"TanggalPenjualan"`
	Total        float64 `json:"TotalHarga"`
	CustomerName string  `json:"NamaPelanggan"`
	CreatedAt    string  `json:"created_at"`
}

type SaleHeaderDTO struct {
	ID            int64   `json:"PenjualanID"`
	Date          string  `json:"TanggalPenjualan"`
	Total         float64 `json:"TotalHarga"`
	CustomerName  string  `json:"NamaPelanggan"`
	CustomerPhone string  `json:"NomorTelepon"`
}

type SaleItemDTO struct {
	ID          int64   `json:"DetailID"`
	ProductName string  `json:"NamaProduk"`
	Price       float64 `json:"Harga"`
	Quantity    int     `json:"JumlahProduk"`
	Subtotal    float64 `json:"Subtotal"`
}

type SaleDetailDTO struct {
	Sale  SaleHeaderDTO `json:"sale"`
	Items []SaleItemDTO `json:"items"`
}

type SummaryDTO struct {
	Transactions int     `json:"total_transactions"`
	Revenue      float64 `json:"total_revenue"`
	Average      float64 `json:"avg_transaction"`
	Max          float64 `json:"max_transaction"`
	Min          float64 `json:"min_transaction"`
}

type RecentSaleDTO struct {
	ID           int64   `json:"PenjualanID"`
	Date         string  `json:"TanggalPenjualan"`
	Total        float64 `json:"TotalHarga"`
	CustomerName string  `json:"NamaPelanggan"`
}

type ChartPointDTO struct {
	Date  string  `json:"tanggal"`
	Total float64 `json:"total"`
}

type DashboardDTO struct {
	TodayIncome float64
	TodayCount  int
	Recent      []RecentSaleDTO
	Chart       []ChartPointDTO
}

type HistoryRowDTO struct {
	ID           int64   `json:"PenjualanID"`
	Date         string  `json:"TanggalPenjualan"`
	Total        float64 `json:"TotalHarga"`
	CustomerName string  `json:"NamaPelanggan"`
	ItemCount    int     `json:"JumlahItem"`
}

// HistoryPage is wrapped by the handler together with the echoed page and
// limit parameters.
type HistoryPage struct {
	Rows  []HistoryRowDTO
	Total int
}
