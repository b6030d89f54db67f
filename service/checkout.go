package service

import (
	"database/sql"
	"errors"
	"time"
)

// CartItem is one requested line of a checkout. Subtotal is supplied by the
// caller and stored as-is; it is deliberately not recomputed from
// price × quantity (the frontend owns pricing in this design).
type CartItem struct {
	ProductID int64   `json:"ProdukID"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Cart is the transient input of one checkout call.
type Cart struct {
	Items      []CartItem
	Total      float64
	CustomerID *int64
}

type CheckoutResult struct {
	SaleID    int64
	ItemCount int
	Total     float64
}

// Checkout records a multi-item sale atomically: sale header, one line item
// per cart entry, and a stock decrement per entry all persist together or
// not at all. Items are processed in input order; the first failing item
// aborts the whole cart.
func (s *Service) Checkout(cart Cart) (CheckoutResult, error) {
	if len(cart.Items) == 0 || cart.Total == 0 {
		return CheckoutResult{}, validationErr("Invalid data: items and total are required")
	}

	tx, err := s.store.BeginCheckout()
	if err != nil {
		return CheckoutResult{}, persistenceErr("Failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	saleID, err := tx.InsertSale(time.Now(), cart.Total, cart.CustomerID)
	if err != nil {
		return CheckoutResult{}, persistenceErr("Failed to create sale record")
	}

	for _, item := range cart.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.Subtotal == 0 {
			return CheckoutResult{}, validationErr("Invalid item data")
		}

		stock, err := tx.GetStock(item.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return CheckoutResult{}, notFoundErr("Product ID %d not found", item.ProductID)
		}
		if err != nil {
			return CheckoutResult{}, persistenceErr("Failed to read stock for product ID: %d", item.ProductID)
		}
		if stock < item.Quantity {
			return CheckoutResult{}, insufficientStockErr(
				"Insufficient stock for product ID: %d (Available: %d, Requested: %d)",
				item.ProductID, stock, item.Quantity)
		}

		if err := tx.InsertLineItem(saleID, item.ProductID, item.Quantity, item.Subtotal); err != nil {
			return CheckoutResult{}, persistenceErr("Failed to insert sale detail for product ID: %d", item.ProductID)
		}

		n, err := tx.DecrementStock(item.ProductID, item.Quantity)
		if err != nil || n == 0 {
			return CheckoutResult{}, persistenceErr("Failed to update stock for product ID: %d", item.ProductID)
		}
	}

	if err := tx.Commit(); err != nil {
		return CheckoutResult{}, persistenceErr("Failed to commit transaction")
	}
	committed = true

	return CheckoutResult{SaleID: saleID, ItemCount: len(cart.Items), Total: cart.Total}, nil
}
