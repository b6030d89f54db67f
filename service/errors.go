package service

import "fmt"

// ErrorKind discriminates checkout failures. Callers see a uniform failure
// shape on the wire, but the kinds are kept distinct internally.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindInsufficientStock
	KindPersistence
)

// CheckoutError is the tagged error returned by Checkout. The message is
// what the caller receives verbatim.
type CheckoutError struct {
	Kind    ErrorKind
	Message string
}

func (e *CheckoutError) Error() string { return e.Message }

func validationErr(format string, args ...interface{}) *CheckoutError {
	return &CheckoutError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...interface{}) *CheckoutError {
	return &CheckoutError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func insufficientStockErr(format string, args ...interface{}) *CheckoutError {
	return &CheckoutError{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func persistenceErr(format string, args ...interface{}) *CheckoutError {
	return &CheckoutError{Kind: KindPersistence, Message: fmt.Sprintf(format, args...)}
}
