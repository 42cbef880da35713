package common

import (
	"errors"
	"fmt"
)

// StoreErrType enumerates the error kinds returned by the ledger stores.
type StoreErrType uint32

const (
	// KeyNotFound is returned when a row does not exist.
	KeyNotFound StoreErrType = iota
	// Corrupt is returned when a stored value cannot be decoded.
	Corrupt
	// Closed is returned when the store was used after Close.
	Closed
)

// StoreErr is the error type of the Store implementations. It records which
// table (dataType) and which key the error refers to.
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr ...
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Error ...
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case Corrupt:
		m = "Corrupt"
	case Closed:
		m = "Closed"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// IsStore checks that an error is, or wraps, a StoreErr and that its code
// matches the provided StoreErr code.
func IsStore(err error, t StoreErrType) bool {
	var storeErr StoreErr
	return errors.As(err, &storeErr) && storeErr.errType == t
}
