// server/internal/dispatch/errors.go
package dispatch

import (
	"errors"
	"fmt"
)

// Lỗi validation của phiên quét. Handler ánh xạ chúng sang 4xx.
var (
	ErrEmptySerial          = errors.New("serial number is required")
	ErrAlreadyScanned       = errors.New("serial already scanned in this session")
	ErrSerialNotFound       = errors.New("serial not found in inventory")
	ErrAlreadyDispatched    = errors.New("item already dispatched")
	ErrLineSatisfied        = errors.New("all units for this product already scanned")
	ErrProductNotInOrder    = errors.New("product not in this order")
	ErrNoAvailableStock     = errors.New("no available stock for this product")
	ErrAllCandidatesScanned = errors.New("all available items already scanned")
	ErrSessionIncomplete    = errors.New("not all required items scanned")
	ErrSessionNotFound      = errors.New("dispatch session not found")
	ErrOrderNotFound        = errors.New("sales order not found")
	ErrOrderDispatched      = errors.New("order already dispatched")

	// ErrSerialConflict: một dispatch khác đã lấy item này sau khi nó được
	// quét vào phiên (conditional update không khớp document nào).
	ErrSerialConflict = errors.New("item is no longer in stock")
)

// StepError reports which finalizer step failed and how many ledger items
// had already been committed before it. Committed writes are not rolled back.
type StepError struct {
	Step      string
	Committed int
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("dispatch step %q failed after %d item(s) committed: %v", e.Step, e.Committed, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
