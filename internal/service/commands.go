package service

import "github.com/KALU56/E-Self/internal/model"

type InitiatePaymentCommand struct {
	UserID   int64
	CourseID int64
	Amount   int64
}

type InitiatePaymentResponse struct {
	PaymentID   int64
	TxRef       string
	CheckoutURL string
}

// FinalizeResult echoes the payment's terminal (or still pending) state.
// Enrollment is set only when the payment is COMPLETED. AlreadySettled is
// true when some earlier finalize had settled the payment and this call
// only read back the stored outcome.
type FinalizeResult struct {
	Payment        *model.Payment
	Enrollment     *model.Enrollment
	AlreadySettled bool
}

type GetHistoryQuery struct {
	UserID int64
	Limit  int
	Offset int
}

type PublishEventCommand struct {
	EventID      int64  `json:"event_id"`
	Type         string `json:"type"`
	TxRef        string `json:"tx_ref"`
	PaymentID    int64  `json:"payment_id"`
	UserID       int64  `json:"user_id"`
	CourseID     int64  `json:"course_id"`
	EnrollmentID int64  `json:"enrollment_id"`
	Amount       int64  `json:"amount"`
}
