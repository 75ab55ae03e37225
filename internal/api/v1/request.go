package v1

type CreatePaymentRequest struct {
	CourseID int64 `json:"courseId" validate:"required,gt=0"`
	Amount   int64 `json:"amount" validate:"required,gt=0"`
}

type VerifyPaymentRequest struct {
	TxRef string `query:"tx_ref" validate:"required,tx_ref"`
}

// WebhookRequest is the slice of Chapa's webhook payload this service reads.
// Everything else in the payload is untrusted noise; the verify call is the
// source of truth.
type WebhookRequest struct {
	TxRef  string `json:"tx_ref"`
	Event  string `json:"event"`
	Status string `json:"status"`
}
