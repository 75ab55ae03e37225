package chapa

const (
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
	TransactionPending = "pending"
)

type InitializeResponse struct {
	CheckoutURL string
}

type VerifyResponse struct {
	Status     string
	ReceiptURL string
}

type initializeEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type verifyEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status     string `json:"status"`
		Reference  string `json:"reference"`
		ReceiptURL string `json:"receipt_url"`
	} `json:"data"`
}
