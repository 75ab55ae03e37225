package v1

type CreatePaymentResponse struct {
	PaymentID   int64  `json:"payment_id"`
	TxRef       string `json:"tx_ref"`
	CheckoutURL string `json:"checkout_url"`
}

type PaymentResponse struct {
	PaymentID  int64               `json:"payment_id"`
	TxRef      string              `json:"tx_ref"`
	CourseID   int64               `json:"course_id"`
	Amount     int64               `json:"amount"`
	Currency   string              `json:"currency"`
	Status     string              `json:"status"`
	ReceiptURL string              `json:"receipt_url,omitempty"`
	CreatedAt  string              `json:"created_at"`
	Course     *CourseResponse     `json:"course,omitempty"`
	Enrollment *EnrollmentResponse `json:"enrollment,omitempty"`
}

type CourseResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}

type EnrollmentResponse struct {
	ID       int64  `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type GetHistoryResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}
