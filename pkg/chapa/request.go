package chapa

type InitializeRequest struct {
	Amount      int64
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	TxRef       string
	CallbackURL string
	ReturnURL   string
	Title       string
	Description string
}

type initializePayload struct {
	Amount      string        `json:"amount"`
	Currency    string        `json:"currency"`
	Email       string        `json:"email"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	TxRef       string        `json:"tx_ref"`
	CallbackURL string        `json:"callback_url"`
	ReturnURL   string        `json:"return_url"`
	Custom      customization `json:"customization"`
}

type customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
