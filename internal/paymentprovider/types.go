package paymentprovider

// Статусы платежа у провайдера.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusExpired = "EXPIRED"
)

// BillingResponse — нормализованный ответ провайдера на создание платежа.
type BillingResponse struct {
	BillingID string `json:"billingId"`
	URL       string `json:"url"`     // Ссылка на оплату или QR
	PixCode   string `json:"pixCode"` // Código Copia e Cola для PIX
	Status    string `json:"status"`
}

// Запрос AbacatePay на создание счёта.
type createBillingRequest struct {
	Frequency string           `json:"frequency"`
	Methods   []string         `json:"methods"`
	Products  []billingProduct `json:"products"`
	ReturnURL string           `json:"returnUrl"`
	Customer  billingCustomer  `json:"customer"`
}

type billingProduct struct {
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	// Цена в целых центах, чтобы не ловить ошибки плавающей точки.
	Price int64 `json:"price"`
}

type billingCustomer struct {
	Email string `json:"email"`
}

// Ответ AbacatePay. Поля продублированы на двух уровнях, потому что
// реальный API оборачивает данные в data, а песочница — нет.
type createBillingResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Pix  pix    `json:"pix"`
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
		Pix pix    `json:"pix"`
	} `json:"data"`
}

type pix struct {
	Code string `json:"code"`
}
