package request

type PaymentConfirmedRequest struct {
	Provider    string `json:"provider" validate:"required,max=50"`
	ProviderRef string `json:"provider_ref" validate:"required,max=255"`
	Amount      int64  `json:"amount" validate:"gte=0"`
}

type PaymentRejectedRequest struct {
	Provider    string `json:"provider" validate:"required,max=50"`
	ProviderRef string `json:"provider_ref" validate:"required,max=255"`
}
