package models

import "fmt"

// PaymentProvider identifies a supported payment gateway. The wire protocols
// themselves live behind each provider; this service only stores named
// credential sets and an enabled flag.
type PaymentProvider string

const (
	ProviderYooKassa      PaymentProvider = "yookassa"
	ProviderCloudPayments PaymentProvider = "cloudpayments"
	ProviderSberbank      PaymentProvider = "sberbank"
	ProviderAlfabank      PaymentProvider = "alfabank"
	ProviderSBP           PaymentProvider = "sbp"
	ProviderTinkoff       PaymentProvider = "tinkoff"
)

// credentialFields lists the provider-specific fields an integration must
// carry before it can be enabled.
var credentialFields = map[PaymentProvider][]string{
	ProviderYooKassa:      {"shop_id", "secret_key"},
	ProviderCloudPayments: {"public_id", "api_secret"},
	ProviderSberbank:      {"login", "password"},
	ProviderAlfabank:      {"username", "password", "gateway_merchant_id"},
	ProviderSBP:           {"merchant_id", "account"},
	ProviderTinkoff:       {"terminal_key", "password"},
}

func (p PaymentProvider) Valid() bool {
	_, ok := credentialFields[p]
	return ok
}

// PaymentIntegration is a named, provider-typed credential set.
type PaymentIntegration struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Provider    PaymentProvider   `json:"provider"`
	Credentials map[string]string `json:"credentials"`
	Enabled     bool              `json:"enabled"`
}

// Validate checks the provider is known and every required credential field
// is present and non-empty.
func (pi *PaymentIntegration) Validate() error {
	fields, ok := credentialFields[pi.Provider]
	if !ok {
		return fmt.Errorf("unknown payment provider %q", pi.Provider)
	}
	for _, f := range fields {
		if pi.Credentials[f] == "" {
			return fmt.Errorf("provider %s requires credential %q", pi.Provider, f)
		}
	}
	return nil
}
