// Package constants defines shared identifiers used across layers.
package constants

// Broker provider names selectable via configuration.
const (
	BrokerProviderLocal  = "local"
	BrokerProviderGoogle = "google"
)

// Routing keys for account lifecycle events. The names are part of the wire
// contract with the downstream email service and must not change casually.
const (
	ExchangeAccounts    = "fwutter-exchange"
	QueueEmailService   = "EmailMicroserviceQueue"
	EventAccountCreated = "RegisterUser"
)
