package dto

import "encoding/json"

// Billing webhook envelope, provider-shaped. Data carries the event object;
// metadata keys are the contract agreed with the checkout integration.
type BillingEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

type CheckoutObject struct {
	Subscription string           `json:"subscription"`
	Metadata     CheckoutMetadata `json:"metadata"`
}

type CheckoutMetadata struct {
	OrganizationName string `json:"organizationName"`
	CreatorUserID    uint   `json:"creatorUserId,string"`
	AdminSeats       int    `json:"adminLicenses,string"`
	AnalystSeats     int    `json:"analystLicenses,string"`
	UserSeats        int    `json:"userLicenses,string"`
	BillingCycle     string `json:"billingCycle"`
}

type SubscriptionObject struct {
	ID       string           `json:"id"`
	Status   string           `json:"status"`
	Metadata CheckoutMetadata `json:"metadata"`
}
