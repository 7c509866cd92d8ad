package usecase

// SendChecklistInput is the lead form payload.
type SendChecklistInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	GDPRConsent bool   `json:"gdprConsent"`
}

type SendChecklistOutput struct {
	Message      string `json:"message"`
	SubscriberID string `json:"subscriber_id,omitempty"`
	Fallback     bool   `json:"fallback,omitempty"`
	AlreadySent  bool   `json:"-"`
}
