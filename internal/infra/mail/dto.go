package mail

import (
	"errors"
	"time"
)

var (
	ErrTransportNotConfigured = errors.New("mail transport not configured")
	ErrNotificationFailed     = errors.New("checklist email could not be sent")
)

// ChecklistEmailData feeds templates/checklist.html.
type ChecklistEmailData struct {
	FirstName string
	OfferURL  string
	Year      int
	Steps     []ChecklistStep
}

type ChecklistStep struct {
	Title string
	Items []string
}

// Message is a rendered email ready for a transport.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Delivery describes how a message left the service. BestEffort is set when
// the transport only recorded the attempt without delivering anything.
type Delivery struct {
	Transport  string
	MessageID  string
	BestEffort bool
	SentAt     time.Time
}
