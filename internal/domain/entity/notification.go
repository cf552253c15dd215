package entity

// Notification is a formatted, delivery-ready message derived from one feed
// entry. It is immutable after creation; Message is the only field the
// delivery layer consumes, the rest exist for logging and observability.
type Notification struct {
	Title    string
	Link     string
	Category string

	// Message is the sanitized, length-bounded text posted to the
	// destination channel or webhook.
	Message string
}

// Deliverable reports whether the notification carries a non-empty message.
// Items failing this check are skipped (and logged) by the cycle rather than
// handed to a delivery channel.
func (n *Notification) Deliverable() bool {
	return n != nil && n.Message != ""
}
