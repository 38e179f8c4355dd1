package events

// Topic constants for domain events emitted by the quoting service.
const (
	TopicQuoteCreated       = "quote.created"
	TopicQuoteStatusChanged = "quote.status_changed"
)

// QuoteCreated is the payload of TopicQuoteCreated.
type QuoteCreated struct {
	QuoteID      string  `json:"quoteId"`
	Mode         string  `json:"mode"`
	TotalPrice   string  `json:"totalPrice"`
	RulesVersion int     `json:"rulesVersion"`
	SpineWidth   float64 `json:"spineWidthInches"`
}

// QuoteStatusChanged is the payload of TopicQuoteStatusChanged.
type QuoteStatusChanged struct {
	QuoteID string `json:"quoteId"`
	From    string `json:"from"`
	To      string `json:"to"`
}
