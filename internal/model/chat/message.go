package chat

// DefaultSender is substituted when a client submits a message without one.
const DefaultSender = "Anonymous"

// Message is a single chat log entry. Once appended it is never edited or
// removed; append order is the only ordering the system defines.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	FileURL   string `json:"fileUrl,omitempty"`
	Timestamp string `json:"timestamp"`
	Sentiment int    `json:"sentiment"`
}

// Submission is the partial message payload accepted from clients. Every
// field may be absent; the server coerces missing fields to defaults and
// always computes the sentiment score itself.
type Submission struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	FileURL   string `json:"fileUrl"`
	Timestamp string `json:"timestamp"`
}
