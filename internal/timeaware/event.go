package timeaware

// Event is any dated contextual fact subject to temporal classification.
// Date is required (loosely formatted, typically Japanese style); EndDate is
// set for span events such as tours. The remaining descriptive fields vary by
// category — news items carry Title, personal updates carry Content, industry
// notes carry Topic.
type Event struct {
	Title        string `json:"title,omitempty"`
	Content      string `json:"content,omitempty"`
	Topic        string `json:"topic,omitempty"`
	Date         string `json:"date"`
	EndDate      string `json:"endDate,omitempty"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
	Venue        string `json:"venue,omitempty"`
	Organization string `json:"organization,omitempty"`
	Source       string `json:"source,omitempty"`

	// Computed by CategorizeEventsByTime.
	TimePeriod Period `json:"timePeriod,omitempty"`
	IsActive   bool   `json:"isActive,omitempty"`
	HasEnded   bool   `json:"hasEnded,omitempty"`
}

// DisplayTitle resolves the label used when rendering the event into prompt
// text: the first present of Title, Content, Topic, else a generic fallback.
func (e Event) DisplayTitle() string {
	switch {
	case e.Title != "":
		return e.Title
	case e.Content != "":
		return e.Content
	case e.Topic != "":
		return e.Topic
	default:
		return "イベント"
	}
}
