// Package persona holds the character configurations the assistant can
// impersonate, plus the registry used to look them up.
package persona

import "github.com/sayuki-dev/oshitalk/backend/internal/timeaware"

// Politeness levels for SpeakingStyle.
const (
	PolitenessCasual = "casual"
	PolitenessPolite = "polite"
	PolitenessFormal = "formal"
)

// BasicInfo identifies the character. Optional fields render only when set.
type BasicInfo struct {
	Name       string   `json:"name"`
	RealName   string   `json:"realName,omitempty"`
	BirthDate  string   `json:"birthDate,omitempty"`
	Origin     string   `json:"origin,omitempty"`
	Occupation []string `json:"occupation"`
	Group      string   `json:"group,omitempty"`
	MBTI       string   `json:"mbti,omitempty"`
}

// Personality lists the character's trait descriptions.
type Personality struct {
	CoreTraits               []string `json:"coreTraits"`
	CommunicationStyle       []string `json:"communicationStyle"`
	EmotionalCharacteristics []string `json:"emotionalCharacteristics"`
}

// SpeakingStyle controls register and phrasing.
type SpeakingStyle struct {
	PolitenessLevel       string   `json:"politenessLevel"`
	CharacteristicPhrases []string `json:"characteristicPhrases"`
	AvoidPhrases          []string `json:"avoidPhrases"`
	ResponsePatterns      []string `json:"responsePatterns"`
}

// Expertise describes what the character knows and has done.
type Expertise struct {
	PrimaryFields  []string `json:"primaryFields"`
	Experiences    []string `json:"experiences"`
	KnowledgeAreas []string `json:"knowledgeAreas"`
}

// CurrentStatus carries free-text recent-activity lines for base personas.
// Entries are rendered verbatim; no date classification is applied to them.
type CurrentStatus struct {
	RecentActivities []string `json:"recentActivities,omitempty"`
	UpcomingEvents   []string `json:"upcomingEvents,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// Config is a base persona: the full structured identity loaded at startup.
type Config struct {
	BasicInfo     BasicInfo      `json:"basicInfo"`
	Personality   Personality    `json:"personality"`
	SpeakingStyle SpeakingStyle  `json:"speakingStyle"`
	Expertise     Expertise      `json:"expertise"`
	CurrentStatus *CurrentStatus `json:"currentStatus,omitempty"`
	Greeting      string         `json:"greeting"`
}

// WebSource records where a piece of web context came from.
type WebSource struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	ExtractedAt string `json:"extractedAt"`
	Reliability string `json:"reliability"`
	Summary     string `json:"summary"`
}

// ContextData groups externally gathered facts by category. Every entry is a
// time-aware event subject to past/current/future classification.
type ContextData struct {
	RecentNews      []timeaware.Event `json:"recentNews,omitempty"`
	Achievements    []timeaware.Event `json:"achievements,omitempty"`
	UpcomingEvents  []timeaware.Event `json:"upcomingEvents,omitempty"`
	Collaborations  []timeaware.Event `json:"collaborations,omitempty"`
	PersonalUpdates []timeaware.Event `json:"personalUpdates,omitempty"`
	IndustryContext []timeaware.Event `json:"industryContext,omitempty"`
}

// WebContext is the dated "current events" block attached to enhanced
// personas.
type WebContext struct {
	SearchDate  string      `json:"searchDate"`
	SearchQuery string      `json:"searchQuery"`
	Sources     []WebSource `json:"sources"`
	ContextData ContextData `json:"contextData"`
}
