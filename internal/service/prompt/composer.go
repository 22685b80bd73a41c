// Package prompt assembles the persona system prompt: temporal preamble,
// identity, time-classified web context, and behavior rules.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sayuki-dev/oshitalk/backend/internal/model/persona"
	"github.com/sayuki-dev/oshitalk/backend/internal/timeaware"
)

// ErrPersonaNotFound signals an unknown persona id. Callers are expected to
// fall back to a default persona and, failing that, a generic prompt.
var ErrPersonaNotFound = errors.New("persona not found")

var weekdayKanji = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Composer produces system prompts from the persona registry.
type Composer struct {
	registry   *persona.Registry
	classifier *timeaware.Classifier
	settings   BaseSettings
}

// NewComposer returns a composer over the given registry.
func NewComposer(registry *persona.Registry) *Composer {
	return &Composer{
		registry:   registry,
		classifier: timeaware.NewClassifier(),
		settings:   DefaultSettings(),
	}
}

// ComposeSystemPrompt builds the complete system prompt for a persona at the
// given reference instant. Enhanced personas get the time-classified web
// context block; base personas get their verbatim current-status lines.
func (c *Composer) ComposeSystemPrompt(personaID string, now time.Time) (string, error) {
	entry, ok := c.registry.Get(personaID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPersonaNotFound, personaID)
	}

	preamble := c.timeRecognitionPreamble(now)
	identity := c.identityBlock(entry.Config)
	rules := c.behaviorRules(entry.Config)

	if entry.Enhanced() {
		webContext := c.webContextBlock(*entry.WebContext, now)
		return preamble + identity + "\n\n" + webContext + "\n\n" + rules, nil
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(identity)
	b.WriteString(currentStatusBlock(entry.Config.CurrentStatus))
	b.WriteString("\n\n【コミュニケーション特徴】\n")
	writeBullets(&b, entry.Config.Personality.CommunicationStyle)
	b.WriteString("\n【感情表現の特徴】\n")
	writeBullets(&b, entry.Config.Personality.EmotionalCharacteristics)
	b.WriteString("\n【専門分野】\n")
	fmt.Fprintf(&b, "- 得意分野: %s\n", strings.Join(entry.Config.Expertise.PrimaryFields, "、"))
	fmt.Fprintf(&b, "- 経験: %s\n", strings.Join(entry.Config.Expertise.Experiences, "、"))
	b.WriteString("\n")
	b.WriteString(rules)
	return b.String(), nil
}

// ComposeSystemPromptNow composes against the current JST instant.
func (c *Composer) ComposeSystemPromptNow(personaID string) (string, error) {
	return c.ComposeSystemPrompt(personaID, timeaware.NowJST())
}

// Greeting returns the persona's canned greeting, or a generic fallback for
// unknown ids or personas without one. Never fails.
func (c *Composer) Greeting(personaID string) string {
	if entry, ok := c.registry.Get(personaID); ok && entry.Config.Greeting != "" {
		return entry.Config.Greeting
	}
	return fmt.Sprintf("こんにちは！%sです。", personaID)
}

// PersonaIDs lists every registered persona id.
func (c *Composer) PersonaIDs() []string {
	return c.registry.IDs()
}

// FormatDateJapanese renders a date as YYYY年M月D日（曜日）.
func FormatDateJapanese(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日（%s曜日）",
		t.Year(), int(t.Month()), t.Day(), weekdayKanji[t.Weekday()])
}

// timeRecognitionPreamble states today's date and the absolute rules for
// treating earlier dates as finished and later dates as upcoming.
func (c *Composer) timeRecognitionPreamble(now time.Time) string {
	today := FormatDateJapanese(now.In(timeaware.JST))

	var b strings.Builder
	b.WriteString("【📅 重要：現在の日付と時系列認識】\n")
	fmt.Fprintf(&b, "本日は%sです。\n\n", today)
	b.WriteString("【時系列認識の絶対ルール】\n")
	fmt.Fprintf(&b, "- 本日（%s）より前の日付のことは、既に終わった過去のこととして扱ってください\n", today)
	fmt.Fprintf(&b, "- 本日（%s）より後の日付のことは、これから予定している未来のこととして扱ってください\n", today)
	fmt.Fprintf(&b, "- 過去のイベントについて「今度やる？」「いつやる？」と聞かれた場合は「それは%sより前に既に終了しました」と明確に答えてください\n", today)
	b.WriteString("- 未来のイベントについては「〜予定です」「〜の予定があります」という未来形で答えてください\n")
	b.WriteString("- 現在進行中のイベントについては「〜開催中です」「〜やっています」という現在形で答えてください\n\n")
	return b.String()
}

// identityBlock renders the persona's basic info, traits and speaking style.
// Optional identity lines appear only when the field is set.
func (c *Composer) identityBlock(cfg persona.Config) string {
	info := cfg.BasicInfo

	var b strings.Builder
	fmt.Fprintf(&b, "あなたは%sです。", info.Name)
	if info.RealName != "" {
		fmt.Fprintf(&b, "（%s）", info.RealName)
	}
	b.WriteString("\n\n【基本情報】\n")
	fmt.Fprintf(&b, "- 名前: %s\n", info.Name)
	if info.RealName != "" {
		fmt.Fprintf(&b, "- 本名: %s\n", info.RealName)
	}
	if info.BirthDate != "" {
		fmt.Fprintf(&b, "- 生年月日: %s\n", info.BirthDate)
	}
	if info.Origin != "" {
		fmt.Fprintf(&b, "- 出身: %s\n", info.Origin)
	}
	fmt.Fprintf(&b, "- 職業: %s\n", strings.Join(info.Occupation, "、"))
	if info.Group != "" {
		fmt.Fprintf(&b, "- 所属: %s\n", info.Group)
	}
	if info.MBTI != "" {
		fmt.Fprintf(&b, "- MBTI: %s\n", info.MBTI)
	}

	b.WriteString("\n【基本性格】\n")
	writeBullets(&b, cfg.Personality.CoreTraits)

	b.WriteString("\n【話し方の特徴】\n")
	fmt.Fprintf(&b, "- 丁寧さレベル: %s\n", politenessDescription(cfg.SpeakingStyle.PolitenessLevel))
	writeBullets(&b, cfg.SpeakingStyle.ResponsePatterns)

	b.WriteString("\n【よく使う表現】\n")
	for _, phrase := range cfg.SpeakingStyle.CharacteristicPhrases {
		fmt.Fprintf(&b, "「%s」\n", phrase)
	}

	b.WriteString("\n【使用禁止表現】\n")
	for _, phrase := range cfg.SpeakingStyle.AvoidPhrases {
		fmt.Fprintf(&b, "「%s」\n", phrase)
	}

	return strings.TrimRight(b.String(), "\n")
}

// webContextBlock renders the dated web context with every category
// classified against the same reference instant, plus the closing reminder
// restating the past/future rule.
func (c *Composer) webContextBlock(webContext persona.WebContext, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【🔥 最新動向・WEB情報 (%s時点)】\n", webContext.SearchDate)

	data := webContext.ContextData
	if section := c.classifier.GenerateTimeAwarePrompt(data.RecentNews, "ニュース", now); section != "" {
		b.WriteString(section)
	}
	if section := c.classifier.GenerateTimeAwarePrompt(data.UpcomingEvents, "イベント・予定", now); section != "" {
		b.WriteString(section)
	}
	if section := c.classifier.GenerateTimeAwarePrompt(data.Achievements, "実績・受賞", now); section != "" {
		b.WriteString(section)
	}

	today := FormatDateJapanese(now.In(timeaware.JST))
	b.WriteString("【⚠️ 時系列認識の重要指示】\n")
	fmt.Fprintf(&b, "- 上記情報の日付をよく確認し、現在（%s）を基準として正確に答えてください\n", today)
	b.WriteString("- 「終了済み」と表示されているイベントは過去のこととして扱ってください\n")
	b.WriteString("- 「予定」と表示されているイベントは未来のこととして扱ってください\n")
	b.WriteString("- ユーザーが過去のイベントについて「今度やる？」などと聞いた場合は、既に終了したことを明確に伝えてください")

	return b.String()
}

// currentStatusBlock renders a base persona's free-text activity lines
// verbatim. These are not structured events, so no date classification is
// applied.
func currentStatusBlock(status *persona.CurrentStatus) string {
	if status == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n【最新活動状況】\n")
	writeBullets(&b, status.RecentActivities)
	writeBullets(&b, status.UpcomingEvents)
	writeBullets(&b, status.Achievements)
	return strings.TrimRight(b.String(), "\n")
}

// behaviorRules combines the static rule set with the persona's politeness
// register. The register is resolved once here and echoed in the closing
// directive so the identity block and the directive never disagree.
func (c *Composer) behaviorRules(cfg persona.Config) string {
	var b strings.Builder
	b.WriteString("【重要な会話ルール】\n")
	writeBullets(&b, c.settings.ConversationRules)

	b.WriteString("\n【応答フォーマット指示】\n")
	writeBullets(&b, c.settings.CommonInstructions)

	b.WriteString("\n【会話記憶と継続性の重要指示】\n")
	writeBullets(&b, memoryInstructions)

	b.WriteString("\n【共感・寄り添い・承認欲求を満たす重要指示】\n")
	writeBullets(&b, empathyInstructions)

	b.WriteString("\n【応答時の重要な指示】\n")
	fmt.Fprintf(&b, "- 必ず%sで話してください\n", politenessDirective(cfg.SpeakingStyle.PolitenessLevel))
	b.WriteString("- 毎回異なる表現や締めくくりを使用してください\n")
	b.WriteString("- ユーザーの発言をそのまま繰り返すことは避けてください\n")
	b.WriteString("- 応答は適切に改行し、スマホで読みやすくしてください\n\n")

	fmt.Fprintf(&b, "%sとして、あなたの個性を表現しながら、自然で魅力的な会話を心がけてください。", cfg.BasicInfo.Name)
	return b.String()
}

func politenessDescription(level string) string {
	switch level {
	case persona.PolitenessFormal:
		return "非常に丁寧（敬語）"
	case persona.PolitenessPolite:
		return "丁寧（です・ます調）"
	default:
		return "カジュアル"
	}
}

func politenessDirective(level string) string {
	switch level {
	case persona.PolitenessFormal:
		return "敬語"
	case persona.PolitenessPolite:
		return "です・ます調"
	default:
		return "カジュアルな口調"
	}
}

func writeBullets(b *strings.Builder, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}
