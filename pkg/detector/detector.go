package detector

import (
	"regexp"
	"strings"

	"github.com/veilmatch/moderation/pkg/domain/moderation"
)

const (
	// BaseConfidence is assigned on the first distinct term match;
	// ConfidenceStep is added per further distinct match, capped at 1.0.
	BaseConfidence = 0.6
	ConfidenceStep = 0.2

	// HighConfidenceThreshold promotes inappropriate-content matches
	// from medium to high severity.
	HighConfidenceThreshold = 0.8

	// PIIConfidence reflects that a PII regex match is near-certain.
	PIIConfidence = 0.9

	// SpamConfidence is deliberately low; spam heuristics are noisy.
	SpamConfidence = 0.5
)

var wordPattern = regexp.MustCompile(`[a-z0-9'@._+-]+`)

// Config externalizes the term lists and thresholds. Zero values fall back
// to the compiled-in defaults.
type Config struct {
	InappropriateTerms      []string `mapstructure:"inappropriate_terms"`
	HarassmentTerms         []string `mapstructure:"harassment_terms"`
	HateSpeechTerms         []string `mapstructure:"hate_speech_terms"`
	SpamTerms               []string `mapstructure:"spam_terms"`
	HighConfidenceThreshold float64  `mapstructure:"high_confidence_threshold"`
}

// Detection is the outcome of scanning one piece of text.
type Detection struct {
	Flags       []moderation.Flag
	Confidence  float64
	Severity    moderation.Severity
	DetectedPII []string
}

// Clean reports whether the text raised no flags at all.
func (d Detection) Clean() bool {
	return len(d.Flags) == 0
}

// Detector scans free text for policy violations and PII. All state is
// immutable after construction, so a single instance is safe for
// concurrent use.
type Detector struct {
	inappropriateTerms []string
	harassmentTerms    []string
	hateSpeechTerms    []string
	spamTerms          []string
	highConfidence     float64
}

func New(cfg Config) *Detector {
	d := &Detector{
		inappropriateTerms: normalizeTerms(cfg.InappropriateTerms, defaultInappropriateTerms),
		harassmentTerms:    normalizeTerms(cfg.HarassmentTerms, defaultHarassmentTerms),
		hateSpeechTerms:    normalizeTerms(cfg.HateSpeechTerms, defaultHateSpeechTerms),
		spamTerms:          normalizeTerms(cfg.SpamTerms, defaultSpamTerms),
		highConfidence:     cfg.HighConfidenceThreshold,
	}
	if d.highConfidence == 0 {
		d.highConfidence = HighConfidenceThreshold
	}
	return d
}

// Detect scans the given text and returns the full set of raised flags,
// the detector's confidence, the derived severity and any PII matches.
// Empty or unrecognized text yields a clean detection; Detect never fails.
func (d *Detector) Detect(text string) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{Severity: moderation.SeverityNone}
	}

	lowered := strings.ToLower(text)
	words := wordSet(lowered)

	inappropriate := matchTerms(lowered, words, d.inappropriateTerms)
	harassment := matchTerms(lowered, words, d.harassmentTerms)
	hateSpeech := matchTerms(lowered, words, d.hateSpeechTerms)
	spam := matchTerms(lowered, words, d.spamTerms)
	pii := d.detectPII(text)

	var flags []moderation.Flag
	if len(inappropriate) > 0 {
		flags = append(flags, moderation.FlagInappropriateContent)
	}
	if len(harassment) > 0 {
		flags = append(flags, moderation.FlagHarassment)
	}
	if len(hateSpeech) > 0 {
		flags = append(flags, moderation.FlagHateSpeech)
	}
	if len(spam) > 0 {
		flags = append(flags, moderation.FlagSpam)
	}
	if len(pii) > 0 {
		flags = append(flags, moderation.FlagPersonalInformation)
	}

	termConfidence := confidenceForMatches(len(inappropriate) + len(harassment) + len(hateSpeech))

	confidence := termConfidence
	if len(pii) > 0 && PIIConfidence > confidence {
		confidence = PIIConfidence
	}
	if len(spam) > 0 && confidence == 0 {
		confidence = SpamConfidence
	}
	if len(flags) == 0 {
		// Certainty that the content is clean.
		confidence = 1.0
	}

	return Detection{
		Flags:       flags,
		Confidence:  confidence,
		Severity:    d.deriveSeverity(inappropriate, harassment, hateSpeech, spam, pii, termConfidence),
		DetectedPII: pii,
	}
}

func (d *Detector) deriveSeverity(inappropriate, harassment, hateSpeech, spam, pii []string, termConfidence float64) moderation.Severity {
	switch {
	case len(harassment) > 0 || len(hateSpeech) > 0:
		return moderation.SeverityCritical
	case len(pii) > 0:
		return moderation.SeverityHigh
	case len(inappropriate) > 0 && termConfidence >= d.highConfidence:
		return moderation.SeverityHigh
	case len(inappropriate) > 0:
		return moderation.SeverityMedium
	case len(spam) > 0:
		return moderation.SeverityLow
	default:
		return moderation.SeverityNone
	}
}

func (d *Detector) detectPII(text string) []string {
	var matches []string
	seen := make(map[string]struct{})

	remaining := text
	for _, entity := range piiOrder {
		pattern := piiPatterns[entity]
		for _, match := range pattern.FindAllString(remaining, -1) {
			match = strings.TrimSpace(match)
			if entity == PhoneNumber && !plausiblePhone(match) {
				continue
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			matches = append(matches, match)
		}
		// Strip consumed matches so later patterns cannot re-claim them.
		for match := range seen {
			remaining = strings.ReplaceAll(remaining, match, " ")
		}
	}
	return matches
}

func plausiblePhone(candidate string) bool {
	digits := 0
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= phoneMinDigits && digits <= phoneMaxDigits
}

func confidenceForMatches(distinct int) float64 {
	if distinct == 0 {
		return 0
	}
	confidence := BaseConfidence + ConfidenceStep*float64(distinct-1)
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func matchTerms(lowered string, words map[string]struct{}, terms []string) []string {
	var matched []string
	for _, term := range terms {
		if strings.ContainsAny(term, " \t") {
			if strings.Contains(lowered, term) {
				matched = append(matched, term)
			}
			continue
		}
		if _, ok := words[term]; ok {
			matched = append(matched, term)
		}
	}
	return matched
}

func wordSet(lowered string) map[string]struct{} {
	words := wordPattern.FindAllString(lowered, -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.Trim(w, "'.-_+@")] = struct{}{}
	}
	return set
}

func normalizeTerms(configured, defaults []string) []string {
	source := configured
	if len(source) == 0 {
		source = defaults
	}
	terms := make([]string, 0, len(source))
	for _, t := range source {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
