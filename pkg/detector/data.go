package detector

import "regexp"

// PIIEntity names a category of personally identifiable information the
// detector scans for.
type PIIEntity string

const (
	Email       PIIEntity = "email"
	PhoneNumber PIIEntity = "phone_number"
)

var piiPatterns = map[PIIEntity]*regexp.Regexp{
	Email:       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	PhoneNumber: regexp.MustCompile(`\+?\d[\d\s().-]{5,18}\d`),
}

// Emails are scanned first so a phone match never claims the digits of an
// address that was already recorded.
var piiOrder = []PIIEntity{
	Email,
	PhoneNumber,
}

// Phone candidates must carry this many digits once separators are
// stripped; anything outside the range is a price, a date, or noise.
const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// Default term lists. Wordlists are replaceable through config; these
// defaults cover the categories the review team acts on most.
var (
	defaultInappropriateTerms = []string{
		"nsfw",
		"explicit",
		"xxx",
		"porn",
		"nude pics",
		"send nudes",
		"obscene",
		"hookup tonight",
	}

	defaultHarassmentTerms = []string{
		"kill yourself",
		"kys",
		"go die",
		"i know where you live",
		"watch your back",
		"worthless piece",
	}

	defaultHateSpeechTerms = []string{
		"nazi",
		"subhuman",
		"vermin",
		"go back to your country",
	}

	defaultSpamTerms = []string{
		"buy now",
		"click here",
		"free money",
		"limited offer",
		"dm me for promo",
		"follow my page",
		"crypto giveaway",
	}
)
