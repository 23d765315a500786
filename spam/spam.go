// Package spam holds the heuristics that screen contact form submissions.
package spam

import (
	"regexp"
	"strings"
	"unicode"
)

// Message length bounds accepted by the contact form.
const (
	MinMessageLength = 10
	MaxMessageLength = 5000
)

var (
	urlRegex   = regexp.MustCompile(`https?://`)
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRegex = regexp.MustCompile(`\+?[0-9]{7,}`)

	subjects = map[string]bool{
		"general":     true,
		"support":     true,
		"partnership": true,
		"feedback":    true,
		"other":       true,
	}

	patterns = []string{
		"viagra", "cialis", "casino", "lottery", "prize",
		"click here", "buy now", "limited time",
		"congratulations", "you have won", "claim your",
		"bitcoin", "crypto", "forex", "trading bot",
		"free money", "make money fast", "work from home",
		"nigerian", "inheritance", "transfer funds",
		"<!--", "javascript:", "onclick=", "<script",
		"sveiki", "ciao", "hola", "привет",
		"harga", "karna", "anda", "dari",
	}

	commonWords = []string{
		"the ", "and ", "is ", "to ", "of ", "for ", "that ", "with ", "this ", "have ",
		"from ", "would ", "could ", "about ", "more ", "which ", "been ", "their ",
	}

	commonPairs = map[string]bool{
		"th": true, "he": true, "in": true, "er": true, "an": true,
		"ed": true, "nd": true, "to": true, "en": true, "ti": true,
		"es": true, "or": true, "te": true, "ar": true, "ou": true,
		"it": true, "ha": true, "is": true, "co": true, "me": true,
		"we": true, "be": true, "se": true, "as": true, "de": true,
		"so": true, "re": true, "st": true, "up": true, "at": true,
		"ai": true, "al": true, "il": true, "le": true, "li": true,
	}
)

// IsValidSubject reports whether subject is one of the form's options.
func IsValidSubject(subject string) bool {
	return subjects[subject]
}

// IsValidName rejects names that are too short or long, mostly digits, or links.
func IsValidName(name string) bool {
	if len(name) < 2 || len(name) > 100 {
		return false
	}

	digits := 0
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits > 0 && float64(digits)/float64(len(name)) > 0.33 {
		return false
	}

	return !strings.Contains(name, "http") && !strings.Contains(name, "://")
}

// IsValidEmail does a structural check of local part and domain labels.
func IsValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]

	if len(local) < 1 || len(local) > 64 {
		return false
	}
	if len(domain) < 3 || len(domain) > 255 {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
	}

	return true
}

// IsEnglish reports whether text is mostly written with the ASCII letters,
// digits and punctuation of English prose.
func IsEnglish(text string) bool {
	if text == "" {
		return true
	}

	lower := strings.ToLower(text)
	boost := 0
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			boost += 10
		}
	}

	var english, nonASCII, total int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) && !unicode.IsPunct(r) {
			continue
		}
		total++

		switch {
		case r < unicode.MaxASCII && (isASCIIAlnum(r) || strings.ContainsRune(" .,!?-'\";:()\n\t", r)):
			english++
		case r > unicode.MaxASCII:
			nonASCII++
		}
	}

	if total == 0 {
		return true
	}
	if nonASCII > 3 {
		return false
	}

	ratio := float64(english) / float64(total)
	return ratio >= 0.75 || (ratio >= 0.65 && boost > 0)
}

// IsSpam reports whether message matches any of the spam heuristics.
func IsSpam(message string) bool {
	lower := strings.ToLower(message)

	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	if len(urlRegex.FindAllString(lower, -1)) > 1 {
		return true
	}
	if emailRegex.MatchString(lower) || phoneRegex.MatchString(lower) {
		return true
	}

	if strings.Count(lower, "!") > 2 {
		return true
	}
	if strings.Contains(lower, "!!!") || strings.Contains(lower, "???") || strings.Contains(lower, "...") {
		return true
	}

	if len(lower) > 20 && isShouting(message) {
		return true
	}
	if hasRepeatedWords(lower) {
		return true
	}

	if len(message) < 15 {
		return true
	}

	return isGibberish(lower)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isShouting(message string) bool {
	var letters, caps int
	for _, r := range message {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters++
			if r <= 'Z' {
				caps++
			}
		}
	}

	return letters > 0 && float64(caps)/float64(letters) > 0.6
}

func hasRepeatedWords(lower string) bool {
	words := strings.Fields(lower)
	if len(words) <= 5 {
		return false
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
		if counts[w] > 3 {
			return true
		}
	}

	return false
}

// isGibberish counts adjacent letter pairs that rarely occur in English.
func isGibberish(lower string) bool {
	if len(lower) <= 30 {
		return false
	}

	uncommon := 0
	for i := 0; i < len(lower)-1; i++ {
		a, b := lower[i], lower[i+1]
		if a < 'a' || a > 'z' || b < 'a' || b > 'z' || a == b {
			continue
		}
		if !commonPairs[string([]byte{a, b})] {
			uncommon++
		}
	}

	return uncommon > len(lower)/3
}
