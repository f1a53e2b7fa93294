package security

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
)

// sensitiveTokens match when any single token of a key equals them.
var sensitiveTokens = map[string]bool{
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"auth":          true,
	"authorization": true,
	"credential":    true,
	"credentials":   true,
	"pin":           true,
	"cvv":           true,
}

// sensitiveCompounds match against the key with every separator removed.
var sensitiveCompounds = map[string]bool{
	"newpassword":   true,
	"oldpassword":   true,
	"passwordsalt":  true,
	"apikey":        true,
	"accesstoken":   true,
	"refreshtoken":  true,
	"privatekey":    true,
	"secretkey":     true,
	"accesskey":     true,
	"signingkey":    true,
	"encryptionkey": true,
	"clientid":      true,
	"clientsecret":  true,
	"cardnumber":    true,
}

var separators = regexp.MustCompile(`[^\p{L}\p{N}]+`)

var folder = cases.Fold()

// SensitiveKeys returns the single-token and compound keys considered sensitive.
func SensitiveKeys() []string {
	keys := make([]string, 0, len(sensitiveTokens)+len(sensitiveCompounds))

	for k := range sensitiveTokens {
		keys = append(keys, k)
	}

	for k := range sensitiveCompounds {
		keys = append(keys, k)
	}

	return keys
}

// tokens splits key on separators and camelCase boundaries and case-folds each part.
// "sessionToken" -> [session token], "APIKey" -> [api key], "X-Auth" -> [x auth].
func tokens(key string) []string {
	var out []string

	for _, part := range separators.Split(key, -1) {
		for _, word := range splitCamel(part) {
			if word != "" {
				out = append(out, folder.String(word))
			}
		}
	}

	return out
}

func splitCamel(s string) []string {
	runes := []rune(s)

	var (
		words []string
		start int
	)

	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	return append(words, string(runes[start:]))
}

// IsSensitiveKey reports whether values stored under key must be redacted.
// Matching is case-insensitive and token based, so "pass" or "keyboard" are not sensitive.
func IsSensitiveKey(key string) bool {
	key = strings.TrimSpace(key)

	flat := folder.String(separators.ReplaceAllString(key, ""))
	if sensitiveTokens[flat] || sensitiveCompounds[flat] {
		return true
	}

	parts := tokens(key)
	if len(parts) == 0 {
		return false
	}

	for _, p := range parts {
		if sensitiveTokens[p] {
			return true
		}
	}

	return sensitiveCompounds[strings.Join(parts, "")]
}

// Redact returns constant.ObfuscatedValue when key is sensitive and value otherwise.
func Redact(key string, value any) any {
	if IsSensitiveKey(key) {
		return constant.ObfuscatedValue
	}

	return value
}
