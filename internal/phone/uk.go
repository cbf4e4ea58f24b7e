// Package phone validates and normalizes UK mobile numbers into the
// canonical international form +447XXXXXXXXX.
//
// Format runs four stages in order: sanitize, raw validation, prefix
// transformation and final length validation. The first stage to fail
// determines the returned *InvalidNumberError.
package phone

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// CanonicalPrefix is the prefix every formatted number starts with
	CanonicalPrefix = "+447"
	// CanonicalLength is the exact length of a formatted number
	CanonicalLength = 13

	minRawLength = 11
	maxRawLength = 15

	nationalPrefix      = "07"
	internationalPrefix = "447"
)

// Format normalizes input into +447XXXXXXXXX.
// input may be nil, a string, a byte slice, a json.Number or any integer or
// float value. The returned error is always an *InvalidNumberError.
func Format(input any) (string, error) {
	number, err := sanitize(input)
	if err != nil {
		return "", err
	}

	if err := validateRaw(number); err != nil {
		return "", err
	}

	formatted, err := transformPrefix(number)
	if err != nil {
		return "", err
	}

	if err := validateFinal(formatted); err != nil {
		return "", err
	}

	return formatted, nil
}

// IsValid reports whether Format accepts input
func IsValid(input any) bool {
	_, err := Format(input)
	return err == nil
}

// sanitize converts input to text, trims surrounding whitespace and drops
// internal spaces. Tabs and other whitespace inside the number are kept.
func sanitize(input any) (string, error) {
	sanitized := strings.TrimSpace(toText(input))
	sanitized = strings.ReplaceAll(sanitized, " ", "")
	if sanitized == "" {
		return "", reject(KindEmptyInput)
	}
	return sanitized, nil
}

func toText(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// validateRaw checks the character set, then length and prefix. Numbers that
// already start with +447 skip the length and prefix checks; validateFinal
// covers them.
func validateRaw(number string) error {
	if !hasValidCharacters(number) {
		return reject(KindInvalidCharacters)
	}

	if strings.HasPrefix(number, CanonicalPrefix) {
		return nil
	}

	if len(number) < minRawLength {
		return reject(KindTooShort)
	}
	if len(number) > maxRawLength {
		return reject(KindTooLong)
	}

	if !hasUKPrefix(number) {
		return reject(KindInvalidPrefix)
	}

	return nil
}

// hasValidCharacters accepts ASCII digits and a single leading '+'
func hasValidCharacters(number string) bool {
	for i := 0; i < len(number); i++ {
		c := number[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '+' && i == 0 {
			continue
		}
		return false
	}
	return true
}

func hasUKPrefix(number string) bool {
	return strings.HasPrefix(number, nationalPrefix) ||
		strings.HasPrefix(number, internationalPrefix) ||
		strings.HasPrefix(number, CanonicalPrefix)
}

// transformPrefix rewrites the first occurrence of a national or bare
// international prefix to +447.
func transformPrefix(number string) (string, error) {
	switch {
	case strings.HasPrefix(number, nationalPrefix):
		return strings.Replace(number, nationalPrefix, CanonicalPrefix, 1), nil
	case strings.HasPrefix(number, internationalPrefix):
		return strings.Replace(number, internationalPrefix, CanonicalPrefix, 1), nil
	case strings.HasPrefix(number, CanonicalPrefix):
		return number, nil
	default:
		return "", reject(KindInvalidPrefix)
	}
}

func validateFinal(number string) error {
	if len(number) < CanonicalLength {
		return reject(KindFinalTooShort)
	}
	if len(number) > CanonicalLength {
		return reject(KindFinalTooLong)
	}
	return nil
}
