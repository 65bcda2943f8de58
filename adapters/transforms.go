package adapters

import (
	"strconv"
	"strings"
	"time"
)

// now is replaced in tests
var now = time.Now

// lastTradeLayout is how explorers print trade timestamps (UTC)
const lastTradeLayout = "2006/01/02 03:04:05 PM"

func firstLine(s string) (string, bool) {
	return strings.Split(s, "\n")[0], true
}

func firstWord(s string) (string, bool) {
	return strings.Split(strings.TrimSpace(s), " ")[0], true
}

func removeSpaces(s string) (string, bool) {
	return strings.ReplaceAll(s, " ", ""), true
}

func removeSolMark(s string) (string, bool) {
	return strings.Trim(s, " ◎"), true
}

// strip removes every occurrence of the given tokens
func strip(tokens ...string) Transform {
	return func(s string) (string, bool) {
		for _, token := range tokens {
			s = strings.ReplaceAll(s, token, "")
		}
		return s, true
	}
}

// absentIf marks the field absent when the page shows placeholder
func absentIf(placeholder string) Transform {
	return func(s string) (string, bool) {
		if strings.TrimSpace(s) == placeholder {
			return "", false
		}
		return s, true
	}
}

// daysSince turns a trade timestamp into whole days elapsed, both dates in UTC
func daysSince(s string) (string, bool) {
	t, err := time.Parse(lastTradeLayout, strings.TrimSpace(s))
	if err != nil {
		// unparseable text fails normalization downstream
		return s, true
	}

	y, m, d := now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = t.Date()
	traded := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return strconv.Itoa(int(today.Sub(traded).Hours() / 24)), true
}
