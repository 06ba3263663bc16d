// Package formats classifies string values into semantic format tags.
package formats

import (
	"net/netip"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/mcncl/jsonsynth/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uriRegex      = regexp.MustCompile(`^(?i:https?)://[^\s/?#]+[^\s]*$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:?\d{2})?$`) // 2006-01-02T15:04:05Z and the space-separated variant
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	uuidRegex     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	ipv4Regex     = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
)

type rule struct {
	tag   models.FormatTag
	match func(string) bool
}

// rules are tried in order; the first match wins. date-time precedes date so
// that a timestamp is never reported as a bare date.
var rules = []rule{
	{models.FormatEmail, emailRegex.MatchString},
	{models.FormatURI, uriRegex.MatchString},
	{models.FormatDateTime, isDateTime},
	{models.FormatDate, isDate},
	{models.FormatTime, isTime},
	{models.FormatUUID, isUUID},
	{models.FormatIPv4, isIPv4},
}

// Detect returns the format of s, or models.FormatNone.
func Detect(s string) models.FormatTag {
	for _, r := range rules {
		if r.match(s) {
			return r.tag
		}
	}
	return models.FormatNone
}

func isDateTime(s string) bool {
	if !dateTimeRegex.MatchString(s) {
		return false
	}
	if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
		return false
	}
	_, err := time.Parse("15:04:05", s[11:19])
	return err == nil
}

func isDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	if !timeRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// isUUID accepts only the canonical hyphenated form; uuid.Parse alone would
// also take urn and braced spellings.
func isUUID(s string) bool {
	if !uuidRegex.MatchString(s) {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isIPv4(s string) bool {
	if !ipv4Regex.MatchString(s) {
		return false
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
