package timeapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/atarukun/home/internal/calendar"
	"github.com/atarukun/home/internal/fault"
)

// ParseError reports a body a parser could not turn into a date.
type ParseError struct {
	Parser ParserID
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s response: %s: %v", e.Parser, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s response: %s", e.Parser, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FaultCode implements fault.Coder.
func (e *ParseError) FaultCode() fault.Code { return fault.CodeParse }

// ParseFunc extracts a calendar date from a raw response body.
type ParseFunc func(body []byte) (calendar.Date, error)

// isoPayload is the shape shared by the WorldTimeAPI-compatible providers.
type isoPayload struct {
	Datetime string `json:"datetime"`
}

// timeAPIIOPayload mirrors timeapi.io's current/zone response. Pointers tell a
// missing field apart from zero.
type timeAPIIOPayload struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// ParseWorldTimeAPI reads the "datetime" field of worldtimeapi.org.
func ParseWorldTimeAPI(body []byte) (calendar.Date, error) {
	return parseISOField(ParserWorldTimeAPI, body)
}

// ParseWorldTimeIP reads the "datetime" field of worldtimeapi.org's
// client-IP lookup.
func ParseWorldTimeIP(body []byte) (calendar.Date, error) {
	return parseISOField(ParserWorldTimeIP, body)
}

// ParseTimeNow reads the "datetime" field of time.now.
func ParseTimeNow(body []byte) (calendar.Date, error) {
	return parseISOField(ParserTimeNow, body)
}

// ParseTimeAPIIO reads the integer year/month/day fields of timeapi.io.
func ParseTimeAPIIO(body []byte) (calendar.Date, error) {
	var payload timeAPIIOPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return calendar.Date{}, &ParseError{Parser: ParserTimeAPIIO, Reason: "decode json", Err: err}
	}
	if payload.Year == nil || payload.Month == nil || payload.Day == nil {
		return calendar.Date{}, &ParseError{Parser: ParserTimeAPIIO, Reason: "missing year/month/day"}
	}
	date, err := calendar.NewDate(*payload.Year, *payload.Month, *payload.Day)
	if err != nil {
		return calendar.Date{}, &ParseError{Parser: ParserTimeAPIIO, Reason: "invalid date", Err: err}
	}
	return date, nil
}

func parseISOField(id ParserID, body []byte) (calendar.Date, error) {
	var payload isoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return calendar.Date{}, &ParseError{Parser: id, Reason: "decode json", Err: err}
	}
	value := strings.TrimSpace(payload.Datetime)
	if value == "" {
		return calendar.Date{}, &ParseError{Parser: id, Reason: "missing datetime"}
	}
	date, err := ExtractISODate(value)
	if err != nil {
		return calendar.Date{}, &ParseError{Parser: id, Reason: "invalid datetime", Err: err}
	}
	return date, nil
}

// ExtractISODate pulls the date out of an ISO-8601 datetime such as
// "2025-10-30T01:23:45.123456+00:00". The value must contain a 'T' separator
// and a date part of exactly three dash-delimited runs of ASCII digits.
func ExtractISODate(value string) (calendar.Date, error) {
	datePart, _, found := strings.Cut(value, "T")
	if !found {
		return calendar.Date{}, fmt.Errorf("datetime %q missing 'T' separator", value)
	}
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return calendar.Date{}, fmt.Errorf("date %q does not have three components", datePart)
	}
	var nums [3]int
	for i, part := range parts {
		if !allDigits(part) {
			return calendar.Date{}, fmt.Errorf("date component %q is not a number", part)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("date component %q: %w", part, err)
		}
		nums[i] = n
	}
	return calendar.NewDate(nums[0], nums[1], nums[2])
}

// allDigits rejects the signs and empty strings strconv.Atoi would accept or
// report less clearly.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
