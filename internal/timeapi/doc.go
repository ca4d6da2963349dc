// Package timeapi talks to the public time services that supply the current
// calendar date.
//
// # Overview
//
// Each supported service reports the date in its own JSON schema. An
// Endpoint pairs a URL with a ParserID; the ParserID is resolved to a parse
// function when the endpoint is built, so an unknown parser is a
// configuration error and never a fetch-time failure.
//
// # Supported Services
//
//   - worldtimeapi: GET /api/timezone/Etc/UTC, "datetime" ISO-8601 field
//   - timeapi.io: GET /api/Time/current/zone, integer "year", "month", "day"
//   - worldtimeapi-ip: GET /api/ip, "datetime" ISO-8601 field
//   - time.now: GET /developer/api/timezone/Etc/UTC, "datetime" ISO-8601 field
//
// The three ISO providers share one extraction rule: split the value on
// 'T', split the date on '-', and require exactly three components of
// ASCII digits forming a valid calendar date. Signs, spaces and other
// numerals are rejected, so "+2025-+12-+25T00:00:00Z" is malformed rather
// than Christmas Day.
//
// # Client
//
// Client.Get issues one GET with a per-call timeout layered on the
// caller's context, sends a fixed User-Agent, and reads at most 64 KiB of
// the body. DefaultEndpoints lists the services above in priority order;
// the fetch service walks the list round-robin.
//
// # Errors
//
// Parsers return *ParseError and Client.Get returns *StatusError for HTTP
// statuses of 400 and above. Both implement fault.Coder so the fetch
// service can classify them without string matching. Transport errors are
// returned wrapped with %w and classified by fault.Classify.
//
// # Usage
//
//	client := timeapi.NewClient(nil)
//	ep := timeapi.DefaultEndpoints()[0]
//	body, err := client.Get(ctx, ep.URL, 3*time.Second)
//	if err != nil {
//		return err
//	}
//	date, err := ep.Parse(body)
package timeapi
