// Package datefetch acquires an authoritative calendar date over HTTP.
//
// # Overview
//
// A Service owns a list of time endpoints and answers FetchDate once per
// tick. Most ticks are answered without any I/O: from the cache while it is
// fresh, with nothing while the link is down, and with nothing while a
// failed sweep is still inside its backoff window. Only when none of those
// apply does the service sweep the endpoints.
//
// # Sweep
//
// A sweep walks the endpoints round-robin, one request each, and stops at
// the first that returns a parseable date:
//
//	endpoints: [A B C D], NextEndpoint = 2
//
//	sweep order: C → D → A → B
//	C succeeds  → cache date, NextEndpoint = 3 (D goes first next time)
//	all fail    → ALL_ENDPOINTS_FAILED, NextEndpoint = 3
//
// Starting after the last endpoint that answered spreads load across
// providers over a long run, and advancing by one after a failed sweep
// keeps a single dead endpoint from always being tried first. A cancelled
// context ends the sweep early.
//
// # Timing
//
//   - FetchInterval (1h): how long a success is served from the cache
//   - RetryInterval (5s): how long after a failed sweep the next may start
//   - Timeout (3s): the bound on each request
//
// All three are measured against clock.Ticks, a wrapping millisecond
// counter, so the cache and the backoff stay correct across the counter
// rolling over.
//
// # Errors
//
// LastError reports why the last FetchDate had no date. While the link is
// down that is the gate (NO_NETWORK without an adapter, NO_WIFI while not
// associated); otherwise it is the result of the last sweep. Each failed
// request is classified with fault.Classify and logged as
// date_fetch_failed with the endpoint and code; a whole failed sweep is
// logged once as date_fetch_all_failed.
//
// # Cooperation with the Controller
//
// SweepDue reports whether the next FetchDate would go to the network. The
// countdown controller uses it to render a Fetching frame before the sweep
// starts. Reset forgets the cache, the backoff and the sweep position.
//
// # Testing Considerations
//
// The Getter, the Link and the Clock are interfaces. Tests pair a
// clock.Manual with a scripted getter to drive the cache, the backoff and
// the round-robin order without sleeping.
package datefetch
