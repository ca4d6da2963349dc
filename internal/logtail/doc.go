// Package logtail reads the end of the diagnostic log for the UI log panel.
//
// # Overview
//
// The diagnostic sink writes one zerolog JSON object per line. The log
// view needs the newest few hundred of them, formatted for a terminal, and
// needs them again every time the refresh tick fires. logtail does the two
// halves of that: Read gets the lines, Format makes them readable.
//
// # Reading
//
// Read scans the file once from the start and keeps only the newest
// maxLines lines. The slice it appends to is compacted back to maxLines
// whenever it reaches twice that, so memory stays proportional to the
// lines returned rather than the file size:
//
//	lines, err := logtail.Read(path, 500)
//
// A non-positive maxLines returns every line. A missing file returns nil,
// nil; the sink creates the file on its first write, and the view shows
// "No log entries" until then. Lines up to 1 MiB are accepted.
//
// # Parsing
//
// Parse decodes one line into an Entry. The time, level, component,
// message and error keys get their own fields; everything else lands in
// Fields as a string. Numbers keep their JSON spelling (UseNumber), so
// "attempt":3 becomes "3" rather than "3e+00". Anything that is not a JSON
// object is reported with ok false.
//
// # Formatting
//
// Format turns a line into:
//
//	2025-12-01 08:00:00 INFO [wifi] wifi_state – from=idle to=scanning
//
// The pieces, in order:
//
//   - the time in local time, omitted when absent
//   - the level in upper case, INFO when absent
//   - the component in brackets, omitted when absent
//   - the message
//   - after " – ", the extra fields sorted by key, then error=
//
// Lines that are not JSON are returned unchanged, so a hand-edited or
// truncated log still displays. FormatLines applies Format to a slice.
//
// The UI colours each of these pieces separately; it relies on this exact
// layout, including the " – " separator.
package logtail
