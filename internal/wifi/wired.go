package wifi

import "github.com/atarukun/home/internal/fault"

// Wired is a link for hosts whose network is already up, such as a desktop
// on ethernet. It reports connected from the first poll and never touches
// an adapter.
type Wired struct{}

func (Wired) Poll() bool            { return true }
func (Wired) IsConnected() bool     { return true }
func (Wired) Elapsed() float64      { return 0 }
func (Wired) Available() bool       { return true }
func (Wired) HasCredentials() bool  { return true }
func (Wired) LastError() fault.Code { return fault.Clear }
