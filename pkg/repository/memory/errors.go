package memory

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound marks a mutation that targeted a row which does not exist.
// Single-row fetches never return it: an absent row is nil, nil there.
var ErrNotFound = goerr.New("record not found")
