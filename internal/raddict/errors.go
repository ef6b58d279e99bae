package raddict

import "errors"

// ErrStackOverflow indicates a descriptor's depth exceeds MaxTLVStack.
var ErrStackOverflow = errors.New("raddict: descriptor depth exceeds MaxTLVStack")
