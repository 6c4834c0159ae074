// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package voting holds the poll rules: creating and editing polls, the
// private-poll password guard, one ballot per user and the per-option tally.
//
// Every failure a caller can fix or should see is an *Error whose Kind is one
// of the Err* sentinels. Anything else is an infrastructure failure.
package voting
