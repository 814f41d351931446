/*
Package errors implements the error model used across payday.

Every error returned by a handler should wrap one of the root errors declared
with Register. A root error carries a numeric code that survives any number of
Wrap calls, so callers can test the category of a failure with

	if rewards.ErrTooEarly.Is(err) { ... }

regardless of how much context was added on the way up.

Extensions that need a category not covered here register their own root
errors, using a code range that does not collide with this package (0-99 is
reserved for payday core).

A stack trace is attached at the first Wrap. Format an error with %+v to print
it, %v to get the message followed by the creation frame.
*/
package errors
