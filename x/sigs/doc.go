/*
Package sigs provides basic authentication middleware that places the
signers of a transaction in the context.

Signatures are verified before an operation reaches the application. The
transaction only carries the list of verified signer conditions, and the
Decorator exposes them to handlers through the Authenticate type.
*/
package sigs
