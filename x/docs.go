/*
Package x contains the standard extensions of payday.

Extensions implement common functionality (Handler, Decorator,
Initializer etc.) and are combined together by the app package to
construct the distribution engine.

This package provides the authentication helpers shared by all
extensions. Signer identities arrive already verified. Extensions only
check whether a required address is among them.
*/
package x
