/*
Package app contains the building blocks of an application: the Router
dispatching messages to handlers, the decorator chain and the Engine.

The Engine is the only place where operations are admitted. It processes one
operation at a time, each against a fresh cache of the committed state, and
commits the result before the next operation starts. A failing operation is
discarded as a whole.
*/
package app
