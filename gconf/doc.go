/*
Package gconf stores the configuration of an extension in the state.

An extension keeps a single configuration under the "_c:<package>" key. It
is read from the genesis when the state is created and can later be patched
by the owner it names, through any message implementing PatchMsg. A
configuration is validated every time it is saved.
*/
package gconf
