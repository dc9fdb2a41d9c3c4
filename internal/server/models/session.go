// Package models defines the data shapes shared by the store, the services
// and the HTTP layer.
package models

// Blob is a serialized MTProto credential. Its contents belong to the
// remote client; everything else only stores and forwards it unchanged.
type Blob string

// Empty reports whether the blob carries no prior connection state.
func (b Blob) Empty() bool {
	return b == ""
}
