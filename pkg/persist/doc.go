// Package persist provides a small key/value store for client-side state
// that must survive restarts, plus a typed cell over it.
//
// Values are raw JSON documents. A Cell decodes them into a Go type and falls
// back to a default when the key is absent or its value cannot be decoded.
// Every Set on a FileStore rewrites the backing file before returning.
package persist
