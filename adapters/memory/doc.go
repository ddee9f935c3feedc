// Package memory provides in-memory implementations of the statebridge
// backend capabilities: a keyed realtime collection (Realtime), an
// authentication client with bcrypt credentials and JWT session tokens
// (Client), and a reducer-backed store (Store).
//
// The adapters are meant for tests and local development. Callbacks fire
// synchronously on the caller's goroutine; the Store serializes Dispatch
// with a mutex, matching the contract the bridges rely on.
package memory
