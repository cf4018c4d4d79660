// Package cache defines the pluggable key-value [Backend] used to memoize Spotify API responses and tokens.
//
// # Contract
//
// A [Backend] has two operations. Fetch returns the stored value and whether it was found.
// Store saves a value and returns it unchanged, so call sites can store and return in one step.
// Backends are infallible from the caller's point of view: storage errors are logged and surface as a miss.
//
// # Implementations
//
//   - [Null] : pass-through default; every fetch misses and nothing is retained
//   - [Memory] : process-local map guarded by a RWMutex
//   - [SQLite] : persistent table created by the embedded migrations in package shared
//   - [Redis] : shared store with optional TTL
//   - [Recording] : wraps another backend and counts hits, misses and stores
//
// [Open] builds a backend from its identifier ("null", "memory", "sqlite", "redis").
//
// Expiry is a backend concern. Callers never check the age of a cached value.
package cache
