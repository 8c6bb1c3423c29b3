// Package cache implements a single-process, in-memory key-value cache with
// a fixed entry capacity and a fixed time-to-live.
//
// Design points:
//   - A map indexes keys to slots in an arena of entries; the entries are
//     threaded into a doubly linked recency list by slot handles
//   - Get, Put, Delete, Len and Clear run in O(1), except for the expiration
//     sweep a Put performs when the cache is full, which is O(n)
//   - One mutex guards the map and the list together
//   - Expiration is lazy: there is no background goroutine, so expired
//     entries linger (and count in Len) until Get or a full-cache Put finds them
//   - When a new key arrives at capacity, expired entries are purged first and
//     the LRU entry is evicted only if that freed nothing
package cache
