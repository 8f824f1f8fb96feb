// Package cache provides small in-process caches used in front of slower
// lookups such as the weather cache file.
package cache

// Cache is a keyed store of values that may forget entries at any time.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Len() int
}
