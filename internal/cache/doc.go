// Package cache provides an in-memory LRU cache for computed word-timing
// schedules, keyed on content. It avoids re-running the estimator or the
// alignment conversion when the same item is played again.
package cache
