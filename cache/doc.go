// Package cache memoizes the parsed value of each filesystem path.
//
// An entry is absent until the path is first built and is then replaced
// wholesale by every reload; it is never evicted on its own. Concurrent
// requests for the same path share one build, and a build that finishes
// after a later-started one has stored never overwrites the fresher value.
package cache
