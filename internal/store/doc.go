// Package store defines the persistence ports of the scheduler: review
// records keyed by (learner, word) and the shared word list. Implementations
// live under internal/platform and are selected at startup.
package store
