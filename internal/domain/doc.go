// Package domain contains the core business entities, value objects, and
// domain logic of the vocabulary service: words, per-learner review records
// and the ratings that drive the scheduler. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
