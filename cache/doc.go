// Package cache declares the expiring key/value store contract consumed by
// the cache-aside scrap pipeline.
//
// The package deliberately contains no implementation: backends live in
// internal/cacheinfra (Redis for networked deployments, an in-process
// sturdyc-backed store for single-node use and tests) and are injected at
// process startup. Consumers hold the Store interface only.
//
// Failure semantics are availability-first. A backend that cannot be reached
// degrades reads to cache misses and leaves writes to the next repopulation;
// it never fails the request that triggered the cache operation.
package cache
