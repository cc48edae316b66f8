// Package audit contains implementations of usecase.AuditLog.
//
//   - MemoryLog: process-local counters and bounded per-lot history, for tests
//     and single-instance deployments
//   - RedisLog: the same data in Redis (hash counters, capped lists, booking
//     records with a TTL)
package audit
