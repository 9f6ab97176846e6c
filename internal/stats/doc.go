// Package stats counts payment attempt decisions made by the rate limiter.
//
// Recording is best effort: callers log a failed Record and keep serving.
// MemoryRecorder is meant for tests and single-instance development;
// RedisRecorder aggregates counters across instances with HINCRBY:
//
//	<prefix>:total                 allowed / denied
//	<prefix>:minute:200601021504   allowed / denied, expires after TTL
//	<prefix>:gateway               "<gateway>:allowed" / "<gateway>:denied"
//	<prefix>:key:<ip:user>         allowed / denied, only WithTrackKeys
package stats
