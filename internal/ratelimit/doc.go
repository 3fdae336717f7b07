// Package ratelimit bounds how many generation calls may be attempted per
// operation inside a fixed time window.
//
// Windows are fixed, not sliding: the first call after a window expires starts
// a new window with a zero count. Short bursts at window boundaries are
// therefore possible and accepted. A denied call is reported immediately and
// does not consume from the window.
//
// Counter state lives behind the Store interface. MemoryStore serves a single
// process; RedisStore lets several processes share one window.
package ratelimit
