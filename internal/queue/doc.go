// Package queue is the asynchronous task adapter for chronology
// calculations. The HTTP front end enqueues a job and responds
// immediately; a fixed pool of workers drains the buffer, runs the
// estimator (with the randomized fallback policy), records the result,
// and delivers it to the collector.
//
// A job whose delivery exhausts every retry is not dropped silently: its
// record is marked with the error status, the failure is logged at error
// level, and the dispatch failure counter is incremented — the dead-letter
// signal for operators.
package queue
