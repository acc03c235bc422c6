// Package ws streams live calculation records to WebSocket clients.
//
// The Hub broadcasts the current record list to every connected client on
// a fixed interval and immediately on connect. Clients are read-only
// observers; inbound frames are consumed solely for control messages.
package ws
