// Package logging is the persistence bridge between console severities and
// the on-disk log.
//
// This package wraps zap with a syslog-style severity model: eight levels
// numbered 0 (emergency) through 7 (debug), where a message is written only
// when its numeric value is at or below the configured threshold. That is the
// opposite polarity from zap's own levels, so the threshold check happens
// here and the underlying zap core accepts everything it is given.
//
// # Line Format
//
// Each entry is one line:
//
//	2026-08-31T10:30:45.123+0000 [ERROR] device unreachable
//
// Severities that zap cannot name natively (emergency, alert, critical,
// notice) are written in the nearest zap bucket with the exact syslog keyword
// attached as a "severity" field.
//
// # Durability
//
// The file WriteSyncer is an unbuffered *os.File, so each accepted entry
// reaches the OS before the logging call returns. These logs exist for
// post-mortem diagnosis of crashed runs; throughput is a non-goal.
//
// # Remote Forwarding
//
// When Config.SyslogAddr is set, every persisted entry is also sent as a UDP
// datagram to the named collector via a zap Tee core. Delivery is
// fire-and-forget; the local file remains the source of truth.
package logging
