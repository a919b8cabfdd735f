// Package types defines the value types of the yo tracker (quantities,
// priorities, kinds, statuses, timestamps, users), their text codecs, the
// projected Item and Project state, and the standard errors.
package types
