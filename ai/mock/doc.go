// Package mock provides deterministic test doubles for the ai interfaces.
// All doubles count calls and accept injectable behavior via function fields.
package mock
