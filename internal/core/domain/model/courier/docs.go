// Package courier implements the Courier aggregate: the courier profile the
// dispatch coordinator scores and the earnings accrual credits. Couriers are
// created when a user is promoted to the courier role, mutated by GPS pings
// and accrual, and never deleted, only set Offline.
package courier
