// Package services contains stateless domain services: the scoring engine
// that computes weighted courier desirability, and the order dispatcher that
// evaluates candidates and selects the maximum-score winner. Both are pure;
// weight snapshots and candidate rosters are supplied by the application
// layer.
package services
