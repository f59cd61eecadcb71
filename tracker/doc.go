// Package tracker holds the project state machine of the installation dashboard.
//
// Every operation takes a project and returns a new one; the input is never
// modified, so a failed validation leaves the caller's record untouched.
// Progress is derived from milestones and recomputed whenever they change.
package tracker
