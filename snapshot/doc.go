// Package snapshot persists point-in-time copies of the board and
// provides the epoch-pinned reader used to take them consistently
// while the writer keeps mutating.
package snapshot
