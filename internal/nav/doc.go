// Package nav implements the screen state machine and keeps the platform
// back-stack consistent with it.
//
// Controller decides the next Screen for an Event. History is the back-stack
// log, and Synchronizer mirrors forward moves into it and normalizes every
// back signal so the rendered screen and the top record never diverge.
package nav
