// Package driving defines interfaces that external actors (CLI, TUI)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
// Each interface is owned by exactly one state owner in
// internal/core/services. No state owner calls another directly;
// composition happens only in the driving adapters.
package driving
