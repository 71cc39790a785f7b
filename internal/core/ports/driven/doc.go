// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Gateway: The typed request layer over the RAG backend's HTTP API.
//     All schema-variant detection lives behind it; core code never
//     branches on wire shape.
//   - ConfigStore: Application configuration.
//
// # Optional Interfaces
//
//   - Notifier: The user-facing notification channel. Can be nil; core
//     services degrade to silent operation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
