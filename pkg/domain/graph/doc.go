// Package graph provides the core domain types for representing directed
// graphs of named stages connected by conditional edges.
//
// A graph consists of nodes (stages) connected by edges (legal
// transitions). internal/mediator/statemachine.go uses this package to
// encode the fixed per-tool-call mediation state machine: idle, resolving,
// policy_check, executing, validating, storing, with policy_fail and
// schema_fail branches.
//
// Node Types:
//   - ExecutorNode: a stage that performs work (resolve, execute, sanitize)
//   - RouterNode: a stage that branches based on state conditions
//   - Start/End: special nodes for entry and exit points
//
// This package defines only the domain models; execution-time side effects
// live in the embedding application.
package graph
