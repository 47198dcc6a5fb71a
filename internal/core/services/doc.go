// Package services implements the driving ports: the corpus build
// pipeline, retrieval over the compiled bundle, catalog browsing and
// the watch/rebuild loop. Services orchestrate domain logic and driven
// adapters; they hold no business rules of their own beyond wiring.
package services
