// Package driven defines the outbound ports: interfaces the core depends
// on and adapters implement (connectors, storage, reporting).
package driven
