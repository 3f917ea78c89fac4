// Package driving defines the inbound ports: interfaces the CLI and other
// entry points use to drive the core services.
package driving
