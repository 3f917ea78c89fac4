// Package services implements the core application services behind the
// driving ports.
package services
