// Package domain contains the core business entities for Campsync.
// It has no dependencies on other internal packages.
package domain
