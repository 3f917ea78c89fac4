// Package basecamp implements the connector for the Basecamp classic API.
// It lists projects, paginates each project's to-dos with per-item detail
// expansion, and builds one document per to-do with its comment thread
// attached as children.
package basecamp
