// Package sources provides interfaces and implementations for retrieving
// game catalogs from various external sources.
//
// The package defines the CatalogHandler interface which abstracts the
// process of validating a source configuration and fetching a catalog from
// it. Every handler produces the same strongly-typed Document and a SHA256
// hash of the data it read, which the sync manager uses for change detection.
//
// Current implementations:
//   - fileCatalogHandler: reads a JSON or YAML catalog document from the local filesystem
//   - gitCatalogHandler: reads a catalog document from a Git repository cloned into memory
//   - apiCatalogHandler: reads games, categories and publishers from an upstream catalog API
//   - databaseCatalogHandler: reads the games, categories and publishers tables
//     from a sqlite or PostgreSQL database
//
// Documents read from files, Git and the upstream API are validated against
// the embedded catalog JSON schema before they are decoded.
package sources
