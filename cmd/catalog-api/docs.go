// Package docs provides OpenAPI documentation for the Game Catalog API
//
//	@title			Game Catalog API
//	@version		0.1
//	@description	API for browsing a game catalog by category and publisher.
//	@description	Every facet selection narrows the list of games; the facet values themselves
//	@description	always cover the whole catalog.
//
//	@contact.url	https://github.com/stacklok/game-catalog-server
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@tag.name			games
//	@tag.description	Game queries and lookups
//
//	@tag.name			facets
//	@tag.description	Category and publisher values
//
//	@tag.name			catalog
//	@tag.description	Catalog metadata and sync status
//
//	@tag.name			system
//	@tag.description	System health and version information
package main

//go:generate swag init --v3.1 -g docs.go -d .,../../internal/api -o docs --outputTypes go --parseInternal
