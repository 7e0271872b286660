package sources

const testCatalogJSON = `{
  "version": "1.0.0",
  "lastUpdated": "2024-05-01T12:00:00Z",
  "categories": [
    {"id": 1, "name": "Action", "description": "Fast paced games"},
    {"id": 2, "name": "Puzzle"}
  ],
  "publishers": [
    {"id": 10, "name": "Acme"},
    {"id": 20, "name": "Beta"}
  ],
  "games": [
    {"id": 1, "title": "Sky Racer", "starRating": 4.5, "category": {"id": 1, "name": "Action"}, "publisher": {"id": 10, "name": "Acme"}},
    {"id": 2, "title": "Dune Runner", "category": {"id": 1}, "publisher": {"name": "Beta"}},
    {"id": 3, "title": "Tile Drop", "category": {"name": "Puzzle"}, "publisher": {"id": 10}}
  ]
}`

const testCatalogYAML = `version: "1.0.0"
games:
  - id: 1
    title: Sky Racer
    category: {name: Action}
    publisher: {name: Acme}
  - id: 2
    title: Dune Runner
    category: {name: Action}
    publisher: {name: Beta}
  - id: 3
    title: Tile Drop
    category: {name: Puzzle}
    publisher: {name: Acme}
`
