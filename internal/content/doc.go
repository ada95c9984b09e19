// Package content loads the wiki's JSON collections from the data directory.
//
// Each collection is checked against an embedded JSON Schema before it is
// decoded, so a malformed file is reported with the collection name and the
// schema failure instead of surfacing later as a zero value.
package content
