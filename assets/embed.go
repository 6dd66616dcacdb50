// Package assets bundles the default word lists and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed start.txt dictionary.txt sql/*.sql
var FS embed.FS

// StartFile and DictionaryFile name the embedded default word lists.
const (
	StartFile      = "start.txt"
	DictionaryFile = "dictionary.txt"
)

// Migrations returns the embedded sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is embedded above, so Sub cannot fail.
		panic(err)
	}
	return sub
}
