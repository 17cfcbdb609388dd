package config

import (
	"embed"
	"io/fs"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled sample definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		panic(err)
	}
	return sub
}
