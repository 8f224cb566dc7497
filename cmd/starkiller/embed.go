package main

import (
	_ "embed"

	"github.com/GamingDebugged/starkiller-sub002/internal/catalog"
)

// The default catalog ships in the binary so a fresh install can run a
// campaign without any content files on disk.
//
//go:embed catalog.json
var defaultCatalog []byte

func init() {
	catalog.SetDefault(defaultCatalog)
}
