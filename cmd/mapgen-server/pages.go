package main

import "io/fs"

// PagesFS exposes the bundled wizard pages rooted at the pages
// directory so the file server resolves / to index.html.
func PagesFS() fs.FS {
	sub, err := fs.Sub(pages, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}
