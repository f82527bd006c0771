package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"recipegraph/internal/dom"
	"recipegraph/internal/util"
)

// ErrNoDocument reports a page that could not be loaded. The page
// contributes nothing to the run.
var ErrNoDocument = errors.New("no document for page")

type Loader interface {
	Load(title string) (*dom.Document, error)
}

// DirLoader reads pre-fetched pages from Dir, one "<Title_with_underscores>.html"
// file per page.
type DirLoader struct {
	Dir string
}

func (l DirLoader) Load(title string) (*dom.Document, error) {
	path := PageFile(l.Dir, title)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoDocument, title, err)
	}
	defer f.Close()

	doc, err := dom.Parse(title, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoDocument, title, err)
	}
	return doc, nil
}

func PageFile(dir, title string) string {
	return filepath.Join(dir, strings.ReplaceAll(strings.TrimSpace(title), " ", "_")+".html")
}

// ListPages returns the titles of every page file in dir, sorted.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		out = append(out, util.PageTitle(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))))
	}
	sort.Strings(out)
	return out, nil
}
