package testsupport

import (
	"archive/zip"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Document is one XHTML file of a synthetic EPUB. An empty Title produces a
// document without a heading. Raw, when set, replaces the generated markup.
type Document struct {
	Title      string
	Paragraphs []string
	Raw        string
}

// WriteEPUB writes a minimal EPUB with a container, an OPF whose spine lists
// docs in order, and one XHTML file per document.
func WriteEPUB(t testing.TB, path string, docs ...Document) {
	t.Helper()
	spine := make([]int, len(docs))
	for i := range spine {
		spine[i] = i
	}
	WriteEPUBWithSpine(t, path, spine, docs...)
}

// WriteEPUBWithSpine is WriteEPUB with the spine listing the documents at the
// given indexes. The manifest keeps docs in argument order.
func WriteEPUBWithSpine(t testing.TB, path string, spine []int, docs ...Document) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	write := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}

	write("mimetype", "application/epub+zip")
	write("META-INF/container.xml", `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`)

	var manifest, refs strings.Builder
	for i, doc := range docs {
		id := fmt.Sprintf("doc%03d", i)
		href := fmt.Sprintf("text/%s.xhtml", id)
		fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="application/xhtml+xml"/>`+"\n", id, href)
		write("OEBPS/"+href, documentMarkup(doc))
	}
	for _, i := range spine {
		fmt.Fprintf(&refs, `    <itemref idref="doc%03d"/>`+"\n", i)
	}
	write("OEBPS/content.opf", `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
`+manifest.String()+`  </manifest>
  <spine>
`+refs.String()+`  </spine>
</package>`)

	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func documentMarkup(doc Document) string {
	if doc.Raw != "" {
		return doc.Raw
	}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml"><head><title>x</title></head><body>` + "\n")
	if doc.Title != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(doc.Title))
	}
	for _, p := range doc.Paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p))
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// Repeat returns n copies of paragraph.
func Repeat(paragraph string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = paragraph
	}
	return out
}
