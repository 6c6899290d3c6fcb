package book

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"nounmap/internal/logging"
)

// ErrNoContainer is returned when the archive cannot be opened as an EPUB.
var ErrNoContainer = errors.New("book: not a readable epub archive")

const containerPath = "META-INF/container.xml"

// Options controls ingestion.
type Options struct {
	// ChapterLimit caps the documents visited, headed or not. 0 is unlimited.
	ChapterLimit int
	Logger       *slog.Logger
}

// Stats summarises one ingestion.
type Stats struct {
	Documents  int `json:"documents"`
	Chapters   int `json:"chapters"`
	Untitled   int `json:"untitled"`
	Malformed  int `json:"malformed"`
	Duplicates int `json:"duplicates"`
	Paragraphs int `json:"paragraphs"`
}

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Manifest []struct {
		ID        string `xml:"id,attr"`
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

// Load reads the EPUB at path into a ContentMap.
func Load(ctx context.Context, path string, opts Options) (*ContentMap, Stats, error) {
	logger := logging.NewComponentLogger(opts.Logger, "book")

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %s: %v", ErrNoContainer, path, err)
	}
	defer archive.Close()

	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[f.Name] = f
	}

	order := documentOrder(files, archive.File, logger)

	content := NewContentMap()
	var stats Stats
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		if opts.ChapterLimit > 0 && stats.Documents >= opts.ChapterLimit {
			break
		}
		stats.Documents++

		title, paragraphs, ok, err := readDocument(files[name])
		if err != nil {
			stats.Malformed++
			logging.WarnWithContext(logger, "document skipped", "document_malformed",
				logging.String("document", name),
				logging.String(logging.FieldErrorHint, "document could not be parsed as xhtml"),
				logging.String(logging.FieldImpact, "its paragraphs are not analysed"),
				logging.Error(err),
			)
			continue
		}
		if !ok {
			stats.Untitled++
			logger.Debug("document has no heading", logging.String("document", name))
			continue
		}
		if content.Set(title, paragraphs) {
			stats.Duplicates++
			logger.Debug("duplicate chapter title replaced",
				logging.String("title", title),
				logging.String("document", name),
			)
		}
	}
	stats.Chapters = content.Len()
	stats.Paragraphs = content.ParagraphCount()

	logger.Info("book loaded",
		logging.String(logging.FieldBook, path),
		logging.Int("documents", stats.Documents),
		logging.Int("chapters", stats.Chapters),
		logging.Int("paragraphs", stats.Paragraphs),
	)
	return content, stats, nil
}

func readDocument(f *zip.File) (string, []string, bool, error) {
	rc, err := f.Open()
	if err != nil {
		return "", nil, false, err
	}
	defer rc.Close()
	return parseDocument(rc)
}

// documentOrder resolves the reading order: OPF spine, then OPF manifest
// XHTML items, then every (x)html entry in archive order.
func documentOrder(files map[string]*zip.File, all []*zip.File, logger *slog.Logger) []string {
	if order, err := packageOrder(files); err == nil && len(order) > 0 {
		return order
	} else if err != nil {
		logger.Debug("package document unusable, using archive order", logging.Error(err))
	}

	var order []string
	for _, f := range all {
		if isXHTMLName(f.Name) {
			order = append(order, f.Name)
		}
	}
	return order
}

func packageOrder(files map[string]*zip.File) ([]string, error) {
	cf, ok := files[containerPath]
	if !ok {
		return nil, fmt.Errorf("missing %s", containerPath)
	}
	var c container
	if err := decodeXML(cf, &c); err != nil {
		return nil, fmt.Errorf("decode container: %w", err)
	}
	if len(c.Rootfiles) == 0 || c.Rootfiles[0].FullPath == "" {
		return nil, errors.New("container lists no rootfile")
	}
	opfPath := c.Rootfiles[0].FullPath
	of, ok := files[opfPath]
	if !ok {
		return nil, fmt.Errorf("missing package document %s", opfPath)
	}
	var pkg packageDoc
	if err := decodeXML(of, &pkg); err != nil {
		return nil, fmt.Errorf("decode package document: %w", err)
	}

	base := path.Dir(opfPath)
	hrefs := make(map[string]string, len(pkg.Manifest))
	var manifestOrder []string
	for _, item := range pkg.Manifest {
		full := path.Clean(path.Join(base, item.Href))
		if _, ok := files[full]; !ok {
			continue
		}
		if !isXHTMLMedia(item.MediaType) && !isXHTMLName(full) {
			continue
		}
		hrefs[item.ID] = full
		manifestOrder = append(manifestOrder, full)
	}

	var order []string
	seen := make(map[string]struct{})
	for _, ref := range pkg.Spine {
		full, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		if _, dup := seen[full]; dup {
			continue
		}
		seen[full] = struct{}{}
		order = append(order, full)
	}
	if len(order) > 0 {
		return order, nil
	}
	return manifestOrder, nil
}

func decodeXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(io.LimitReader(rc, 8<<20)).Decode(v)
}

func isXHTMLMedia(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == "application/xhtml+xml" || mediaType == "text/html"
}

func isXHTMLName(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}
