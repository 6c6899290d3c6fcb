package book

// Chapter is one titled document of a book.
type Chapter struct {
	Title      string
	Paragraphs []string
}

// ContentMap is the ordered set of chapters of a book. A title that appears
// twice keeps its first position and takes the later paragraphs.
type ContentMap struct {
	chapters []Chapter
	index    map[string]int
}

// NewContentMap returns an empty map.
func NewContentMap() *ContentMap {
	return &ContentMap{index: make(map[string]int)}
}

// Set records paragraphs under title. It reports whether the title replaced
// an earlier chapter.
func (m *ContentMap) Set(title string, paragraphs []string) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	copied := append([]string(nil), paragraphs...)
	if i, ok := m.index[title]; ok {
		m.chapters[i].Paragraphs = copied
		return true
	}
	m.index[title] = len(m.chapters)
	m.chapters = append(m.chapters, Chapter{Title: title, Paragraphs: copied})
	return false
}

// Len returns the chapter count.
func (m *ContentMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.chapters)
}

// Chapters returns the chapters in book order. The slice must not be modified.
func (m *ContentMap) Chapters() []Chapter {
	if m == nil {
		return nil
	}
	return m.chapters
}

// ParagraphCount sums the paragraphs of every chapter.
func (m *ContentMap) ParagraphCount() int {
	total := 0
	for _, ch := range m.Chapters() {
		total += len(ch.Paragraphs)
	}
	return total
}
