package language

import "strings"

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2 primary
	alt3    string // ISO 639-2 bibliographic alternate
	display string
	words   []string
	// cased reports whether the script marks proper nouns with capitals.
	cased bool
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}, true},
	{"es", "spa", "", "Spanish", []string{"spanish"}, true},
	{"fr", "fra", "fre", "French", []string{"french"}, true},
	{"de", "deu", "ger", "German", []string{"german"}, true},
	{"it", "ita", "", "Italian", []string{"italian"}, true},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}, true},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}, false},
	{"ko", "kor", "", "Korean", []string{"korean"}, false},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin"}, false},
	{"ru", "rus", "", "Russian", []string{"russian"}, true},
	{"ar", "ara", "", "Arabic", []string{"arabic"}, false},
	{"hi", "hin", "", "Hindi", []string{"hindi"}, false},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}, true},
	{"pl", "pol", "", "Polish", []string{"polish"}, true},
	{"sv", "swe", "", "Swedish", []string{"swedish"}, true},
	{"da", "dan", "", "Danish", []string{"danish"}, true},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}, true},
	{"fi", "fin", "", "Finnish", []string{"finnish"}, true},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}, true},
	{"th", "tha", "", "Thai", []string{"thai"}, false},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// lookup accepts ISO 639-1/639-2 codes, English names and BCP 47 tags
// such as "zh-Hans" or "en_US".
func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return lookup(code[:i])
	}
	return nil
}

// ToISO2 converts a recognized language code, tag or name to ISO 639-1.
// Unknown 2-letter codes pass through; anything else returns "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Cased reports whether the language's script capitalizes proper nouns.
// Unrecognized codes are assumed cased.
func Cased(code string) bool {
	if e := lookup(code); e != nil {
		return e.cased
	}
	return true
}
