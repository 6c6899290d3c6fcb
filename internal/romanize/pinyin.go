package romanize

import (
	"github.com/mozillazg/go-pinyin"
)

// Romanizer converts text to its syllables.
type Romanizer interface {
	Romanize(text string) []string
}

// Pinyin romanizes Han characters to tone-less pinyin. Runes without a
// reading (Latin letters, digits, punctuation) pass through as single-rune
// syllables.
type Pinyin struct {
	args pinyin.Args
}

// NewPinyin returns a Pinyin romanizer.
func NewPinyin() *Pinyin {
	args := pinyin.NewArgs()
	args.Style = pinyin.NORMAL
	args.Heteronym = false
	args.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}
	return &Pinyin{args: args}
}

// Romanize implements Romanizer.
func (p *Pinyin) Romanize(text string) []string {
	args := p.args
	return pinyin.LazyConvert(text, &args)
}
