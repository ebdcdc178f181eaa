package fqname

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a glob-based pattern (with '.' as separator) matched against
// a full FqName. '*' matches within one segment, '**' crosses segments,
// '?' matches a single character within a segment.
type Pattern struct {
	glob string
	re   *regexp.Regexp
}

// CompilePattern translates a glob into an anchored regular expression.
func CompilePattern(glob string) (*Pattern, error) {
	var sb strings.Builder
	sb.WriteString(`\A`)
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				sb.WriteString(`.*`)
				i++
			} else {
				sb.WriteString(`[^.]*`)
			}
		case '?':
			sb.WriteString(`[^.]`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString(`\z`)

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("fqname: bad glob %q: %w", glob, err)
	}
	return &Pattern{glob: glob, re: re}, nil
}

// Matches reports whether the pattern matches the whole qualified name.
func (p *Pattern) Matches(f FqName) bool {
	return p.re.MatchString(f.String())
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern{glob=%q}", p.glob)
}
