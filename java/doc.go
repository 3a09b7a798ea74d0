package java

import "strings"

// ParseDocComment strips the comment markers and line prefixes of a
// "/** ... */" comment and splits it into the description and its block
// tags. A block tag starts with "@" at the beginning of a line and runs
// until the next one. line is the line the comment starts on.
func ParseDocComment(raw string, line int) (string, []DocTag) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	var (
		desc []string
		tags []DocTag
		cur  *DocTag
	)
	for i, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if rest, ok := strings.CutPrefix(l, "*"); ok {
			l = strings.TrimSpace(rest)
		}
		if strings.HasPrefix(l, "@") {
			name, value, _ := strings.Cut(l[1:], " ")
			tags = append(tags, DocTag{Name: name, Value: strings.TrimSpace(value), Line: line + i})
			cur = &tags[len(tags)-1]
			continue
		}
		if cur != nil {
			if l != "" {
				cur.Value = strings.TrimSpace(cur.Value + " " + l)
			}
			continue
		}
		desc = append(desc, l)
	}
	return strings.TrimSpace(strings.Join(desc, "\n")), tags
}
