package formats

import (
	"path"
	"strings"
	"unicode"
)

// ParseText wraps a plain level text file. The id is the file name without
// its extension, the name is derived from it: a leading number is dropped
// and dashes or underscores become spaces ("03-tor-intro" -> "Tor intro").
func ParseText(data []byte, fileName string) Level {
	id := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	return Level{
		ID:   id,
		Name: NameFromID(id),
		Text: string(data),
	}
}

// NameFromID turns a file-style id into a display name.
func NameFromID(id string) string {
	name := strings.TrimLeftFunc(id, unicode.IsDigit)
	name = strings.TrimLeft(name, "-_ ")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if name == "" {
		return id
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
