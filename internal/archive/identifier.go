package archive

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]`)

// GenerateIdentifier derives an item identifier from a title and a point in
// time: the lowercased title with every character outside [a-z0-9] replaced
// by '-', then '-' and the first six hex digits of an MD5 over title and
// millisecond timestamp.
func GenerateIdentifier(title string, at time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%d", title, at.UnixMilli())))
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return slug + "-" + hex.EncodeToString(sum[:])[:6]
}
