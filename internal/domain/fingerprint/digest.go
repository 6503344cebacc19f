package fingerprint

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/ipflix/ipflix/internal/entity"
)

// Digest returns a stable identifier for the identifying artifacts. Blocked
// or unavailable artifacts hash like any other value so two hardened browsers
// collapse to the same id.
func Digest(a entity.FingerprintArtifacts) string {
	var b strings.Builder
	b.WriteString(a.Canvas)
	b.WriteByte(0)
	b.WriteString(a.WebGL)
	b.WriteByte(0)
	b.WriteString(a.Audio)
	b.WriteByte(0)
	b.WriteString(strings.Join(a.Fonts, ","))
	b.WriteByte(0)
	b.WriteString(strings.Join(a.Plugins, ","))

	sum := strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
	return strings.Repeat("0", 16-len(sum)) + sum
}
