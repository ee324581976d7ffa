package leads

import (
	"math/rand"
	"strings"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateID produces a token of the form IMV_<YYYYMMDDHHMMSS>_<XXXX>
// where XXXX is 4 random characters from idAlphabet. With 36^4 suffixes
// per second bucket, collisions are possible in principle but negligible
// at lead-capture volumes; uniqueness is probabilistic by design.
func (b *Builder) generateID(now time.Time) string {
	var sb strings.Builder
	sb.WriteString("IMV_")
	sb.WriteString(now.Format("20060102150405"))
	sb.WriteByte('_')
	for i := 0; i < 4; i++ {
		sb.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return sb.String()
}
