package wuxing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// ChartChip computes the 12-hex-character chart identifier: SHA-256 over a
// canonical rendering of the resolved input. Two inputs naming the same
// chart (including an omitted hour pillar resolving to the day pillar) share
// a chip.
func ChartChip(in *Input) (string, error) {
	pillars, err := in.resolve()
	if err != nil {
		return "", err
	}

	data := fmt.Sprintf("WX|%s-%s|%s-%s|%s-%s|%s-%s|%d|%s|%s",
		pillars[PillarYear].Stem, pillars[PillarYear].Branch,
		pillars[PillarMonth].Stem, pillars[PillarMonth].Branch,
		pillars[PillarDay].Stem, pillars[PillarDay].Branch,
		pillars[PillarHour].Stem, pillars[PillarHour].Branch,
		in.Age, in.Gender, in.Location)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:12], nil
}

// ReportDigest computes the BLAKE3 digest of the canonical report bytes.
func ReportDigest(canonical []byte) string {
	h := blake3.New()
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}
