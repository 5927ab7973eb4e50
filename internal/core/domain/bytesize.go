package domain

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GiB is 1024^3 bytes.
const GiB int64 = 1 << 30

// BandThreshold is the size from which folders are shown as a band instead of an exact value.
const BandThreshold = 25 * GiB

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// HumanReadable renders n bytes using the smallest unit that keeps the value below 1024.
// Bytes print as a bare integer. Scaled values keep two decimals below 10, one below 100 and none above.
func HumanReadable(n int64) string {
	if n < 0 {
		n = 0
	}
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	switch {
	case v < 10:
		return fmt.Sprintf("%.2f %s", v, sizeUnits[i])
	case v < 100:
		return fmt.Sprintf("%.1f %s", v, sizeUnits[i])
	default:
		return fmt.Sprintf("%.0f %s", v, sizeUnits[i])
	}
}

// BandLabel returns the coarse category for very large folders, or "" below 25 GiB.
func BandLabel(n int64) string {
	switch {
	case n >= 100*GiB:
		return "100+ GB"
	case n >= 50*GiB:
		return "50+ GB"
	case n >= BandThreshold:
		return "25+ GB"
	default:
		return ""
	}
}

// DisplaySize is the size column text: exact below 25 GiB, a band label above.
func DisplaySize(n int64) string {
	if n < BandThreshold {
		return HumanReadable(n)
	}
	return BandLabel(n)
}

// ExactSize renders the full byte count with thousands separators, e.g. "26,843,545,600 bytes".
func ExactSize(n int64) string {
	if n < 0 {
		n = 0
	}
	p := message.NewPrinter(language.English)
	if n == 1 {
		return p.Sprintf("%d byte", n)
	}
	return p.Sprintf("%d bytes", n)
}
