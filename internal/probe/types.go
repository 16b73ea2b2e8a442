// Package probe inspects media files with a single ffprobe JSON call per
// file. Inspection failure is an expected, handled condition: callers
// receive a definite summary-or-nil result and continue with default
// quality settings.
package probe

// Summary holds the parsed properties of the first video stream.
// BitRate is in bits/sec; 0 means unknown.
type Summary struct {
	Width   int
	Height  int
	BitRate int64
}

// HasBitRate reports whether the bit rate could be determined.
func (s *Summary) HasBitRate() bool { return s.BitRate > 0 }

// Resolution returns "WxH" for display.
func (s *Summary) Resolution() string {
	return itoa(s.Width) + "x" + itoa(s.Height)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
