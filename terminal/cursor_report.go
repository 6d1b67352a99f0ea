package terminal

// parseCursorReport parses a DSR reply "ESC [ row ; col R" into 0-indexed x, y
func parseCursorReport(b []byte) (x, y int, ok bool) {
	if len(b) < 6 || b[0] != 0x1b || b[1] != '[' || b[len(b)-1] != 'R' {
		return 0, 0, false
	}
	row, col := 0, 0
	seenSep := false
	digits := 0
	for _, c := range b[2 : len(b)-1] {
		switch {
		case c >= '0' && c <= '9':
			digits++
			if seenSep {
				col = col*10 + int(c-'0')
			} else {
				row = row*10 + int(c-'0')
			}
			if row > 99999 || col > 99999 {
				return 0, 0, false
			}
		case c == ';' && !seenSep && digits > 0:
			seenSep = true
			digits = 0
		default:
			return 0, 0, false
		}
	}
	if !seenSep || digits == 0 || row < 1 || col < 1 {
		return 0, 0, false
	}
	return col - 1, row - 1, true
}
