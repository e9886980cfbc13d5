package rle

// decodeSegment expands the tokens in src into dst, writing at pos,
// pos+stride, pos+2*stride and so on. On failure it returns the index in src
// of the offending control byte.
func decodeSegment(dst []byte, pos, stride int, src []byte) (int, error) {
	end := len(src)
	for i := 0; i < end && pos < len(dst); {
		at := i
		control := int8(src[i])
		i++

		switch {
		case control >= 0:
			n := int(control) + 1
			if end-i < n {
				return at, ErrTruncatedLiteralRun
			}
			if pos+(n-1)*stride >= len(dst) {
				return at, ErrOutputOverrun
			}
			if stride == 1 {
				copy(dst[pos:], src[i:i+n])
				pos += n
			} else {
				for _, b := range src[i : i+n] {
					dst[pos] = b
					pos += stride
				}
			}
			i += n

		case control == -128:
			return at, ErrReservedControl

		default:
			n := 1 - int(control)
			if i >= end {
				return at, ErrTruncatedReplicateRun
			}
			if pos+(n-1)*stride >= len(dst) {
				return at, ErrOutputOverrun
			}
			b := src[i]
			i++
			for ; n > 0; n-- {
				dst[pos] = b
				pos += stride
			}
		}

		// a single remaining byte is segment padding
		if end-i < 2 {
			break
		}
	}
	return 0, nil
}
