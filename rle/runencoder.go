package rle

// maxRun is the longest run a single literal or replicate token can carry
const maxRun = 128

// runEncoder turns a byte sequence into literal and replicate tokens.
// Runs of one or two bytes are cheaper as literals; longer runs become
// replicate tokens and force any pending literal bytes out first.
type runEncoder struct {
	out     []byte
	literal []byte // pending literal bytes, never more than maxRun+2
	prev    int    // last byte seen, -1 when none
	repeat  int    // consecutive occurrences of prev not yet emitted
}

func newRunEncoder(sizeHint int) *runEncoder {
	return &runEncoder{
		out:     make([]byte, 0, sizeHint),
		literal: make([]byte, 0, maxRun+2),
		prev:    -1,
	}
}

// writeByte feeds the next byte of the current segment
func (e *runEncoder) writeByte(b byte) {
	if int(b) == e.prev {
		e.repeat++
		if e.repeat > 2 && len(e.literal) > 0 {
			e.drainLiteral()
		} else if e.repeat > maxRun {
			e.emitReplicate(maxRun)
			e.repeat -= maxRun
		}
		return
	}

	switch e.repeat {
	case 0:
	case 1:
		e.literal = append(e.literal, byte(e.prev))
	case 2:
		e.literal = append(e.literal, byte(e.prev), byte(e.prev))
	default:
		e.emitRepeat()
	}

	for len(e.literal) > maxRun {
		e.emitLiteral(maxRun)
	}

	e.prev = int(b)
	e.repeat = 1
}

// flush ends the current segment. A trailing pair is written as a replicate
// token here since nothing can follow it.
func (e *runEncoder) flush() {
	if e.repeat < 2 {
		for ; e.repeat > 0; e.repeat-- {
			e.literal = append(e.literal, byte(e.prev))
		}
	}

	e.drainLiteral()

	if e.repeat >= 2 {
		e.emitRepeat()
	}

	e.prev = -1
	e.repeat = 0
	e.literal = e.literal[:0]
}

// padEven appends a zero byte if the output has odd length
func (e *runEncoder) padEven() {
	if len(e.out)&1 == 1 {
		e.out = append(e.out, 0x00)
	}
}

func (e *runEncoder) drainLiteral() {
	for len(e.literal) > 0 {
		e.emitLiteral(min(maxRun, len(e.literal)))
	}
}

// emitLiteral writes the first n pending literal bytes as one token
func (e *runEncoder) emitLiteral(n int) {
	e.out = append(e.out, byte(n-1))
	e.out = append(e.out, e.literal[:n]...)
	e.literal = e.literal[:copy(e.literal, e.literal[n:])]
}

// emitRepeat writes the pending run of prev, split into maxRun chunks
func (e *runEncoder) emitRepeat() {
	for e.repeat > 0 {
		n := min(e.repeat, maxRun)
		e.emitReplicate(n)
		e.repeat -= n
	}
}

// emitReplicate writes one replicate token of n copies of prev
func (e *runEncoder) emitReplicate(n int) {
	e.out = append(e.out, byte(int8(1-n)), byte(e.prev))
}
