package deflate

import (
	"container/heap"
	"fmt"
	"math/bits"
	"sort"

	"github.com/hquaid/squash/bitstream"
	"github.com/hquaid/squash/format"
)

// hNode is one node of the Huffman merge tree. Leaves carry a symbol;
// internal nodes carry -1.
type hNode struct {
	freq   int
	order  int // insertion order, breaks frequency ties deterministically
	symbol int
	left   *hNode
	right  *hNode
}

// mergeHeap is a min-heap ordered by frequency then insertion order.
type mergeHeap []*hNode

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}

	return h[i].order < h[j].order
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap) Push(x any) { *h = append(*h, x.(*hNode)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// buildCodeLengths derives a prefix-code length for every symbol with a
// nonzero frequency, limited to maxBits.
//
// The classic greedy merge (combine the two lowest-frequency nodes until one
// tree remains) gives unbounded depths; when any depth exceeds maxBits the
// per-depth leaf counts are renormalized with the zlib overflow adjustment,
// which keeps the code complete, and lengths are reassigned longest-first to
// the least frequent symbols.
func buildCodeLengths(freq []int, maxBits int) []uint8 {
	lengths := make([]uint8, len(freq))

	var leaves []*hNode
	for sym, f := range freq {
		if f > 0 {
			leaves = append(leaves, &hNode{freq: f, order: sym, symbol: sym})
		}
	}

	switch len(leaves) {
	case 0:
		return lengths
	case 1:
		lengths[leaves[0].symbol] = 1
		return lengths
	}

	h := make(mergeHeap, len(leaves))
	copy(h, leaves)
	heap.Init(&h)

	order := len(freq)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*hNode)
		b := heap.Pop(&h).(*hNode)
		heap.Push(&h, &hNode{freq: a.freq + b.freq, order: order, symbol: -1, left: a, right: b})
		order++
	}

	depths := make(map[int]int, len(leaves))
	assignDepths(h[0], 0, depths)

	maxDepth := 0
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}

	if maxDepth <= maxBits {
		for sym, d := range depths {
			lengths[sym] = uint8(d)
		}

		return lengths
	}

	// Overflow adjustment: clamp deep leaves to maxBits, then repeatedly
	// move one leaf down a level to make room for a pair of overflowed
	// leaves, preserving the Kraft equality.
	blCount := make([]int, maxBits+2)
	overflow := 0
	for _, d := range depths {
		if d > maxBits {
			overflow++
			d = maxBits
		}
		blCount[d]++
	}
	for overflow > 0 {
		b := maxBits - 1
		for blCount[b] == 0 {
			b--
		}
		blCount[b]--
		blCount[b+1] += 2
		blCount[maxBits]--
		overflow -= 2
	}

	// Hand the longest lengths to the least frequent symbols.
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].freq != leaves[j].freq {
			return leaves[i].freq < leaves[j].freq
		}

		return leaves[i].symbol < leaves[j].symbol
	})
	idx := 0
	for b := maxBits; b > 0; b-- {
		for n := blCount[b]; n > 0; n-- {
			lengths[leaves[idx].symbol] = uint8(b)
			idx++
		}
	}

	return lengths
}

func assignDepths(n *hNode, depth int, depths map[int]int) {
	if n.symbol >= 0 {
		depths[n.symbol] = depth
		return
	}
	assignDepths(n.left, depth+1, depths)
	assignDepths(n.right, depth+1, depths)
}

// canonicalCodes assigns canonical code values from code lengths: codes are
// ordered by length, then by symbol, per RFC 1951 §3.2.2.
func canonicalCodes(lengths []uint8, maxBits int) []uint16 {
	blCount := make([]uint16, maxBits+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	nextCode := make([]uint16, maxBits+2)
	code := uint16(0)
	for b := 1; b <= maxBits; b++ {
		code = (code + blCount[b-1]) << 1
		nextCode[b] = code
	}

	codes := make([]uint16, len(lengths))
	for sym, l := range lengths {
		if l > 0 {
			codes[sym] = nextCode[l]
			nextCode[l]++
		}
	}

	return codes
}

// writeCode emits one Huffman code MSB-first into the LSB-first bit stream.
func writeCode(w *bitstream.Writer, code uint16, length uint8) {
	rev := bits.Reverse16(code) >> (16 - length)
	w.WriteBits(uint32(rev), uint(length))
}

// decodeTable is a canonical Huffman decoding table in the counts/symbols
// form: counts[l] is the number of codes of length l and symbols lists all
// coded symbols ordered by (length, symbol).
type decodeTable struct {
	counts  [maxCodeBits + 1]uint16
	symbols []uint16
}

// newDecodeTable builds a decoding table from per-symbol code lengths.
//
// An over-subscribed description (more codes than the prefix space allows)
// is malformed input. Incomplete codes are permitted; decoding fails only if
// an unassigned bit pattern is actually encountered.
func newDecodeTable(lengths []uint8) (*decodeTable, error) {
	t := &decodeTable{}
	for _, l := range lengths {
		if l > maxCodeBits {
			return nil, fmt.Errorf("%w: code length %d exceeds %d bits", format.ErrFormat, l, maxCodeBits)
		}
		if l > 0 {
			t.counts[l]++
		}
	}

	left := 1
	for l := 1; l <= maxCodeBits; l++ {
		left <<= 1
		left -= int(t.counts[l])
		if left < 0 {
			return nil, fmt.Errorf("%w: over-subscribed Huffman code description", format.ErrFormat)
		}
	}

	offsets := make([]uint16, maxCodeBits+2)
	for l := 1; l <= maxCodeBits; l++ {
		offsets[l+1] = offsets[l] + t.counts[l]
	}

	t.symbols = make([]uint16, offsets[maxCodeBits+1])
	next := make([]uint16, maxCodeBits+2)
	copy(next, offsets)
	for sym, l := range lengths {
		if l > 0 {
			t.symbols[next[l]] = uint16(sym)
			next[l]++
		}
	}

	return t, nil
}

// empty reports whether the table describes no symbols at all.
func (t *decodeTable) empty() bool {
	return len(t.symbols) == 0
}

// decode reads one symbol, walking the canonical code one bit at a time
// (codes arrive MSB-first within the LSB-first byte stream).
func (t *decodeTable) decode(r *bitstream.Reader) (int, error) {
	code, first, index := 0, 0, 0
	for l := 1; l <= maxCodeBits; l++ {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code |= int(b)

		count := int(t.counts[l])
		if code-first < count {
			return int(t.symbols[index+code-first]), nil
		}
		index += count
		first = (first + count) << 1
		code <<= 1
	}

	return 0, fmt.Errorf("%w: invalid Huffman code", format.ErrFormat)
}
