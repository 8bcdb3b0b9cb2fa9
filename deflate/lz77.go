package deflate

import "github.com/hquaid/squash/internal/pool"

const (
	hashBits = 15
	hashSize = 1 << hashBits

	// maxChainLength bounds how many candidate positions a single hash
	// chain walk inspects. Longer chains improve the match at a roughly
	// linear cost; 256 is a reasonable middle ground for a single level.
	maxChainLength = 256
)

// hash3 hashes the three bytes at src[i:] into a hash-table slot.
func hash3(b0, b1, b2 byte) uint32 {
	v := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)

	return (v * 506832829) >> (32 - hashBits)
}

// findTokens runs the sliding-window match finder over src and returns the
// token sequence: literals interleaved with (length, distance) matches.
//
// Matching is greedy: at each position the longest prior occurrence within
// the 32KiB window is taken when it reaches minMatchLen, and positions
// covered by an emitted match are only indexed, not re-matched. Among
// equal-length candidates the most recent (smallest distance) wins, because
// hash chains are walked newest-first and a candidate only replaces the best
// when strictly longer.
func findTokens(src []byte) []token {
	tokens := make([]token, 0, len(src)/2+1)
	if len(src) < minMatchLen {
		for _, b := range src {
			tokens = append(tokens, literalToken(b))
		}

		return tokens
	}

	head, headCleanup := pool.GetInt32Slice(hashSize, -1)
	defer headCleanup()
	prev, prevCleanup := pool.GetInt32Slice(len(src), -1)
	defer prevCleanup()

	for i := 0; i < len(src); {
		if i+minMatchLen > len(src) {
			tokens = append(tokens, literalToken(src[i]))
			i++
			continue
		}

		h := hash3(src[i], src[i+1], src[i+2])
		bestLen, bestDist := 0, 0
		for cand, chain := head[h], 0; cand >= 0 && chain < maxChainLength; cand, chain = prev[cand], chain+1 {
			dist := i - int(cand)
			if dist > maxWindowSize {
				break
			}
			if l := matchLength(src, int(cand), i); l > bestLen {
				bestLen, bestDist = l, dist
				if l == maxMatchLen {
					break
				}
			}
		}

		prev[i] = head[h]
		head[h] = int32(i)

		if bestLen >= minMatchLen {
			tokens = append(tokens, matchToken(bestLen, bestDist))
			end := i + bestLen
			for j := i + 1; j < end && j+minMatchLen <= len(src); j++ {
				hj := hash3(src[j], src[j+1], src[j+2])
				prev[j] = head[hj]
				head[hj] = int32(j)
			}
			i = end
		} else {
			tokens = append(tokens, literalToken(src[i]))
			i++
		}
	}

	return tokens
}

// matchLength returns the longest common prefix of src[cand:] and src[cur:],
// capped at maxMatchLen and the end of src. cand < cur, and the comparison
// may run past cur, which mirrors the decoder's overlapping copy semantics.
func matchLength(src []byte, cand, cur int) int {
	limit := len(src) - cur
	if limit > maxMatchLen {
		limit = maxMatchLen
	}

	n := 0
	for n < limit && src[cand+n] == src[cur+n] {
		n++
	}

	return n
}
