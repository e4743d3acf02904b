package teambuilder

import "math/rand/v2"

// split marks, per unit, whether it goes to the first team
type split []bool

func (s split) teams(units []unit) (a, b []Player) {
	for i, u := range units {
		if s[i] {
			a = append(a, u...)
		} else {
			b = append(b, u...)
		}
	}
	return a, b
}

// enumerateSplits returns every assignment of units to two teams of exactly
// TeamSize players. The first unit always lands on the first team so mirror
// images are listed once.
func enumerateSplits(units []unit) []split {
	if len(units) == 0 || size(units) != PlayerCount {
		return nil
	}

	var results []split
	current := make(split, len(units))

	var generate func(pos, sizeA, sizeB int)
	generate = func(pos, sizeA, sizeB int) {
		if sizeA > TeamSize || sizeB > TeamSize {
			return
		}
		if pos == len(units) {
			if sizeA == TeamSize && sizeB == TeamSize {
				result := make(split, len(current))
				copy(result, current)
				results = append(results, result)
			}
			return
		}

		n := len(units[pos])
		current[pos] = true
		generate(pos+1, sizeA+n, sizeB)

		if pos > 0 {
			current[pos] = false
			generate(pos+1, sizeA, sizeB+n)
		}
	}

	generate(0, 0, 0)
	return results
}

// assignExhaustive tries the feasible splits in random order until one
// staffs both teams or the attempt cap is hit
func (e *Engine) assignExhaustive(rng *rand.Rand, units []unit) (*Result, int) {
	splits := enumerateSplits(units)
	rng.Shuffle(len(splits), func(i, j int) {
		splits[i], splits[j] = splits[j], splits[i]
	})

	attempts := 0
	for _, s := range splits {
		if attempts == e.maxAttempts {
			break
		}
		attempts++

		a, b := s.teams(units)
		if res := staff(rng, a, b); res != nil {
			return res, attempts
		}
	}
	return nil, attempts
}

// assignGreedy shuffles units and fills the first team while it stays within
// TeamSize, sending everything else to the second team. Unbalanced splits
// count as failed attempts.
func (e *Engine) assignGreedy(rng *rand.Rand, units []unit) (*Result, int) {
	order := make([]unit, len(units))
	copy(order, units)

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var a, b []Player
		for _, u := range order {
			if len(a)+len(u) <= TeamSize {
				a = append(a, u...)
			} else {
				b = append(b, u...)
			}
		}
		if len(a) != TeamSize || len(b) != TeamSize {
			continue
		}

		if res := staff(rng, a, b); res != nil {
			return res, attempt
		}
	}
	return nil, e.maxAttempts
}

// staff assigns roles on both teams; nil when either team cannot be staffed
func staff(rng *rand.Rand, a, b []Player) *Result {
	la := assignPositions(rng, a)
	if la == nil {
		return nil
	}
	lb := assignPositions(rng, b)
	if lb == nil {
		return nil
	}
	return sides(rng, la, lb)
}
