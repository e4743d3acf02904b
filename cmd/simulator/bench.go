package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/teambuilder"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type scenario struct {
	players []teambuilder.Player
	groups  map[string][]uuid.UUID
}

type benchStats struct {
	mu          sync.Mutex
	solved      int
	unsolvable  int
	attempts    int
	elapsed     time.Duration
	missedSplit int // solved by exhaustive but not by this strategy
}

func (s *benchStats) add(result *teambuilder.Result, err error, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed += elapsed
	if err != nil {
		s.unsolvable++
		return
	}
	s.solved++
	s.attempts += result.Attempts
}

// benchCmd runs random scenarios through both strategies without a server
func benchCmd(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	runs := fs.Int("runs", 1000, "Number of random scenarios")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for scenario generation")
	fixedRatio := fs.Float64("fixed", 0.4, "Probability that a player has fixed positions")
	maxAttempts := fs.Int("max-attempts", teambuilder.DefaultMaxAttempts, "Attempt budget per call")
	fs.Parse(args)

	if *runs < 1 || *fixedRatio < 0 || *fixedRatio > 1 {
		fmt.Println("Error: --runs must be positive and --fixed between 0 and 1")
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x5eed))
	scenarios := make([]scenario, *runs)
	for i := range scenarios {
		scenarios[i] = randomScenario(rng, *fixedRatio)
	}

	strategies := []teambuilder.Strategy{teambuilder.StrategyExhaustive, teambuilder.StrategyGreedy}
	stats := map[teambuilder.Strategy]*benchStats{}
	for _, s := range strategies {
		stats[s] = &benchStats{}
	}

	fmt.Printf("Running %d scenarios (seed %d)...\n\n", *runs, *seed)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sc := range scenarios {
		g.Go(func() error {
			var exhaustiveOK bool
			for _, strategy := range strategies {
				engine := teambuilder.New(
					teambuilder.WithStrategy(strategy),
					teambuilder.WithMaxAttempts(*maxAttempts),
					teambuilder.WithSeed(*seed+uint64(i)),
				)
				start := time.Now()
				result, err := engine.Assign(sc.players, sc.groups)
				if err != nil && !errors.Is(err, teambuilder.ErrUnsatisfiable) {
					return fmt.Errorf("scenario %d: %w", i, err)
				}
				stats[strategy].add(result, err, time.Since(start))

				if strategy == teambuilder.StrategyExhaustive {
					exhaustiveOK = err == nil
				} else if exhaustiveOK && err != nil {
					stats[strategy].mu.Lock()
					stats[strategy].missedSplit++
					stats[strategy].mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-11s %8s %11s %13s %8s %10s\n", "STRATEGY", "SOLVED", "UNSOLVABLE", "AVG ATTEMPTS", "MISSED", "AVG TIME")
	for _, strategy := range strategies {
		s := stats[strategy]
		avgAttempts := 0.0
		if s.solved > 0 {
			avgAttempts = float64(s.attempts) / float64(s.solved)
		}
		fmt.Printf("  %-11s %8d %11d %13.2f %8d %10s\n",
			strategy, s.solved, s.unsolvable, avgAttempts, s.missedSplit,
			(s.elapsed / time.Duration(*runs)).Round(time.Microsecond))
	}
	fmt.Println()
	fmt.Println("  MISSED counts scenarios the exhaustive strategy solved and the strategy did not.")
}

func randomScenario(rng *rand.Rand, fixedRatio float64) scenario {
	sc := scenario{groups: map[string][]uuid.UUID{}}
	for i := 0; i < teambuilder.PlayerCount; i++ {
		p := teambuilder.Player{ID: uuid.New(), Nickname: fmt.Sprintf("P%d", i+1)}
		if rng.Float64() < fixedRatio {
			p.FixedPosition = true
			n := 1 + rng.IntN(domain.MaxFixedPositions)
			for _, idx := range rng.Perm(domain.RoleCount)[:n] {
				p.AllowedPositions = append(p.AllowedPositions, domain.AllRoles[idx])
			}
		}
		sc.players = append(sc.players, p)
	}

	// up to three disjoint premade groups of two or three players
	order := rng.Perm(teambuilder.PlayerCount)
	next := 0
	groupCount := rng.IntN(4)
	for g := 0; g < groupCount; g++ {
		size := 2 + rng.IntN(2)
		if next+size > len(order) {
			break
		}
		var members []uuid.UUID
		for _, idx := range order[next : next+size] {
			members = append(members, sc.players[idx].ID)
		}
		sc.groups[fmt.Sprintf("g%d", g+1)] = members
		next += size
	}
	return sc
}
