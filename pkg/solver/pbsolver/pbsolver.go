// Package pbsolver solves cpmodel models with the gophersat pseudo-boolean
// optimiser.
package pbsolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/cpmodel"
)

// errSearchRunning is the reason given when an earlier full search that was
// stopped by its context has not yet returned
var errSearchRunning = errors.New("an earlier search is still running")

// Solver implements cpmodel.Solver on top of gophersat
type Solver struct {
	logger   *zap.Logger
	presolve bool
	seed     int64

	mu sync.Mutex
	// abandoned counts full searches whose caller has gone but whose
	// goroutine is still inside gophersat
	abandoned int
}

// Option configures a Solver
type Option func(*Solver)

// WithLogger sets the logger used to report search progress
func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithPresolve enables or disables the aggregate capacity check run before search
func WithPresolve(enabled bool) Option {
	return func(s *Solver) {
		s.presolve = enabled
	}
}

// WithSeed sets the seed that orders the neighbourhoods tried by the local search
func WithSeed(seed int64) Option {
	return func(s *Solver) {
		s.seed = seed
	}
}

// New creates a Solver. Presolve is on by default.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger:   zap.NewNop(),
		presolve: true,
		seed:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve searches for an assignment minimising the model's objective.
//
// When the model's hints complete to a feasible assignment, that assignment
// seeds a local search over the model's groups. Every step of it runs on the
// calling goroutine and ctx is checked between steps, so the call returns
// shortly after ctx is done and leaves nothing running.
//
// Without a usable hint gophersat searches the whole model. gophersat cannot
// be interrupted, so when ctx is done first the call returns the best
// assignment seen as FEASIBLE, or UNKNOWN, while the search goroutine runs on
// until gophersat returns. Further unhinted solves report UNKNOWN until it has.
func (s *Solver) Solve(ctx context.Context, m *cpmodel.Model) (*cpmodel.Solution, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return &cpmodel.Solution{Status: cpmodel.StatusUnknown, Reason: err.Error()}, nil
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	if s.presolve {
		if conflict := cpmodel.CheckAggregateCapacity(m); conflict != nil {
			s.logger.Info("Presolve proved model infeasible", zap.String("family", conflict.Family),
				zap.Int64("demand", conflict.Demand), zap.Int64("capacity", conflict.Capacity))
			return &cpmodel.Solution{Status: cpmodel.StatusInfeasible, Reason: conflict.String()}, nil
		}
	}

	cons := linearise(m.Constraints())
	seed, ok, err := s.incumbent(m, cons)
	if err != nil {
		return nil, fmt.Errorf("failed to complete hinted assignment: %w", err)
	}
	if ok {
		return s.localSearch(ctx, m, cons, seed, start)
	}

	return s.fullSearch(ctx, m, start)
}

func (s *Solver) localSearch(ctx context.Context, m *cpmodel.Model, cons []linear, seed []int64, start time.Time) (*cpmodel.Solution, error) {
	solution := &cpmodel.Solution{Values: seed}
	if objective, ok := m.Objective(); ok {
		solution.Objective = objective.Eval(seed)
	}
	s.logger.Debug("Starting from hinted assignment",
		zap.Int64("objective", solution.Objective),
		zap.Int("groups", len(m.Groups())))

	best, optimal, err := s.improve(ctx, m, cons, seed)
	if err != nil {
		return nil, fmt.Errorf("local search failed: %w", err)
	}

	solution.Status = cpmodel.StatusFeasible
	if optimal {
		solution.Status = cpmodel.StatusOptimal
	}
	solution.Values = best
	if objective, ok := m.Objective(); ok {
		solution.Objective = objective.Eval(best)
	}

	s.logger.Info("Search finished",
		zap.String("status", solution.Status.String()),
		zap.Int64("objective", solution.Objective),
		zap.Bool("stopped", ctx.Err() != nil),
		zap.Duration("elapsed", time.Since(start)))
	return solution, nil
}

func (s *Solver) fullSearch(ctx context.Context, m *cpmodel.Model, start time.Time) (*cpmodel.Solution, error) {
	s.mu.Lock()
	running := s.abandoned
	s.mu.Unlock()
	if running > 0 {
		s.logger.Warn("Refusing to start a search", zap.Int("running", running))
		return &cpmodel.Solution{Status: cpmodel.StatusUnknown, Reason: errSearchRunning.Error()}, nil
	}

	enc, err := encode(m)
	if errors.Is(err, errTriviallyFalse) {
		s.logger.Info("Model has a constraint that can never hold", zap.Error(err))
		return &cpmodel.Solution{Status: cpmodel.StatusInfeasible, Reason: err.Error()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}

	s.logger.Debug("Encoded model",
		zap.Int("variables", m.NumVars()),
		zap.Int("pbVariables", enc.nbVars),
		zap.Int("pbConstraints", len(enc.constraints)))

	pbSolver := solver.New(enc.problem())

	results := make(chan solver.Result, 16)
	stop := make(chan struct{})
	done := make(chan solver.Result, 1)
	go func() {
		done <- pbSolver.Optimal(results, stop)
	}()

	var best []bool
	for {
		select {
		case r, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if r.Status == solver.Sat {
				best = append([]bool(nil), r.Model...)
				s.logger.Debug("Found improving assignment",
					zap.Int("cost", r.Weight),
					zap.Duration("elapsed", time.Since(start)))
			}

		case r := <-done:
			solution := s.finish(m, enc, r, best)
			s.logger.Info("Search finished",
				zap.String("status", solution.Status.String()),
				zap.Int64("objective", solution.Objective),
				zap.Duration("elapsed", time.Since(start)))
			return solution, nil

		case <-ctx.Done():
			close(stop)
			s.mu.Lock()
			s.abandoned++
			s.mu.Unlock()
			go func() {
				drain(results, done)
				s.mu.Lock()
				s.abandoned--
				s.mu.Unlock()
			}()

			solution := &cpmodel.Solution{Status: cpmodel.StatusUnknown, Reason: ctx.Err().Error()}
			if best != nil {
				solution = s.solution(m, enc, cpmodel.StatusFeasible, best)
			}
			s.logger.Info("Search stopped",
				zap.String("status", solution.Status.String()),
				zap.Duration("elapsed", time.Since(start)))
			return solution, nil
		}
	}
}

func (s *Solver) finish(m *cpmodel.Model, enc *encoding, r solver.Result, best []bool) *cpmodel.Solution {
	switch r.Status {
	case solver.Sat:
		model := r.Model
		if model == nil {
			model = best
		}
		return s.solution(m, enc, cpmodel.StatusOptimal, model)
	case solver.Unsat:
		return &cpmodel.Solution{Status: cpmodel.StatusInfeasible, Reason: "no assignment satisfies every constraint"}
	default:
		if best != nil {
			return s.solution(m, enc, cpmodel.StatusFeasible, best)
		}
		return &cpmodel.Solution{Status: cpmodel.StatusUnknown, Reason: "search ended without a result"}
	}
}

func (s *Solver) solution(m *cpmodel.Model, enc *encoding, status cpmodel.Status, model []bool) *cpmodel.Solution {
	values := enc.values(model)

	solution := &cpmodel.Solution{Status: status, Values: values}
	if objective, ok := m.Objective(); ok {
		solution.Objective = objective.Eval(values)
	}
	return solution
}

// drain empties the result channels of a stopped search so its goroutine can exit
func drain(results chan solver.Result, done chan solver.Result) {
	for {
		select {
		case _, ok := <-results:
			if !ok {
				results = nil
			}
		case <-done:
			return
		}
	}
}
