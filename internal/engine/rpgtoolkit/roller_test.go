package rpgtoolkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// scriptedRoller returns queued results in order
type scriptedRoller struct {
	results []int
}

func (s *scriptedRoller) Roll(size int) (int, error) {
	out, err := s.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

func (s *scriptedRoller) RollN(count, _ int) ([]int, error) {
	if count > len(s.results) {
		return nil, errors.Internal("script exhausted")
	}
	out := s.results[:count]
	s.results = s.results[count:]
	return out, nil
}

type RollerTestSuite struct {
	suite.Suite
	dice   *scriptedRoller
	roller *Roller
	ctx    context.Context
}

func TestRollerSuite(t *testing.T) {
	suite.Run(t, new(RollerTestSuite))
}

func (s *RollerTestSuite) SetupTest() {
	ev, err := formula.NewEvaluator()
	s.Require().NoError(err)

	s.dice = &scriptedRoller{}
	s.roller, err = NewRoller(&RollerConfig{DiceRoller: s.dice, Evaluator: ev})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *RollerTestSuite) TestNewRollerValidation() {
	_, err := NewRoller(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = NewRoller(&RollerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "dice roller is required")

	_, err = NewRoller(&RollerConfig{DiceRoller: s.dice})
	s.Require().Error(err)
	s.Contains(err.Error(), "evaluator is required")
}

func (s *RollerTestSuite) TestRoll() {
	testCases := []struct {
		name     string
		formula  string
		data     formula.Data
		opts     *RollOptions
		dice     []int
		total    int
		rolled   string
		critical bool
		fumble   bool
	}{
		{
			name:    "plain attack",
			formula: "1d20 + 5",
			dice:    []int{12},
			total:   17,
			rolled:  "1d20 + 5",
		},
		{
			name:    "references",
			formula: "1d20 + @mod",
			data:    formula.Data{"mod": 3.0},
			dice:    []int{10},
			total:   13,
			rolled:  "1d20 + 3",
		},
		{
			name:    "advantage keeps highest",
			formula: "1d20 + 2",
			opts:    &RollOptions{Advantage: true},
			dice:    []int{5, 18},
			total:   20,
			rolled:  "2d20kh + 2",
		},
		{
			name:    "disadvantage keeps lowest",
			formula: "1d20 + 2",
			opts:    &RollOptions{Disadvantage: true},
			dice:    []int{5, 18},
			total:   7,
			rolled:  "2d20kl + 2",
		},
		{
			name:    "advantage and disadvantage cancel",
			formula: "1d20",
			opts:    &RollOptions{Advantage: true, Disadvantage: true},
			dice:    []int{9},
			total:   9,
			rolled:  "1d20",
		},
		{
			name:     "lowered critical threshold",
			formula:  "1d20 + 1",
			opts:     &RollOptions{CriticalThreshold: 18},
			dice:     []int{18},
			total:    19,
			rolled:   "1d20 + 1",
			critical: true,
		},
		{
			name:     "natural twenty",
			formula:  "1d20",
			dice:     []int{20},
			total:    20,
			rolled:   "1d20",
			critical: true,
		},
		{
			name:    "natural one",
			formula: "1d20 + 4",
			dice:    []int{1},
			total:   5,
			rolled:  "1d20 + 4",
			fumble:  true,
		},
		{
			name:    "critical damage doubles dice",
			formula: "1d8 + 3",
			opts:    &RollOptions{Critical: true},
			dice:    []int{4, 6},
			total:   13,
			rolled:  "2d8 + 3",
		},
		{
			name:    "drop lowest",
			formula: "4d6dl",
			dice:    []int{3, 1, 6, 4},
			total:   13,
			rolled:  "4d6dl",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.dice.results = tc.dice

			res, err := s.roller.Roll(s.ctx, tc.formula, tc.data, tc.opts)
			s.Require().NoError(err)
			s.Equal(tc.total, res.Total)
			s.Equal(tc.rolled, res.Formula)
			s.Equal(tc.critical, res.IsCritical)
			s.Equal(tc.fumble, res.IsFumble)
			s.Empty(s.dice.results, "every scripted die is used")
		})
	}
}

func (s *RollerTestSuite) TestRollTerms() {
	s.dice.results = []int{5, 18, 3}

	res, err := s.roller.Roll(s.ctx, "1d20 + 1d4", nil, &RollOptions{Advantage: true})
	s.Require().NoError(err)
	s.Require().Len(res.Terms, 2)
	s.Equal([]int{5, 18}, res.Terms[0].Results)
	s.Equal([]int{18}, res.Terms[0].Kept)
	s.Equal(3, res.Terms[1].Total)
	s.Equal(21, res.Total)
}

func (s *RollerTestSuite) TestRollErrors() {
	_, err := s.roller.Roll(s.ctx, "1d20 +", nil, nil)
	s.True(errors.IsInvalidArgument(err))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = s.roller.Roll(ctx, "1d20", nil, nil)
	s.Error(err)
}
