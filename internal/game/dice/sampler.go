package dice

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statrange/internal/game/damage"
)

// Sampler wraps a Source and logger to simulate hits.
// Every sample is logged at debug level with stat, roll, and damage.
type Sampler struct {
	src    Source
	logger *zap.Logger
}

// NewSampler creates a Sampler that draws rolls from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewSampler(src Source, logger *zap.Logger) *Sampler {
	return &Sampler{src: src, logger: logger}
}

// Roll draws a roll index.
//
// Postcondition: Returns a value in [0, damage.Rolls).
func (s *Sampler) Roll() int {
	return s.src.Intn(damage.Rolls)
}

// Draw simulates one hit from an attacker with the given stat.
//
// Precondition: stat in [1, damage.MaxStat].
// Postcondition: Returns a Sample, or an error wrapping damage.ErrInvalidInput.
func (s *Sampler) Draw(stat int, c damage.BattleContext) (Sample, error) {
	if stat < 1 || stat > damage.MaxStat {
		return Sample{}, fmt.Errorf("%w: stat must be 1-%d, got %d", damage.ErrInvalidInput, damage.MaxStat, stat)
	}
	if err := c.Validate(); err != nil {
		return Sample{}, err
	}
	roll := s.Roll()
	sample := Sample{Stat: stat, Roll: roll, Damage: damage.Damage(stat, roll, c)}
	s.logger.Debug("damage sample",
		zap.Int("stat", sample.Stat),
		zap.Int("roll_percent", sample.Percent()),
		zap.Int("damage", sample.Damage),
	)
	return sample, nil
}
