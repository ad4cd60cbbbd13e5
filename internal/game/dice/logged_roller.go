package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// Dice rolls are logged at debug level; plain Intn draws pass through silently.
//
// Roller itself satisfies Source so it can be handed to any rule helper.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the wrapped Source.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Roll rolls d and logs the result at debug level.
//
// Postcondition: result logged; returns the RollResult.
func (r *Roller) Roll(d Dice) RollResult {
	result := d.Roll(r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", d.String()),
		zap.Ints("faces", result.Faces),
		zap.Int("total", result.Total()),
	)
	return result
}

// Damroll rolls count dice of sides faces with logging and returns the total.
func (r *Roller) Damroll(count, sides int) int {
	return r.Roll(Dice{Count: count, Sides: sides}).Total()
}
