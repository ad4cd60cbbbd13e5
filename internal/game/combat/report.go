// Package combat resolves melee and spell attacks between the player and
// monsters: hit checks, slay and technique multipliers, per-effect blow
// handlers, criticals, retaliation auras, and the consequences of death.
//
// Game outcomes are values (AttackReport), never errors.
package combat

// PlayerID identifies the player in reports.
const PlayerID = "player"

// Block names the gate that stopped an attack before any blow resolved.
type Block uint8

const (
	BlockNone Block = iota
	// BlockGlyph means a glyph of warding held.
	BlockGlyph
	// BlockFear means the attacker was too afraid to fight.
	BlockFear
)

func (b Block) String() string {
	switch b {
	case BlockGlyph:
		return "glyph"
	case BlockFear:
		return "fear"
	default:
		return "none"
	}
}

// AttackReport summarises one attack action.
type AttackReport struct {
	// AttackerID is the attacking actor's ID.
	AttackerID string
	// DefenderID is the defending actor's ID.
	DefenderID string
	// Blows is how many blows the attacker had available.
	Blows int
	// Processed is how many blows were attempted before the loop ended.
	Processed int
	// Hits is how many blows connected.
	Hits int
	// Damage is the total hit points the defender lost.
	Damage int
	// Repelled counts blows stopped by protection from evil.
	Repelled int
	// Absorbed counts blows taken by a decoy.
	Absorbed int
	// Blocked is set when the whole action was stopped up front.
	Blocked Block
	// DefenderDied is true when the defender was killed.
	DefenderDied bool
	// AttackerDied is true when retaliation killed the attacker.
	AttackerDied bool
	// Blinked is true when a thief teleported away after stealing.
	Blinked bool
	// Fled is true when the monster broke off in fear.
	Fled bool
}
