package constants

// Game formula constants for まどドラ.
//
// These values are fixed by the game client; every calculator reads them
// from here rather than repeating literals.

// Damage Formula Constants
const (
	// AttackScaleDivisor is the divisor inside pow(attack/124, 1.2)
	AttackScaleDivisor = 124.0

	// AttackScaleExponent is the exponent of the attack scaling term
	AttackScaleExponent = 1.2

	// AttackScaleOffset is added to the attack scaling term
	AttackScaleOffset = 12.0

	// BasicDamageDivisor divides the basic damage product
	BasicDamageDivisor = 20.0

	// DefenseRatioOffset is added to both effective attack and effective defense
	DefenseRatioOffset = 10.0

	// DefenseRatioScale converts the attack/defense ratio to a coefficient
	DefenseRatioScale = 0.12

	// DefenseCoefficientCap is the hard upper bound of the defense coefficient
	DefenseCoefficientCap = 2.0

	// DefenseCapSlack is how far a solved coefficient may exceed the cap
	// before the solve is rejected (absorbs float noise)
	DefenseCapSlack = 0.000001
)

// Elemental Resistance Constants
const (
	// ElementalWeak applies whenever the target is weak to the attacker
	ElementalWeak = 1.2

	// ElementalNormal is the neutral factor (Normal mode, invalid custom input)
	ElementalNormal = 1.0

	// ElementalBattle is the non-weak factor in Battle mode
	ElementalBattle = 0.9

	// ElementalNightmare is the non-weak factor in Nightmare mode
	ElementalNightmare = 0.7

	// ElementalChaos is the non-weak factor in Chaos mode
	ElementalChaos = 0.2

	// AbilityWarningThreshold is the smallest solved ability bonus that
	// triggers the non-weak warning
	AbilityWarningThreshold = 0.0001
)

// Reverse Solver Brackets
const (
	// BaseAttackMin is the lower bracket for the base attack search
	BaseAttackMin = 1.0

	// BaseAttackMax is the upper bracket for the base attack search
	BaseAttackMax = 100000.0

	// BaseAttackTolerance is the bisection tolerance for base attack
	BaseAttackTolerance = 0.1

	// DebuffSolvedMin is the lowest accepted solved debuff percentage
	DebuffSolvedMin = -500.0

	// DebuffSolvedMax is the exclusive upper bound of a solved debuff percentage
	DebuffSolvedMax = 100.0
)

// Timeline Constants
const (
	// TimelineLength is the distance a unit travels before acting
	TimelineLength = 10000.0

	// PositionTolerance is the bisection tolerance for the position search
	PositionTolerance = 0.5

	// SpeedMin is the lower bracket for speed searches
	SpeedMin = 1.0

	// SpeedMax is the upper bracket for speed searches
	SpeedMax = 2000.0

	// SpeedTolerance is the bisection tolerance for speed searches
	SpeedTolerance = 0.1

	// AVBonusMin is the lower bracket for the action value bonus search
	AVBonusMin = -100.0

	// AVBonusMax is the upper bracket for the action value bonus search
	AVBonusMax = 500.0

	// AVBonusTolerance is the bisection tolerance for the bonus search
	AVBonusTolerance = 0.1

	// AVMatchSlack is how far a solved action value may miss its target
	AVMatchSlack = 1.0
)

// Display Constants
const (
	// Placeholder is rendered for results that cannot be computed
	Placeholder = "---"

	// CustomPresetID selects the free-form base defense input
	CustomPresetID = "custom"
)
