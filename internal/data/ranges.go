package data

// Calculator groups numeric inputs by the calculator that owns them.
type Calculator string

const (
	CalcDamage Calculator = "damage"
	CalcMP     Calculator = "mp"
	CalcHP     Calculator = "hp"
	CalcAction Calculator = "action"
	CalcStatus Calculator = "status"
)

// NumericRange is the default accepted interval of a numeric input.
type NumericRange struct {
	Key        string
	Calculator Calculator
	Min        float64
	Max        float64
}

// NumericRanges lists the default range of every configurable numeric
// input. Buff keys ending in _total apply to the field in total mode only.
var NumericRanges = []NumericRange{
	{"baseAttack_dmgCalc", CalcDamage, 0, 6000},
	{"skillMultiplier_dmgCalc", CalcDamage, 0, 500},
	{"attackBuffs_dmgCalc_total", CalcDamage, 0, 200},
	{"attackDebuffs_dmgCalc_total", CalcDamage, 0, 99},
	{"damageDealtUp_dmgCalc_total", CalcDamage, 0, 200},
	{"abilityDamageUp_dmgCalc_total", CalcDamage, 0, 60},
	{"critDamage_dmgCalc_total", CalcDamage, 0, 100},
	{"defenseBuffs_dmgCalc_total", CalcDamage, 0, 200},
	{"defenseDebuffs_dmgCalc_total", CalcDamage, 0, 99},
	{"damageTaken_dmgCalc_total", CalcDamage, 0, 100},
	{"customBaseDefense_dmgCalc", CalcDamage, 0, 6000},
	{"customBattleModeMultiplier_dmgCalc", CalcDamage, 0, 10},
	{"breakBonus_dmgCalc", CalcDamage, 100, 1000},
	{"otherMultiplier_dmgCalc", CalcDamage, 0, 100},
	{"targetFinalDamage_dmgCalc", CalcDamage, 0, 1000000},

	{"specificIncrease_mpCalc", CalcMP, 0, 100},
	{"actionMpRecoveryBonus_mpCalc_total", CalcMP, 0, 100},
	{"dotTicks_mpCalc", CalcMP, 0, 100},
	{"skillTargetUltimateMpCost_mpCalc", CalcMP, 0, 150},
	{"skillRecoveryEffectPercent_mpCalc", CalcMP, 0, 100},
	{"skillEffectMpRecoveryBonus_mpCalc_total", CalcMP, 0, 100},

	{"baseHp_hpCalc", CalcHP, 0, 20000},
	{"maxHpBuffs_hpCalc_total", CalcHP, 0, 200},
	{"maxHpDebuffs_hpCalc_total", CalcHP, 0, 99},
	{"skillMultiplier_hpCalc", CalcHP, 0, 50},
	{"fixedValue_hpCalc", CalcHP, 0, 100},
	{"hpRecoveryBuffs_hpCalc_total", CalcHP, 0, 200},
	{"hpRecoveryDebuffs_hpCalc_total", CalcHP, 0, 99},

	{"currentTimelinePosition_avCalc", CalcAction, 0, 10000},
	{"characterSpeed_avCalc", CalcAction, 1, 2000},
	{"targetInitialAV_avCalc", CalcAction, 0, 10000},
	{"currentAVForModification_avCalc", CalcAction, 0, 10000},
	{"actionValueBonus_avCalc", CalcAction, -100, 500},
	{"targetModifiedAV_avCalc", CalcAction, 0, 10000},

	{"memoryHp_sc", CalcStatus, 0, 10000},
	{"memoryAttack_sc", CalcStatus, 0, 5000},
	{"memoryDefense_sc", CalcStatus, 0, 5000},
	{"memorySpeed_sc", CalcStatus, 0, 150},
	{"supportHp_sc", CalcStatus, 0, 10000},
	{"supportAttack_sc", CalcStatus, 0, 5000},
	{"supportDefense_sc", CalcStatus, 0, 5000},
	{"supportReflectionRate_sc", CalcStatus, 0, 25},
	{"portraitHp_sc", CalcStatus, 0, 1500},
	{"portraitAttack_sc", CalcStatus, 0, 500},
	{"portraitDefense_sc", CalcStatus, 0, 500},
	{"abilityHpBuff_sc_total", CalcStatus, 0, 200},
	{"abilityAttackBuff_sc_total", CalcStatus, 0, 200},
	{"abilityDefenseBuff_sc_total", CalcStatus, 0, 200},
	{"abilitySpeedBuff_sc_total", CalcStatus, 0, 100},
}

// FindNumericRange returns the default range registered for key.
func FindNumericRange(key string) (NumericRange, bool) {
	for _, r := range NumericRanges {
		if r.Key == key {
			return r, true
		}
	}
	return NumericRange{}, false
}
