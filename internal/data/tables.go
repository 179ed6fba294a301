package data

import (
	"slices"
	"strings"
)

// --- MP recovery actions ---

// MPAction identifies an event that restores MP.
type MPAction string

const (
	ActionNormalAttack     MPAction = "NormalAttack"
	ActionSkill            MPAction = "Skill"
	ActionTookDamageHighHP MPAction = "TookDamageHighHP"
	ActionTookDamageMidHP  MPAction = "TookDamageMidHP"
	ActionTookDamageLowHP  MPAction = "TookDamageLowHP"
	ActionDoT              MPAction = "DoT"
	ActionUltimateUsed     MPAction = "UltimateUsed"
	ActionEnemyDefeated    MPAction = "EnemyDefeated"
)

type mpActionDef struct {
	action MPAction
	label  string
	base   float64
}

// Display order matches the in-game list.
var mpActionDefs = []mpActionDef{
	{ActionNormalAttack, "通常攻撃", 15},
	{ActionSkill, "戦闘スキル", 30},
	{ActionTookDamageHighHP, "被弾 (HP40%以上)", 5},
	{ActionTookDamageMidHP, "被弾 (HP10%～40%)", 10},
	{ActionTookDamageLowHP, "被弾 (HP0%～HP10%)", 15},
	{ActionDoT, "継続ダメージ", 2},
	{ActionUltimateUsed, "必殺技使用後", 5},
	{ActionEnemyDefeated, "敵撃破", 10},
}

// MPActionBase returns the base MP restored by action.
func MPActionBase(action MPAction) (float64, bool) {
	for _, d := range mpActionDefs {
		if d.action == action {
			return d.base, true
		}
	}
	return 0, false
}

// MPActionLabel returns the in-game label of action.
func MPActionLabel(action MPAction) string {
	for _, d := range mpActionDefs {
		if d.action == action {
			return d.label
		}
	}
	return string(action)
}

// MPActions lists every action in display order.
func MPActions() []MPAction {
	out := make([]MPAction, len(mpActionDefs))
	for i, d := range mpActionDefs {
		out[i] = d.action
	}
	return out
}

// ParseMPAction matches s case-insensitively against action names.
func ParseMPAction(s string) (MPAction, bool) {
	for _, d := range mpActionDefs {
		if strings.EqualFold(string(d.action), strings.TrimSpace(s)) {
			return d.action, true
		}
	}
	return "", false
}

// --- Roles and break bonus ---

// Role is a character role.
type Role string

const (
	RoleAttacker Role = "Attacker"
	RoleBreaker  Role = "Breaker"
	RoleBuffer   Role = "Buffer"
	RoleDebuffer Role = "Debuffer"
	RoleDefender Role = "Defender"
	RoleHealer   Role = "Healer"
)

var roleOrder = []Role{RoleAttacker, RoleBreaker, RoleBuffer, RoleDebuffer, RoleDefender, RoleHealer}

// BreakBonusByRole is the break bonus percentage granted per role.
var BreakBonusByRole = map[Role]float64{
	RoleBreaker:  20,
	RoleBuffer:   12,
	RoleDebuffer: 12,
	RoleDefender: 10,
	RoleHealer:   10,
	RoleAttacker: 5,
}

// Roles lists every role in display order.
func Roles() []Role {
	return slices.Clone(roleOrder)
}

// ParseRole matches s case-insensitively against role names.
func ParseRole(s string) (Role, bool) {
	for _, r := range roleOrder {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}
