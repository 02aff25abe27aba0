package state

import "github.com/pokesim/battlecore/data"

// SetHP writes a Pokemon's current HP, clamping to [0, maxHP], setting
// fainted status on zero, and appending a log record. source names the cause for the
// log (e.g. "move:75", "residual:poison", "hazard:stealthrock").
func (bs *BattleState) SetHP(side, teamIndex, newHP int, source string) {
	p := &bs.Pokemon[side][teamIndex]
	before := p.CurrentHP
	if newHP < 0 {
		newHP = 0
	}
	if max := p.MaxHP(); newHP > max {
		newHP = max
	}
	p.CurrentHP = newHP
	if newHP == 0 {
		p.Status = data.StatusFainted
	}
	kind := LogHeal
	if newHP < before {
		kind = LogDamage
	}
	bs.Log.Append(LogRecord{
		Kind: kind, Side: side, Slot: teamIndex,
		NewHP: newHP, MaxHP: p.MaxHP(), Source: source,
	})
}

// Damage subtracts dmg HP (clamped to current HP) and returns the amount
// actually removed.
func (bs *BattleState) Damage(side, teamIndex, dmg int, source string) int {
	p := &bs.Pokemon[side][teamIndex]
	if dmg < 0 {
		dmg = 0
	}
	if dmg > p.CurrentHP {
		dmg = p.CurrentHP
	}
	newHP := p.CurrentHP - dmg
	p.CurrentHP = newHP
	if newHP == 0 {
		p.Status = data.StatusFainted
	}
	bs.Log.Append(LogRecord{Kind: LogDamage, Side: side, Slot: teamIndex, NewHP: newHP, MaxHP: p.MaxHP(), Source: source})
	return dmg
}

// Heal adds HP, clamped to max, and logs it.
func (bs *BattleState) Heal(side, teamIndex, amount int, source string) int {
	p := &bs.Pokemon[side][teamIndex]
	if amount < 0 {
		amount = 0
	}
	max := p.MaxHP()
	newHP := p.CurrentHP + amount
	if newHP > max {
		newHP = max
	}
	healed := newHP - p.CurrentHP
	p.CurrentHP = newHP
	bs.Log.Append(LogRecord{Kind: LogHeal, Side: side, Slot: teamIndex, NewHP: newHP, MaxHP: max, Source: source})
	return healed
}

// SetStatus sets the primary status, refusing to override an existing
// non-none status with another non-none one, and logs the change. Returns whether it applied.
func (bs *BattleState) SetStatus(side, teamIndex int, status data.Status, source string) bool {
	p := &bs.Pokemon[side][teamIndex]
	if p.Status != data.StatusNone && status != data.StatusNone {
		return false
	}
	p.Status = status
	p.StatusCounter = 0
	bs.Log.Append(LogRecord{Kind: LogStatus, Side: side, Slot: teamIndex, StatusKind: int8(status), Source: source})
	return true
}

// CureStatus clears a non-fainted primary status.
func (bs *BattleState) CureStatus(side, teamIndex int, source string) {
	p := &bs.Pokemon[side][teamIndex]
	if p.Status == data.StatusFainted {
		return
	}
	p.Status = data.StatusNone
	p.StatusCounter = 0
	bs.Log.Append(LogRecord{Kind: LogCure, Side: side, Slot: teamIndex, Source: source})
}

// AdjustStage moves a stat stage by delta, clamping to [-6, +6], and logs the applied (post-clamp) delta.
func (bs *BattleState) AdjustStage(side, teamIndex int, axis data.StageAxis, delta int, source string) int {
	p := &bs.Pokemon[side][teamIndex]
	before := int(p.Stages[axis])
	after := before + delta
	if after < data.MinStage {
		after = data.MinStage
	}
	if after > data.MaxStage {
		after = data.MaxStage
	}
	p.Stages[axis] = int8(after)
	applied := after - before
	bs.Log.Append(LogRecord{Kind: LogBoost, Side: side, Slot: teamIndex, StageAxis: int8(axis), Delta: applied, Source: source})
	return applied
}

// ClearStages resets every stat stage to 0 (used on switch-out, and by
// effects like haze).
func (bs *BattleState) ClearStages(side, teamIndex int) {
	p := &bs.Pokemon[side][teamIndex]
	p.Stages = [data.NumStageAxes]int8{}
}

// ConsumePP decrements PP for a move slot actually attempted, clamped at 0.
func (bs *BattleState) ConsumePP(side, teamIndex, moveSlot int) {
	if bs.PP[side][teamIndex][moveSlot] > 0 {
		bs.PP[side][teamIndex][moveSlot]--
	}
}
