package damage

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/numeric"
	"github.com/pokesim/battlecore/state"
)

// Pipeline resolves one damaging move against one target, implementing
// steps 2-9. Step 1's pre-move rolls are ResolvePreMove, which the
// scheduler calls once per move action ahead of any ResolveHit, and step
// 10's on_after_move fires from the scheduler once every target is done.
type Pipeline struct {
	State      *state.BattleState
	Dispatch   *dispatch.Dispatcher
	Registry   *data.Registry
}

// New builds a Pipeline bound to one battle's state/dispatcher/registry.
func New(bs *state.BattleState, d *dispatch.Dispatcher, reg *data.Registry) *Pipeline {
	return &Pipeline{State: bs, Dispatch: d, Registry: reg}
}

// HitOutcome is the result of resolving one move against one target.
type HitOutcome struct {
	Missed      bool
	Immune      bool
	ImmuneWhy   string
	Damage      int
	Effective   numeric.Rational
	Crit        bool
	Fainted     bool
}

// ResolveHit runs steps 2-9 for attacker's move against target.
// spreadHit is true when the move is hitting more than one target in this
// execution; hitNum is the 0-indexed hit of a
// multi-hit sequence for per-hit secondary/effectiveness rolls.
func (p *Pipeline) ResolveHit(attacker, target dispatch.Ref, move *data.Move, spreadHit bool, hitNum int) (HitOutcome, error) {
	ctx := &dispatch.Context{State: p.State, Attacker: attacker, Target: target, HasTarget: true, Move: move, HitNum: hitNum}

	// step 2: type resolution. on_modify_type handlers mutate ctx.RunningType
	// directly (they hold a pointer to ctx), since a type isn't expressible
	// as a Rational multiplier.
	ctx.RunningType = move.Type
	p.Dispatch.Fire(data.HookModifyType, ctx)
	runningType := ctx.RunningType

	atkP := p.State.TeamPokemon(attacker.Side, attacker.Team)
	tgtP := p.State.TeamPokemon(target.Side, target.Team)

	// step 3: accuracy roll
	if move.Accuracy != data.AccuracyAlwaysHits {
		accNum, accDen := p.State.AccuracyMultiplier(attacker.Side, attacker.Team)
		evaNum, evaDen := p.State.EvasionMultiplier(target.Side, target.Team)
		effective := numeric.R(int64(move.Accuracy)*int64(accNum)*int64(evaDen), int64(accDen)*int64(evaNum))
		accMult, _ := p.Dispatch.FireMultiplier(data.HookModifyAccuracy, ctx)
		effective = effective.Mul(accMult)
		effPercent := int(effective.ApplyFloor(1))
		if effPercent > 100 {
			effPercent = 100
		}
		if effPercent < 0 {
			effPercent = 0
		}
		draw := p.State.RNG.Intn(100)
		if draw >= effPercent {
			p.State.Log.Append(state.LogRecord{Kind: state.LogMiss, Side: target.Side, Slot: target.Team})
			return HitOutcome{Missed: true}, nil
		}
	}

	// step 4: immunity / on_try_hit
	if cancelled, immune := p.Dispatch.FireCancel(data.HookTryHit, ctx); cancelled {
		if immune {
			p.State.Log.Append(state.LogRecord{Kind: state.LogImmune, Side: target.Side, Slot: target.Team, Reason: "ability_or_type"})
			return HitOutcome{Immune: true, ImmuneWhy: "handler"}, nil
		}
		p.State.Log.Append(state.LogRecord{Kind: state.LogFail, Side: target.Side, Slot: target.Team, Reason: "on_try_hit"})
		return HitOutcome{Missed: true}, nil
	}
	if move.Category != data.CategoryStatus {
		eff := data.CombinedEffectiveness(runningType, tgtP.DefendingTypes()...)
		if eff.IsZero() {
			p.State.Log.Append(state.LogRecord{Kind: state.LogImmune, Side: target.Side, Slot: target.Team, Reason: "type"})
			return HitOutcome{Immune: true, ImmuneWhy: "type"}, nil
		}
	}

	if move.Category == data.CategoryStatus {
		return HitOutcome{}, nil
	}

	// step 5: base power
	power := numeric.R(int64(move.BasePower), 1)
	bpMult, _ := p.Dispatch.FireMultiplier(data.HookBasePower, ctx)
	power = power.Mul(bpMult)
	basePower := int(power.ApplyFloor(1))
	if basePower < 1 {
		basePower = 1
	}

	// step 6: offensive/defensive stats
	offAxis, defAxis := data.Atk, data.Def
	offHook, defHook := data.HookModifyAtk, data.HookModifyDef
	if move.Category == data.CategorySpecial {
		offAxis, defAxis = data.SpA, data.SpD
		offHook, defHook = data.HookModifySpA, data.HookModifySpD
	}
	if p.State.Field.WonderRoomActive() {
		defAxis = data.SpD + data.Def - defAxis // swap Def/SpD
	}

	offStage := atkP.Stages[stageAxisFor(offAxis)]
	defStage := tgtP.Stages[stageAxisFor(defAxis)]

	// crit stage: intrinsic high-crit-ratio moves contribute directly, then
	// on_modify_crit_stage handlers (Focus Energy) add to ctx.Extra the same
	// way on_modify_type handlers mutate ctx.RunningType.
	ctx.Extra = 0
	if move.HasFlag(data.FlagHighCritRatio) {
		ctx.Extra++
	}
	p.Dispatch.Fire(data.HookModifyCritStage, ctx)
	critNum, critDen := CritChance(ctx.Extra)
	isCrit := p.State.RNG.Bool(critNum, critDen)
	if isCrit {
		if offStage < 0 {
			offStage = 0
		}
		if defStage > 0 {
			defStage = 0
		}
	}

	offNum, offDen := state.StageMultiplier(offStage)
	atkStat := atkP.Stats[offAxis] * offNum / offDen
	atkMult, _ := p.Dispatch.FireMultiplier(offHook, ctx)
	atkStat = int(atkMult.ApplyFloor(int64(atkStat)))
	if atkP.Status == data.StatusBurn && offAxis == data.Atk {
		atkStat /= 2
	}

	defNum, defDen := state.StageMultiplier(defStage)
	defStat := tgtP.Stats[defAxis] * defNum / defDen
	defMult, _ := p.Dispatch.FireMultiplier(defHook, ctx)
	defStat = int(defMult.ApplyFloor(int64(defStat)))
	if defStat < 1 {
		defStat = 1
	}
	if atkStat < 1 {
		atkStat = 1
	}

	// step 7: damage formula
	level := int(atkP.Level)
	dmg := BaseDamage(level, basePower, atkStat, defStat)

	// step 8: multiplicative modifiers, in fixed order
	chain := numeric.One
	if spreadHit {
		chain = chain.Mul(numeric.R(3, 4))
	}
	chain = chain.Mul(weatherMultiplier(p.State.Field.Weather, runningType))
	if isCrit {
		chain = chain.Mul(CritMultiplier)
		p.State.Log.Append(state.LogRecord{Kind: state.LogCrit, Side: target.Side, Slot: target.Team})
	}
	randNum := p.State.RNG.Intn(16) + 85
	chain = chain.Mul(numeric.R(int64(randNum), 100))

	stab := stabMultiplier(atkP, runningType, move)
	if override, _ := p.Dispatch.FireMultiplier(data.HookModifySTAB, ctx); !override.IsOne() {
		// Adaptability-style abilities replace the normal 1.5x/2x tiers
		// outright rather than stacking with them.
		stab = override
	}
	chain = chain.Mul(stab)

	eff := data.CombinedEffectiveness(runningType, tgtP.DefendingTypes()...)
	chain = chain.Mul(eff)

	chain = chain.Mul(p.screenMultiplier(target, move))

	dmMult, _ := p.Dispatch.FireMultiplier(data.HookModifyDamage, ctx)
	chain = chain.Mul(dmMult)

	dmg = int(chain.ApplyFloor(int64(dmg)))
	if dmg < 1 {
		dmg = 1
	}

	// step 9: application
	actual := p.State.Damage(target.Side, target.Team, dmg, "move:"+move.Name)
	p.State.Log.Append(state.LogRecord{Kind: state.LogEffectiveness, Side: target.Side, Slot: target.Team, Multiplier: ratString(eff)})

	fainted := p.State.TeamPokemon(target.Side, target.Team).IsFainted()
	if fainted {
		p.State.Log.Append(state.LogRecord{Kind: state.LogFaint, Side: target.Side, Slot: target.Team})
	}

	ctx.Damage = actual
	p.Dispatch.Fire(data.HookDamagingHit, ctx)

	if move.SelfEffect == data.SelfRecoil && move.RecoilNum > 0 {
		recoil := actual * move.RecoilNum / move.RecoilDen
		if recoil < 1 {
			recoil = 1
		}
		p.State.Damage(attacker.Side, attacker.Team, recoil, "recoil:"+move.Name)
	}
	if move.SelfEffect == data.SelfDrain && move.RecoilNum > 0 {
		heal := actual * move.RecoilNum / move.RecoilDen
		p.State.Heal(attacker.Side, attacker.Team, heal, "drain:"+move.Name)
	}

	p.resolveSecondaries(ctx, move, attacker, target)

	return HitOutcome{Damage: actual, Effective: eff, Crit: isCrit, Fainted: fainted}, nil
}

func (p *Pipeline) resolveSecondaries(ctx *dispatch.Context, move *data.Move, attacker, target dispatch.Ref) {
	tgt := p.State.TeamPokemon(target.Side, target.Team)
	if tgt.IsFainted() {
		return
	}
	for _, sec := range move.Secondaries {
		if !p.State.RNG.Bool(sec.ChanceN, sec.ChanceD) {
			continue
		}
		switch sec.Kind {
		case data.SecondaryStatus:
			p.State.SetStatus(target.Side, target.Team, sec.Status, "secondary:"+move.Name)
		case data.SecondaryStatDrop:
			p.State.AdjustStage(target.Side, target.Team, sec.StageAxis, -sec.Delta, "secondary:"+move.Name)
		case data.SecondaryStatBoost:
			p.State.AdjustStage(attacker.Side, attacker.Team, sec.StageAxis, sec.Delta, "secondary:"+move.Name)
		case data.SecondaryFlinch:
			tgt.Volatiles.Set(state.VolatileFlinch)
		}
	}
}

func stageAxisFor(stat data.Stat) data.StageAxis {
	switch stat {
	case data.Atk:
		return data.StageAtk
	case data.Def:
		return data.StageDef
	case data.SpA:
		return data.StageSpA
	case data.SpD:
		return data.StageSpD
	default:
		return data.StageSpe
	}
}

// stabMultiplier computes the same-type-attack-bonus multiplier, including
// Tera's boundary case: a terastallized Pokemon using a move of its Tera
// type that is also one of its original types gets exactly x2; Tera type
// alone or an original type alone still gets the normal x1.5, since
// Terastallizing preserves the attacker's pre-Tera STAB eligibility.
func stabMultiplier(p *state.PokemonRecord, moveType data.Type, move *data.Move) numeric.Rational {
	original := p.HasOriginalType(moveType)
	if p.Terastallized {
		teraMatch := p.TeraType == moveType
		switch {
		case teraMatch && original:
			return numeric.R(2, 1)
		case teraMatch || original:
			return numeric.R(3, 2)
		default:
			return numeric.One
		}
	}
	if original {
		return numeric.R(3, 2)
	}
	return numeric.One
}

// screenMultiplier applies reflect/light-screen/aurora-veil. Infiltrator is a per-ability bypass
// expressed as an on_try_hit immunity upstream, so it never reaches here;
// this only needs to pick singles vs doubles and fold in aurora veil.
func (p *Pipeline) screenMultiplier(target dispatch.Ref, move *data.Move) numeric.Rational {
	if move.Category == data.CategoryStatus {
		return numeric.One
	}
	side := &p.State.Sides[target.Side]
	screened := side.Conditions[state.SideReflect] > 0 || side.Conditions[state.SideAuroraVeil] > 0
	if move.Category == data.CategorySpecial {
		screened = side.Conditions[state.SideLightScreen] > 0 || side.Conditions[state.SideAuroraVeil] > 0
	}
	if !screened {
		return numeric.One
	}
	if p.State.Format.ActiveSlots > 1 {
		if p.State.Format.ScreenDamageMode == state.ScreenDamageClassic {
			return numeric.R(1, 2)
		}
		return numeric.R(2732, 4096)
	}
	return numeric.R(1, 2)
}

func weatherMultiplier(w state.WeatherID, t data.Type) numeric.Rational {
	switch w {
	case state.WeatherRain:
		if t == data.Water {
			return numeric.R(3, 2)
		}
		if t == data.Fire {
			return numeric.R(1, 2)
		}
	case state.WeatherSun:
		if t == data.Fire {
			return numeric.R(3, 2)
		}
		if t == data.Water {
			return numeric.R(1, 2)
		}
	}
	return numeric.One
}

func ratString(r numeric.Rational) string {
	if r.Den == 1 {
		return itoa(r.Num) + "/1"
	}
	return itoa(r.Num) + "/" + itoa(r.Den)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [24]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
