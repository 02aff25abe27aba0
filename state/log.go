package state

// LogKind identifies the shape of a LogRecord.
type LogKind int8

const (
	LogSwitch LogKind = iota
	LogMove
	LogDamage
	LogHeal
	LogStatus
	LogCure
	LogBoost
	LogFaint
	LogSideStart
	LogSideEnd
	LogFieldStart
	LogFieldEnd
	LogAbilityActivate
	LogItemEnd
	LogImmune
	LogMiss
	LogCrit
	LogEffectiveness
	LogTurnStart
	LogFail
)

// LogRecord is one ordered, immutable entry in the battle's log stream.
// Fields are a superset over all record kinds; only the ones relevant to
// Kind are populated, the way a tagged-variant record would be in a
// systems-language target.
type LogRecord struct {
	Kind LogKind

	Side int
	Slot int

	Species   int32
	MoveID    int32
	Targets   []int

	NewHP  int
	MaxHP  int
	Source string

	StatusKind int8

	StageAxis int8
	Delta     int

	Condition string
	Remaining int

	Reason string

	Multiplier string // printable exact rational, e.g. "2/1"

	Turn int
}

// LogStream is the ordered, append-only sequence of records emitted as a
// battle progresses. It is the only externally observable
// intermediate state during a turn.
type LogStream struct {
	records []LogRecord
}

// Append adds a record to the end of the stream.
func (l *LogStream) Append(r LogRecord) { l.records = append(l.records, r) }

// Records returns the full stream so far. Callers must not mutate it.
func (l *LogStream) Records() []LogRecord { return l.records }

// Len reports how many records have been emitted.
func (l *LogStream) Len() int { return len(l.records) }
