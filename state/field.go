package state

// WeatherID is the active field weather.
type WeatherID int8

const (
	WeatherNone WeatherID = iota
	WeatherRain
	WeatherSun
	WeatherSand
	WeatherHail
	WeatherSnow
)

// TerrainID is the active field terrain.
type TerrainID int8

const (
	TerrainNone TerrainID = iota
	TerrainElectric
	TerrainGrassy
	TerrainMisty
	TerrainPsychic
)

// FieldState is the small fixed-width record carrying weather, terrain,
// room effects, and the turn counter.
type FieldState struct {
	Weather       WeatherID
	WeatherTurns  int8
	Terrain       TerrainID
	TerrainTurns  int8
	TrickRoom     int8 // remaining turns, 0 = inactive
	MagicRoom     int8
	WonderRoom    int8
	Turn          int
}

// TrickRoomActive reports whether Trick Room is currently inverting speed
// order.
func (f *FieldState) TrickRoomActive() bool { return f.TrickRoom > 0 }

// WonderRoomActive reports whether Def/SpD are swapped for the damage
// pipeline.
func (f *FieldState) WonderRoomActive() bool { return f.WonderRoom > 0 }
