package encounter

// Tracker releases an encounter's waves as their triggers fire. It only
// ever sees the number of enemies still alive.
type Tracker struct {
	def     Def
	next    int
	spawned int
}

// NewTracker starts tracking def from its first wave.
func NewTracker(def Def) *Tracker {
	return &Tracker{def: def}
}

// Def returns the tracked encounter.
func (t *Tracker) Def() Def {
	return t.def
}

// HasMoreWaves reports whether any wave is still held back.
func (t *Tracker) HasMoreWaves() bool {
	return t.next < len(t.def.Waves)
}

// ShouldSpawnNextWave evaluates the next wave's trigger.
func (t *Tracker) ShouldSpawnNextWave(alive int) bool {
	return t.HasMoreWaves() && t.def.Waves[t.next].Trigger.Fires(alive)
}

// Advance returns the next wave and marks it spawned.
func (t *Tracker) Advance() (WaveDef, bool) {
	if !t.HasMoreWaves() {
		return WaveDef{}, false
	}
	w := t.def.Waves[t.next]
	t.next++
	t.spawned += len(w.Enemies)
	return w, true
}

// IsEncounterComplete reports whether every wave has been released, at
// least one enemy was spawned, and none are left alive.
func (t *Tracker) IsEncounterComplete(alive int) bool {
	return !t.HasMoreWaves() && alive == 0 && t.spawned > 0
}

// WaveIndex returns the index of the next wave to release.
func (t *Tracker) WaveIndex() int {
	return t.next
}

// Spawned returns how many enemies have been released so far.
func (t *Tracker) Spawned() int {
	return t.spawned
}
