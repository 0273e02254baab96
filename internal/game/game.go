package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"gravedelve/assets"
	"gravedelve/internal/component"
	"gravedelve/internal/ecs"
	"gravedelve/internal/factory"
	"gravedelve/internal/gamemap"
	"gravedelve/internal/generate"
	"gravedelve/internal/loot"
	"gravedelve/internal/render"
	"gravedelve/internal/run"
	"gravedelve/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
)

// GameState tracks the main state machine.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateDead
	StateVictory
)

// Game is the top-level orchestrator: screen, run context, and the state
// machine around them.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	lib      *assets.Library
	factory  *factory.Factory
	saves    *gdata.Manager

	run      *run.Run
	playerID ecs.EntityID
	state    GameState
	messages []string
	xp       int
	runLog   RunLog
}

// New creates a Game with the screen and definition library initialized.
func New() (*Game, error) {
	lib, err := assets.Load()
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	// Save-data failures degrade to in-memory pity counters.
	saves, err := gdata.Open(gdata.Config{AppName: "gravedelve"})
	if err != nil {
		saves = nil
	}

	g := &Game{
		screen:  screen,
		lib:     lib,
		factory: factory.New(lib),
		saves:   saves,
	}
	g.resetForRun()
	return g, nil
}

// resetForRun builds a fresh run context. Pity counters left over from an
// interrupted run are restored from disk; a completed run clears them.
func (g *Game) resetForRun() {
	g.state = StatePlaying
	g.messages = nil
	g.playerID = ecs.NilEntity
	g.xp = 0
	g.runLog = RunLog{
		MonstersSlain: make(map[string]int),
		ItemsUsed:     make(map[string]int),
	}

	g.run = run.New(rand.New(rand.NewSource(time.Now().UnixNano())), g.lib.Registry())
	g.run.Log = g.addMessage
	if st, err := loot.LoadPityState(g.saves); err == nil {
		g.run.Pity.State = st
	}
}

// endRun clears the persisted pity counters; the next run starts fresh.
func (g *Game) endRun() {
	g.run.Pity.State.Reset()
	loot.SavePityState(g.saves, g.run.Pity.State) //nolint:errcheck — best effort
	saveRunLog(g.runLog)
}

// loadDepth generates, populates, and enters the given depth. Beyond the
// first depth the player's HP and earned stat upgrades carry over.
func (g *Game) loadDepth(depth int) {
	var savedHP *component.Health
	var savedCombat *component.Combat
	if g.playerID != ecs.NilEntity && g.run.World.Alive(g.playerID) {
		if c := g.run.World.Get(g.playerID, component.CHealth); c != nil {
			h := c.(component.Health)
			savedHP = &h
		}
		if c := g.run.World.Get(g.playerID, component.CCombat); c != nil {
			cb := c.(component.Combat)
			savedCombat = &cb
		}
	}

	g.run.ResetWorld()
	g.run.Depth = depth
	if depth > g.runLog.DepthReached {
		g.runLog.DepthReached = depth
	}

	cfg := depthConfig(depth, g.run.Rand)
	gmap, px, py := generate.Generate(cfg)
	g.run.Map = gmap
	g.wireFactory()

	pop := generate.Populate(gmap, cfg, g.lib, g.run.Pity)
	for _, ms := range pop.Monsters {
		id := g.run.SpawnMonster(ms.Kind, ms.X, ms.Y)
		if id != ecs.NilEntity && len(ms.Carry) > 0 {
			g.run.World.Add(id, component.LootCarry{ItemIDs: ms.Carry})
		}
	}
	for _, is := range pop.Items {
		g.run.SpawnItem(is.ID, is.X, is.Y)
	}
	for _, res := range pop.Pity {
		if res.Fired {
			g.runLog.PityDrops++
		}
	}
	loot.SavePityState(g.saves, g.run.Pity.State) //nolint:errcheck

	g.playerID = g.factory.NewPlayer(g.run.World, px, py)
	if depth > 1 {
		if savedCombat != nil {
			g.run.World.Add(g.playerID, *savedCombat)
		}
		if savedHP != nil {
			hp := g.run.World.Get(g.playerID, component.CHealth).(component.Health)
			hp.Current = min(savedHP.Current, hp.Max())
			g.run.World.Add(g.playerID, hp)
		}
	}

	system.RefreshShieldWalls(g.run.World)
	system.UpdateFOV(g.run.World, gmap, g.playerID, g.lib.Player().Sight)
	g.renderer = render.NewRenderer(g.screen, depth)
	g.renderer.CenterOn(px, py)

	if depth == 1 {
		g.addMessage("You slip into the barrow as the sun dies. Find what the dead keep.")
	} else {
		g.addMessage(fmt.Sprintf("You descend to depth %d.", depth))
	}
}

// wireFactory binds the entity-factory callbacks for the current world and
// depth. Splits and death drops flow through these.
func (g *Game) wireFactory() {
	g.run.SpawnMonster = func(kind string, x, y int) ecs.EntityID {
		return g.factory.NewMonster(g.run.World, kind, x, y, g.run.Depth)
	}
	g.run.SpawnItem = func(itemID string, x, y int) ecs.EntityID {
		return g.factory.NewItem(g.run.World, itemID, x, y)
	}
}

// Run is the main loop. Supports consecutive runs via the end screen.
func (g *Game) Run() {
	defer g.screen.Fini()

	for {
		g.resetForRun()
		g.loadDepth(1)
		g.addMessage("Move with hjkl, wasd, or arrows. , picks up, > descends, . waits.")

		for g.state == StatePlaying {
			pos := g.playerPosition()
			g.renderer.CenterOn(pos.X, pos.Y)
			g.renderer.DrawFrame(g.run.World, g.run.Map, g.playerID)
			g.renderer.DrawHUD(g.run.World, g.playerID, g.run.Depth, g.xp, g.messages)

			switch ev := g.screen.PollEvent().(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				continue
			case *tcell.EventKey:
				action := keyToAction(ev)
				if action == ActionQuit {
					return
				}
				g.processAction(action)
			}
		}

		g.endRun()
		if !g.showEndScreen() {
			return
		}
	}
}

// processAction handles one player action and, when it costs a turn, the
// monsters' reply.
func (g *Game) processAction(action Action) {
	turnUsed := false

	switch action {
	case ActionWait:
		turnUsed = true

	case ActionDescend:
		pos := g.playerPosition()
		if g.run.Map.At(pos.X, pos.Y).Kind == gamemap.TileStairsDown {
			if g.run.Depth >= MaxDepth {
				g.addMessage("The stair ends in packed earth. There is nothing below.")
			} else {
				g.loadDepth(g.run.Depth + 1)
				return
			}
		} else {
			g.addMessage("There are no stairs here.")
		}

	case ActionPickup:
		turnUsed = g.tryPickup()

	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return
		}
		result, target := system.TryMove(g.run.World, g.run.Map, g.playerID, dx, dy)
		switch result {
		case system.MoveOK:
			turnUsed = true
			system.UpdateFOV(g.run.World, g.run.Map, g.playerID, g.lib.Player().Sight)
		case system.MoveAttack:
			g.playerAttack(target)
			turnUsed = true
		case system.MoveBlocked:
			// no message for walking into walls
		}
	}

	if !turnUsed {
		return
	}
	g.runLog.TurnsPlayed++

	system.RefreshShieldWalls(g.run.World)
	hits := system.ProcessAI(g.run, g.playerID)
	for _, h := range hits {
		g.reportHitOnPlayer(h)
	}
	for _, out := range system.TickPlague(g.run) {
		if out.Target == g.playerID && out.Amount > 0 {
			g.runLog.DamageTaken += out.Amount
			g.runLog.CauseOfDeath = "the plague"
			g.addMessage(fmt.Sprintf("The plague burns through you. (%d damage)", out.Amount))
		}
	}
	system.RefreshShieldWalls(g.run.World)

	if g.run.PlayerDead() {
		g.runLog.CauseOfDeath = g.run.DeathCause()
		g.state = StateDead
	}
}

// playerAttack swings at the bumped entity and narrates the outcome.
func (g *Game) playerAttack(target ecs.EntityID) {
	name := g.entityName(target)
	weapon := component.Weapon{}
	if c := g.run.World.Get(g.playerID, component.CCombat); c != nil {
		weapon = c.(component.Combat).Weapon
	}

	out := system.ResolveAttack(g.run, g.playerID, target, weapon)
	g.runLog.DamageDealt += out.Amount

	switch out.Kind {
	case system.OutcomeNone:
		if out.Attacker == g.playerID {
			g.addMessage(fmt.Sprintf("You miss the %s.", name))
		}
	case system.OutcomeDamaged:
		if out.Crit {
			g.addMessage(fmt.Sprintf("Critical! You strike the %s for %d.", name, out.Amount))
		} else {
			g.addMessage(fmt.Sprintf("You hit the %s for %d.", name, out.Amount))
		}
	case system.OutcomeSplit:
		g.runLog.SplitsSeen++
		g.addMessage(fmt.Sprintf("The %s bursts apart under the blow!", name))
	case system.OutcomeDied:
		g.runLog.MonstersSlain[name]++
		g.xp += out.XP
		g.addMessage(fmt.Sprintf("You kill the %s.", name))
		g.checkVictory()
	}
}

// reportHitOnPlayer narrates one monster attack against the player.
func (g *Game) reportHitOnPlayer(h system.DamageOutcome) {
	name := g.entityName(h.Attacker)
	switch h.Kind {
	case system.OutcomeNone:
		// misses stay quiet; the log would drown otherwise
	case system.OutcomeDamaged, system.OutcomeDied:
		g.runLog.DamageTaken += h.Amount
		g.runLog.CauseOfDeath = name
		if h.Crit {
			g.addMessage(fmt.Sprintf("The %s lands a vicious blow! (%d damage)", name, h.Amount))
		} else {
			g.addMessage(fmt.Sprintf("The %s hits you for %d.", name, h.Amount))
		}
	}
}

// checkVictory ends the run when the deepest level has been cleared.
func (g *Game) checkVictory() {
	if g.run.Depth != MaxDepth {
		return
	}
	if len(g.run.World.Query(component.CAI, component.CHealth)) > 0 {
		return
	}
	g.state = StateVictory
	g.runLog.Victory = true
	g.addMessage("The last of the dead lies still. The barrow is yours.")
}

// tryPickup consumes an item under the player, if any. Returns whether a
// turn was spent.
func (g *Game) tryPickup() bool {
	pos := g.playerPosition()
	for _, id := range g.run.World.EntitiesAt(pos.X, pos.Y) {
		c := g.run.World.Get(id, component.CItem)
		if c == nil {
			continue
		}
		item := c.(component.Item)
		g.run.World.DestroyEntity(id)
		g.runLog.ItemsUsed[item.ID]++
		g.applyItem(item)
		return true
	}
	g.addMessage("Nothing to pick up here.")
	return false
}

func (g *Game) playerPosition() component.Position {
	c := g.run.World.Get(g.playerID, component.CPosition)
	if c == nil {
		return component.Position{}
	}
	return c.(component.Position)
}

func (g *Game) entityName(id ecs.EntityID) string {
	if id == g.playerID {
		return "you"
	}
	if c := g.run.World.Get(id, component.CKind); c != nil {
		return c.(component.Kind).Name
	}
	return "something"
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true to start another
// run, false to quit.
func (g *Game) showEndScreen() bool {
	won := g.state == StateVictory

	type killEntry struct {
		name  string
		count int
	}
	var kills []killEntry
	totalKills := 0
	for name, cnt := range g.runLog.MonstersSlain {
		kills = append(kills, killEntry{name, cnt})
		totalKills += cnt
	}
	sort.Slice(kills, func(i, j int) bool {
		if kills[i].count != kills[j].count {
			return kills[i].count > kills[j].count
		}
		return kills[i].name < kills[j].name
	})

	totalItems := 0
	for _, c := range g.runLog.ItemsUsed {
		totalItems += c
	}

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if won {
			g.putText(2, y, "THE BARROW LIES QUIET", gold)
			badge := "[VICTORY]"
			g.putText(sw-len(badge)-1, y, badge, green)
		} else {
			g.putText(2, y, "THE BARROW KEEPS YOU", gold)
			badge := "[DEFEAT]"
			g.putText(sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Depth Reached:", fmt.Sprintf("%d", g.runLog.DepthReached))
		y++
		label(y, "Turns Survived:", fmt.Sprintf("%d", g.runLog.TurnsPlayed))
		y++
		label(y, "Experience:", fmt.Sprintf("%d", g.xp))
		y += 2

		label(y, "Monsters Slain:", fmt.Sprintf("%d", totalKills))
		y++
		if len(kills) > 0 {
			breakdown := ""
			for _, e := range kills {
				breakdown += fmt.Sprintf("%s×%d  ", e.name, e.count)
			}
			runes := []rune(breakdown)
			if maxRunes := sw - 6; len(runes) > maxRunes {
				runes = runes[:maxRunes]
			}
			g.putText(4, y, string(runes), dim)
			y++
		}
		y++

		label(y, "Items Used:", fmt.Sprintf("%d", totalItems))
		y++
		label(y, "Splits Witnessed:", fmt.Sprintf("%d", g.runLog.SplitsSeen))
		y++
		label(y, "Mercy Drops:", fmt.Sprintf("%d", g.runLog.PityDrops))
		y += 2

		label(y, "Damage Dealt:", fmt.Sprintf("%d", g.runLog.DamageDealt))
		y++
		label(y, "Damage Taken:", fmt.Sprintf("%d", g.runLog.DamageTaken))
		y += 2

		if !won && g.runLog.CauseOfDeath != "" {
			label(y, "Killed By:", g.runLog.CauseOfDeath)
			y += 2
		}

		sep(y)
		y += 2
		g.putText(2, y, "[R] Delve Again", green)
		g.putText(20, y, "[Q] Quit", red)

		g.screen.Show()

		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			continue
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
