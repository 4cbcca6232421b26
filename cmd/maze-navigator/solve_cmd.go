package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/hexwheel/maze-navigator/internal/maze"
	"github.com/hexwheel/maze-navigator/internal/mazefile"
	"github.com/hexwheel/maze-navigator/internal/recorder"
	"github.com/hexwheel/maze-navigator/internal/store"
	"github.com/hexwheel/maze-navigator/internal/telemetry"
)

// solveCommand drives a Navigator headlessly against a `.maze` file's
// ground truth: the file is only consulted to answer SensorRead
// queries, never handed to the Navigator directly, the same boundary a
// real robot's IR sensors enforce against its firmware.
func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "drive a Navigator headlessly against a .maze file until goal or step budget",
		ArgsUsage: "<file.maze>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "budget", Value: 1000, Usage: "maximum steps before giving up"},
			&cli.StringFlag{Name: "store-dir", Sources: cli.EnvVars("MAZE_NAVIGATOR_STORE_DIR"), Usage: "host store directory, required with --persist"},
			&cli.StringFlag{Name: "cache-dir", Sources: cli.EnvVars("MAZE_NAVIGATOR_CACHE_DIR"), Usage: "version-index cache directory, used with --persist"},
			&cli.BoolFlag{Name: "persist", Usage: "save learned weights/map and write Solution/Plan artifacts"},
		},
		Action: runSolve,
	}
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("solve requires a <file.maze> argument", 1)
	}

	doc, err := mazefile.Load(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load %s: %v", path, err), 1)
	}

	truth := doc.ToGridMap()
	entrance := maze.Point{X: doc.Entrance.X, Y: doc.Entrance.Y}
	goal := maze.Point{X: doc.Goal.X, Y: doc.Goal.Y}
	heading := maze.North
	if doc.Entrance.Heading != nil {
		heading = maze.Direction(*doc.Entrance.Heading)
	}

	nav := maze.NewNavigator()
	nav.SetDimensions(doc.Width, doc.Height)
	nav.SetStartGoal(entrance, goal)

	persist := cmd.Bool("persist")
	storeDir := cmd.String("store-dir")

	var hostStore *store.HostStore
	if persist {
		if storeDir == "" {
			fmt.Println("no --store-dir or MAZE_NAVIGATOR_STORE_DIR set: weights persist in-process only, map will not be saved")
		}
		hostStore, err = store.NewHostStore(storeDir)
		if err != nil {
			return cli.Exit(fmt.Sprintf("open store: %v", err), 1)
		}
		loadPersistedState(nav, hostStore, doc.Width, doc.Height)
	}

	nav.StartEpisode(true)

	rec := recorder.New()
	rec.StartEpisode()

	metrics := telemetry.NewRecorder(prometheus.DefaultRegisterer)

	budget := int(cmd.Int("budget"))
	current := entrance
	curHeading := heading
	started := time.Now()

	for step := 0; step < budget && nav.State() == maze.StateRunning; step++ {
		sr := sensorRead(truth, current, curHeading)
		nav.Observe(current, sr, curHeading)

		replan := nav.PlanRoute()
		if replan {
			metrics.RecordReplan()
		}

		var decision maze.Decision
		if replan {
			decision = nav.DecidePlanned(current, curHeading, sr)
		} else {
			decision = nav.Decide(sr)
		}
		metrics.RecordDecision(decision.Action.String(), decision.Score)

		from := waypointFrom(current, curHeading)
		headingBefore := int(curHeading)

		nextHeading, nextPos, moved := applyAction(truth, current, curHeading, decision.Action)
		event, delta := eventFor(decision.Action, moved)
		nav.ApplyReward(decision.Action, float64(delta))

		to := waypointFrom(nextPos, nextHeading)
		rec.AppendStep(from, to, headingBefore, decision.Action.String(), event, moved, delta)

		current = nextPos
		curHeading = nextHeading
		nav.NoteArrival(current)
	}
	if nav.State() == maze.StateRunning {
		nav.NoteBudgetExceeded()
	}

	elapsed := time.Since(started).Seconds()
	steps := rec.Steps()

	switch nav.State() {
	case maze.StateTerminalSuccess:
		fmt.Printf("✅ reached the goal in %d steps (%d collisions)\n", len(steps), countCollisions(steps))
		metrics.RecordEpisode("success")
	case maze.StateTerminalFail:
		fmt.Printf("❌ budget of %d steps exhausted without reaching the goal (%d collisions)\n", budget, countCollisions(steps))
		metrics.RecordEpisode("fail")
	}

	if !persist {
		return nil
	}
	return persistSolveResult(nav, hostStore, metrics, cmd.String("cache-dir"), path, doc, entrance, goal, heading, rec, elapsed)
}

func persistSolveResult(nav *maze.Navigator, hostStore *store.HostStore, metrics *telemetry.Recorder, cacheDir, path string, doc mazefile.Document, entrance, goal maze.Point, heading maze.Direction, rec *recorder.Recorder, elapsed float64) error {
	w := nav.Heuristics()

	saveStart := time.Now()
	saveErr := hostStore.SaveWeights(store.WeightsRecord{Right: w.Right, Front: w.Front, Left: w.Left, Back: w.Back})
	metrics.RecordStoreOp("host", "save_weights", storeOpResult(saveErr), time.Since(saveStart).Seconds())
	if saveErr != nil {
		return cli.Exit(fmt.Sprintf("save weights: %v", saveErr), 1)
	}

	saveStart = time.Now()
	saveErr = hostStore.SaveMap(mapRecordFrom(nav.Map()))
	metrics.RecordStoreOp("host", "save_map", storeOpResult(saveErr), time.Since(saveStart).Seconds())
	if saveErr != nil {
		// A map snapshot has no in-process fallback (store.ErrStoreDirRequired
		// when no --store-dir was given): weights are saved, so keep going
		// and just skip the map rather than discard the whole run.
		fmt.Printf("save map: %v (skipped)\n", saveErr)
	}

	idx, err := recorder.OpenVersionIndex(cacheDir)
	if err != nil {
		idx = nil
	}
	if idx != nil {
		defer idx.Close()
	}

	meta := recorder.CollectMeta(time.Now)
	mapDir := filepath.Dir(path)
	mapFile := filepath.Base(path)

	entranceWp := waypointFrom(entrance, heading)
	goalWp := mazefile.Waypoint{X: goal.X, Y: goal.Y}

	result := recorder.ResultFail
	if nav.State() == maze.StateTerminalSuccess {
		result = recorder.ResultSuccess
	}

	plan := rec.BuildPlan(mapFile, doc.Width, doc.Height, entranceWp, goalWp, result, meta)
	if _, err := recorder.WritePlanIndexed(idx, mapDir, mapFile, plan); err != nil {
		return cli.Exit(fmt.Sprintf("write plan: %v", err), 1)
	}

	if nav.State() != maze.StateTerminalSuccess {
		return nil
	}

	pathPoints := []mazefile.Waypoint{entranceWp}
	for _, s := range rec.Steps() {
		if s.Moved {
			pathPoints = append(pathPoints, s.To)
		}
	}

	sol := rec.BuildSolution(mapFile, doc.Width, doc.Height, entranceWp, goalWp, pathPoints, elapsed, meta)
	if _, err := recorder.WriteSolutionIndexed(idx, mapDir, mapFile, sol); err != nil {
		return cli.Exit(fmt.Sprintf("write solution: %v", err), 1)
	}
	return nil
}

// loadPersistedState rehydrates a Navigator's weights and map from a
// HostStore, if a record of matching dimensions is present. Absence or a
// dimension mismatch is silently skipped — the Navigator already starts
// cold with defaults.
func loadPersistedState(nav *maze.Navigator, s *store.HostStore, width, height int) {
	if w, present, _ := s.LoadWeights(); present {
		nav.SetHeuristics(maze.HeuristicWeights{Right: w.Right, Front: w.Front, Left: w.Left, Back: w.Back})
	}

	m, present, _ := s.LoadMap()
	if !present || m.Width != width || m.Height != height {
		return
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.Cells[y*m.Width+x]
			if c.WallN {
				nav.Map().SetWall(x, y, maze.North, true)
			}
			if c.WallE {
				nav.Map().SetWall(x, y, maze.East, true)
			}
			if c.WallS {
				nav.Map().SetWall(x, y, maze.South, true)
			}
			if c.WallW {
				nav.Map().SetWall(x, y, maze.West, true)
			}
		}
	}
}

// sensorRead derives a SensorRead from ground truth at pos facing
// heading — the stand-in for a simulator's event loop or a physical
// robot's IR-to-boolean thresholding, both out of the core's scope.
func sensorRead(truth *maze.GridMap, pos maze.Point, heading maze.Direction) maze.SensorRead {
	left := (heading + 3) % 4
	right := (heading + 1) % 4
	return maze.SensorRead{
		LeftFree:  !truth.Wall(pos.X, pos.Y, left),
		FrontFree: !truth.Wall(pos.X, pos.Y, heading),
		RightFree: !truth.Wall(pos.X, pos.Y, right),
	}
}

// applyAction updates the world model for a chosen action: Forward
// advances one cell when the absolute direction is unblocked in truth
// (and is a collision otherwise); Right/Left/Back only turn in place.
func applyAction(truth *maze.GridMap, pos maze.Point, heading maze.Direction, action maze.Action) (maze.Direction, maze.Point, bool) {
	switch action {
	case maze.ActionForward:
		if truth.Wall(pos.X, pos.Y, heading) {
			return heading, pos, false
		}
		return heading, pos.Add(heading), true
	case maze.ActionRight:
		return (heading + 1) % 4, pos, false
	case maze.ActionLeft:
		return (heading + 3) % 4, pos, false
	default: // ActionBack
		return heading.Opposite(), pos, false
	}
}

// eventFor names the step entry's event and its learning reward signal.
// Only Forward carries a nonzero reward: +1 for progress, -5 for a
// collision, matching the collision-driven-learning scenario.
func eventFor(action maze.Action, moved bool) (string, int) {
	switch action {
	case maze.ActionForward:
		if moved {
			return recorder.EventForward, 1
		}
		return recorder.EventCollision, -5
	case maze.ActionRight:
		return recorder.EventRight, 0
	case maze.ActionLeft:
		return recorder.EventLeft, 0
	default:
		return recorder.EventBack, 0
	}
}

func waypointFrom(p maze.Point, heading maze.Direction) mazefile.Waypoint {
	h := int(heading)
	return mazefile.Waypoint{X: p.X, Y: p.Y, Heading: &h}
}

func mapRecordFrom(m *maze.GridMap) store.MapRecord {
	cells := make([]store.MapCell, 0, m.Width()*m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.Cell(x, y)
			cells = append(cells, store.MapCell{WallN: c.WallN, WallE: c.WallE, WallS: c.WallS, WallW: c.WallW})
		}
	}
	return store.MapRecord{Width: m.Width(), Height: m.Height(), Cells: cells}
}

func storeOpResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func countCollisions(steps []recorder.StepEntry) int {
	n := 0
	for _, s := range steps {
		if s.Event == recorder.EventCollision {
			n++
		}
	}
	return n
}
