package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/hexwheel/maze-navigator/internal/store"
	"github.com/hexwheel/maze-navigator/internal/telemetry"
)

// storeCommand wraps PersistentStore for operational inspection — the
// shell-friendly equivalent of the firmware's build-time-only
// PersistentMemory::status/eraseAll facade.
func storeCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "inspect or erase a persisted weights/map record",
		Commands: []*cli.Command{
			storeStatusCommand(),
			storeEraseCommand(),
		},
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "backend", Value: "host", Usage: "device or host"},
		&cli.StringFlag{Name: "dir", Sources: cli.EnvVars("MAZE_NAVIGATOR_STORE_DIR"), Usage: "host store directory, or device medium file path"},
		&cli.IntFlag{Name: "page-size", Value: 256, Usage: "device backend: bytes per page"},
		&cli.IntFlag{Name: "page-count", Value: 16, Usage: "device backend: number of pages in the sector"},
	}
}

func openStoreFromFlags(cmd *cli.Command) (store.Store, error) {
	dir := cmd.String("dir")
	switch cmd.String("backend") {
	case "host":
		if dir == "" {
			return nil, fmt.Errorf("--dir or MAZE_NAVIGATOR_STORE_DIR is required for the host backend")
		}
		return store.NewHostStore(dir)
	case "device":
		if dir == "" {
			return nil, fmt.Errorf("--dir is required for the device backend (path to the medium file)")
		}
		medium, err := store.NewFileMedium(dir, int(cmd.Int("page-size")), int(cmd.Int("page-count")))
		if err != nil {
			return nil, err
		}
		return store.NewDeviceStore(medium), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, want device or host", cmd.String("backend"))
	}
}

func storeStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "report whether weights/map records are present",
		Flags:  storeFlags(),
		Action: runStoreStatus,
	}
}

func runStoreStatus(ctx context.Context, cmd *cli.Command) error {
	s, err := openStoreFromFlags(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	metrics := telemetry.NewRecorder(prometheus.NewRegistry())
	backend := cmd.String("backend")

	start := time.Now()
	w, wPresent, err := s.LoadWeights()
	metrics.RecordStoreOp(backend, "load_weights", storeOpResult(err), time.Since(start).Seconds())
	if err != nil {
		return cli.Exit(fmt.Sprintf("load weights: %v", err), 1)
	}
	if wPresent {
		fmt.Printf("weights: right=%.3f front=%.3f left=%.3f back=%.3f\n", w.Right, w.Front, w.Left, w.Back)
	} else {
		fmt.Println("weights: not present")
	}

	start = time.Now()
	m, mPresent, err := s.LoadMap()
	metrics.RecordStoreOp(backend, "load_map", storeOpResult(err), time.Since(start).Seconds())
	if err != nil {
		return cli.Exit(fmt.Sprintf("load map: %v", err), 1)
	}
	if mPresent {
		fmt.Printf("map: %dx%d (%d cells)\n", m.Width, m.Height, len(m.Cells))
	} else {
		fmt.Println("map: not present")
	}

	start = time.Now()
	status, err := s.Status()
	metrics.RecordStoreOp(backend, "status", storeOpResult(err), time.Since(start).Seconds())
	if err != nil {
		return cli.Exit(fmt.Sprintf("status: %v", err), 1)
	}
	fmt.Printf("status: saved_count=%d active_profile=%d\n", status.SavedCount, status.ActiveProfile)
	return nil
}

func storeEraseCommand() *cli.Command {
	return &cli.Command{
		Name:   "erase",
		Usage:  "discard all persisted records, returning the backend to its just-formatted state",
		Flags:  storeFlags(),
		Action: runStoreErase,
	}
}

func runStoreErase(ctx context.Context, cmd *cli.Command) error {
	s, err := openStoreFromFlags(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	metrics := telemetry.NewRecorder(prometheus.NewRegistry())

	start := time.Now()
	err = s.Erase()
	metrics.RecordStoreOp(cmd.String("backend"), "erase", storeOpResult(err), time.Since(start).Seconds())
	if err != nil {
		return cli.Exit(fmt.Sprintf("erase: %v", err), 1)
	}
	fmt.Println("erased")
	return nil
}
