package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/player"
	"github.com/san-kum/kinesim/internal/sim"
)

var ErrNotFound = errors.New("storage: run not found")

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var header = []string{
	"time", "x", "y", "z", "vx", "vy", "vz",
	"on_floor", "jumping", "state", "animation",
	"contacts", "sphere_speed", "respawned", "threw",
}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Source    string             `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       float64            `json:"fps"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Respawns  int                `json:"respawns"`
	Throws    int                `json:"throws"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id. Only Scene, Source, Seed,
// FPS and Duration are read from meta; the rest is filled from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.Frames
	meta.Respawns = result.Respawns
	meta.Throws = result.Throws
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportCSV(f, samples)
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func row(s sim.Sample) []string {
	return []string{
		ff(s.Time),
		ff(s.Feet[0]), ff(s.Feet[1]), ff(s.Feet[2]),
		ff(s.Velocity[0]), ff(s.Velocity[1]), ff(s.Velocity[2]),
		strconv.FormatBool(s.OnFloor),
		strconv.FormatBool(s.Jumping),
		s.State.String(),
		string(s.Animation),
		strconv.Itoa(s.Contacts),
		ff(s.SphereSpeed),
		strconv.FormatBool(s.Respawned),
		strconv.FormatBool(s.Threw),
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a trajectory back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		smp, ok := parseRow(records[i])
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseRow(rec []string) (sim.Sample, bool) {
	if len(rec) != len(header) {
		return sim.Sample{}, false
	}

	var nums [7]float64
	for i := range nums {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return sim.Sample{}, false
		}
		nums[i] = v
	}
	onFloor, err1 := strconv.ParseBool(rec[7])
	jumping, err2 := strconv.ParseBool(rec[8])
	state, ok := player.ParseState(rec[9])
	contacts, err3 := strconv.Atoi(rec[11])
	speed, err4 := strconv.ParseFloat(rec[12], 64)
	respawned, err5 := strconv.ParseBool(rec[13])
	threw, err6 := strconv.ParseBool(rec[14])
	if !ok || errors.Join(err1, err2, err3, err4, err5, err6) != nil {
		return sim.Sample{}, false
	}

	return sim.Sample{
		Time:        nums[0],
		Feet:        mgl64.Vec3{nums[1], nums[2], nums[3]},
		Velocity:    mgl64.Vec3{nums[4], nums[5], nums[6]},
		OnFloor:     onFloor,
		Jumping:     jumping,
		State:       state,
		Animation:   player.Animation(rec[10]),
		Contacts:    contacts,
		SphereSpeed: speed,
		Respawned:   respawned,
		Threw:       threw,
	}, true
}

// TrajectoryPath is the CSV file of a run, for copying out as is.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, trajectoryFile)
}
