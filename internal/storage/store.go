package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gassim/internal/gas"
)

// Store persists finished runs under a base directory, one
// subdirectory per run holding metadata.json and frames.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Count     int                `json:"count"`
	Radius    float64            `json:"radius"`
	Speed     float64            `json:"speed"`
	Dt        float64            `json:"dt"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run to disk and returns its generated id. The frames
// CSV carries one row per recorded frame: time, resolved collision
// count, then x, y, vx, vy for every particle.
func (s *Store) Save(count int, radius, speed, dt float64, seed int64, result *gas.Result) (string, error) {
	runID := fmt.Sprintf("gas_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Count:     count,
		Radius:    radius,
		Speed:     speed,
		Dt:        dt,
		Seed:      seed,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time", "collisions"}
	for i := range result.Frames[0] {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))

		// Frame 0 predates the first tick and has no collision count.
		collisions := 0
		if i > 0 && i-1 < len(result.Collisions) {
			collisions = result.Collisions[i-1]
		}
		row = append(row, strconv.Itoa(collisions))

		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(p.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(p.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(p.Vel.Y, 'f', 6, 64))
		}

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// FramesPath returns the location of a run's frames CSV.
func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "frames.csv")
}

// LoadFrames reads a run's trajectory back: per-frame particle
// records, frame times, and per-tick collision counts.
func (s *Store) LoadFrames(runID string) ([][]gas.Particle, []float64, []int, error) {
	file, err := os.Open(s.FramesPath(runID))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return [][]gas.Particle{}, []float64{}, []int{}, nil
	}

	count := (len(records[0]) - 2) / 4

	frames := make([][]gas.Particle, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	collisions := make([]int, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != 2+count*4 {
			return nil, nil, nil, fmt.Errorf("malformed frame row: %d fields, want %d", len(record), 2+count*4)
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		c, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, nil, nil, err
		}

		frame := make([]gas.Particle, count)
		for i := 0; i < count; i++ {
			vals := [4]float64{}
			for j := 0; j < 4; j++ {
				v, err := strconv.ParseFloat(record[2+i*4+j], 64)
				if err != nil {
					return nil, nil, nil, err
				}
				vals[j] = v
			}
			frame[i] = gas.Particle{
				Pos: gas.Vec2{X: vals[0], Y: vals[1]},
				Vel: gas.Vec2{X: vals[2], Y: vals[3]},
			}
		}

		times = append(times, t)
		collisions = append(collisions, c)
		frames = append(frames, frame)
	}

	return frames, times, collisions, nil
}
