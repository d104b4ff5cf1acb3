package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/autodiff/internal/experiment"
)

const (
	metadataFile    = "metadata.json"
	derivativesFile = "derivatives.csv"
)

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
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Expression string        `json:"expression"`
	Timestamp  time.Time     `json:"timestamp"`
	Scalar     string        `json:"scalar"`
	Precision  uint          `json:"precision,omitempty"`
	Vars       []string      `json:"vars"`
	Point      []float64     `json:"point"`
	Orders     []int         `json:"orders"`
	Value      string        `json:"value"`
	Entries    int           `json:"entries"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Save writes res under a new run directory and returns the run id.
func (s *Store) Save(res *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", res.Name, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; ; n++ {
		if _, err := os.Stat(runDir); errors.Is(err, os.ErrNotExist) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", res.Name, now.Unix(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       res.Name,
		Expression: res.Expression,
		Timestamp:  now,
		Scalar:     res.Scalar,
		Precision:  res.Precision,
		Vars:       res.Vars,
		Point:      res.Point,
		Orders:     res.Orders,
		Value:      res.Value,
		Entries:    len(res.Entries),
		Elapsed:    res.Elapsed,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, derivativesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeEntries(csvFile, res.Vars, res.Entries); err != nil {
		return "", err
	}
	return runID, nil
}

// writeEntries writes one row per derivative: the order in each variable,
// then the full-precision value.
func writeEntries(w io.Writer, vars []string, entries []experiment.Entry) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(vars)+1)
	for _, v := range vars {
		header = append(header, "d_"+v)
	}
	header = append(header, "value")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		row := make([]string, 0, len(e.Index)+1)
		for _, k := range e.Index {
			row = append(row, strconv.Itoa(k))
		}
		row = append(row, e.Value)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns the metadata of every readable run, oldest first.
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

	slices.SortStableFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadEntries reads the derivative table of a run.
func (s *Store) LoadEntries(runID string) ([]experiment.Entry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, derivativesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []experiment.Entry{}, nil
	}

	entries := make([]experiment.Entry, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		n := len(record) - 1
		e := experiment.Entry{Index: make([]int, n), Value: record[n]}
		for j := 0; j < n; j++ {
			k, err := strconv.Atoi(record[j])
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", derivativesFile, line+2, err)
			}
			e.Index[j] = k
		}
		if e.Float, err = strconv.ParseFloat(e.Value, 64); err != nil {
			// Values beyond float64 range still round to ±Inf.
			var ne *strconv.NumError
			if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
				return nil, fmt.Errorf("storage: %s line %d: %w", derivativesFile, line+2, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadResult rebuilds the full result of a saved run.
func (s *Store) LoadResult(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	entries, err := s.LoadEntries(runID)
	if err != nil {
		return nil, err
	}
	return &experiment.Result{
		Name:       meta.Name,
		Expression: meta.Expression,
		Scalar:     meta.Scalar,
		Precision:  meta.Precision,
		Vars:       meta.Vars,
		Point:      meta.Point,
		Orders:     meta.Orders,
		Value:      meta.Value,
		Entries:    entries,
		Elapsed:    meta.Elapsed,
	}, nil
}
