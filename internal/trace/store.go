package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

type Store struct {
	baseDir string
	logger  log.Logger
}

func NewStore(baseDir string, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Element   string    `json:"element"`
	ElemBytes uint64    `json:"elem_bytes"`
	Allocator string    `json:"allocator"`
	Reserve   int       `json:"reserve"`
	Appends   int       `json:"appends"`
	FinalSize int       `json:"final_size"`
	FinalCap  int       `json:"final_cap"`
	Growths   int       `json:"growths"`
}

// Save writes meta and events under a new run directory and returns the run
// id. ID, Timestamp and the Final* fields are filled in from the events.
func (s *Store) Save(meta RunMetadata, events []Event) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	meta.Growths = 0
	for _, e := range events {
		if e.Grew {
			meta.Growths++
		}
	}
	if len(events) > 0 {
		last := events[len(events)-1]
		meta.FinalSize, meta.FinalCap = last.Size, last.Cap
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "events.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"step", "size", "cap", "grew"}); err != nil {
		return "", err
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.Step),
			strconv.Itoa(e.Size),
			strconv.Itoa(e.Cap),
			strconv.FormatBool(e.Grew),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	level.Info(s.logger).Log("msg", "saved trace", "id", meta.ID, "events", len(events), "growths", meta.Growths)
	return meta.ID, nil
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
			level.Debug(s.logger).Log("msg", "skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode metadata for %s", runID)
	}
	return &meta, nil
}

func (s *Store) LoadEvents(runID string) ([]Event, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read events for %s", runID)
	}
	if len(records) < 2 {
		return []Event{}, nil
	}

	events := make([]Event, 0, len(records)-1)
	for i, record := range records[1:] {
		e, err := parseEvent(record)
		if err != nil {
			return nil, errors.Wrapf(err, "events for %s, row %d", runID, i+1)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseEvent(record []string) (Event, error) {
	var (
		e   Event
		err error
	)
	if e.Step, err = strconv.Atoi(record[0]); err != nil {
		return e, err
	}
	if e.Size, err = strconv.Atoi(record[1]); err != nil {
		return e, err
	}
	if e.Cap, err = strconv.Atoi(record[2]); err != nil {
		return e, err
	}
	e.Grew, err = strconv.ParseBool(record[3])
	return e, err
}
