package indexer

import (
	"encoding/json"
	"os"
	"time"
)

// timingRecord is one line of the timing log.
type timingRecord struct {
	Timestamp  string `json:"timestamp"`
	File       string `json:"file,omitempty"`
	Phase      string `json:"phase"`
	DurationMS int64  `json:"duration_ms"`
	CacheHit   bool   `json:"cache_hit,omitempty"`
}

// timingRecorder appends JSONL timing records so slow files and cold
// cache runs can be inspected after the fact.
type timingRecorder struct {
	f *os.File
}

func openTimingRecorder(path string) (*timingRecorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &timingRecorder{f: f}, nil
}

func (r *timingRecorder) record(file, phase string, d time.Duration, cacheHit bool) {
	if r == nil {
		return
	}
	rec := timingRecord{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		File:       file,
		Phase:      phase,
		DurationMS: d.Milliseconds(),
		CacheHit:   cacheHit,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	r.f.Write(append(data, '\n'))
}

func (r *timingRecorder) close() {
	if r == nil {
		return
	}
	r.f.Close()
}
