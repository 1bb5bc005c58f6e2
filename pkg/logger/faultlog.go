package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Fault is one captured failure, deduplicated by panel, message and
// caller. Count tracks repeats between FirstSeen and LastSeen.
type Fault struct {
	Panel     string                 `json:"panel"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller,omitempty"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// FaultLog keeps a bounded in-memory record of recent faults so panel
// failures stay inspectable without any external log pipeline.
type FaultLog struct {
	maxSize int
	faults  map[string]*Fault
	order   []string
	mutex   sync.RWMutex
}

// NewFaultLog creates a fault log holding at most maxSize distinct faults.
func NewFaultLog(maxSize int) *FaultLog {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &FaultLog{
		maxSize: maxSize,
		faults:  make(map[string]*Fault),
	}
}

// Record adds a fault, merging repeats of the same fault into one entry.
// When full, the oldest distinct fault is evicted.
func (f *FaultLog) Record(panel, message string, fields map[string]interface{}) {
	now := time.Now()
	key := faultKey(panel, message, fields)

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if entry, exists := f.faults[key]; exists {
		entry.Count++
		entry.LastSeen = now
		return
	}

	if len(f.order) >= f.maxSize {
		oldest := f.order[0]
		f.order = f.order[1:]
		delete(f.faults, oldest)
	}

	entry := &Fault{
		Panel:     panel,
		Message:   message,
		Fields:    fields,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
	if c, ok := fields["caller"].(string); ok {
		entry.Caller = c
		delete(fields, "caller")
	}
	f.faults[key] = entry
	f.order = append(f.order, key)
}

// Recent returns the recorded faults, oldest first.
func (f *FaultLog) Recent() []Fault {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	out := make([]Fault, 0, len(f.order))
	for _, key := range f.order {
		if entry, ok := f.faults[key]; ok {
			out = append(out, *entry)
		}
	}
	return out
}

// Len returns the number of distinct recorded faults.
func (f *FaultLog) Len() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.faults)
}

func faultKey(panel, message string, fields map[string]interface{}) string {
	data := struct {
		Panel   string                 `json:"panel"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}{
		Panel:   panel,
		Message: message,
		Fields:  fields,
	}

	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}
