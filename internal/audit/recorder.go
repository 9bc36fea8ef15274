package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Recorder writes journal entries for state-mutating commands. A nil
// Recorder discards everything, which is how a disabled journal behaves.
type Recorder struct {
	journal *Journal
}

// NewRecorder creates a recorder backed by j.
func NewRecorder(j *Journal) *Recorder {
	return &Recorder{journal: j}
}

// Record writes an entry for action on taskID (0 for none).
func (r *Recorder) Record(action string, inputs interface{}, outcome string, taskID int, details string) (*Entry, error) {
	if r == nil || r.journal == nil {
		return nil, nil
	}
	e := &Entry{
		Action:     action,
		TaskID:     taskID,
		InputsHash: hashInputs(inputs),
		Outcome:    outcome,
		Details:    details,
	}
	if err := r.journal.Write(e); err != nil {
		return nil, err
	}
	return e, nil
}

// hashInputs creates a SHA256 hash of the inputs for reproducibility.
func hashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
