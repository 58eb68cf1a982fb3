package runs

import (
	"encoding/json"
	"os"

	"github.com/reusee/amc/interp"
)

type Result struct {
	Outcome  string   `json:"outcome"`
	State    string   `json:"state"`
	Previous string   `json:"previous,omitempty"`
	Head     int      `json:"head"`
	Steps    int      `json:"steps"`
	Tape     []string `json:"tape"`
	Error    string   `json:"error,omitempty"`
}

func NewResult(i *interp.Interpreter) Result {
	result := Result{
		Outcome: i.Outcome().String(),
		State:   i.State().Name(),
		Head:    i.Head(),
		Steps:   i.Steps(),
		Tape:    make([]string, 0, i.TapeLen()),
	}
	if previous := i.Previous(); previous != nil {
		result.Previous = previous.Name()
	}
	for _, cell := range i.Tape() {
		result.Tape = append(result.Tape, string(cell))
	}
	if err := i.Err(); err != nil {
		result.Error = err.Error()
	}
	return result
}

// Save writes the result to path atomically.
func (r Result) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func LoadResult(path string) (ret Result, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &ret)
	return
}
