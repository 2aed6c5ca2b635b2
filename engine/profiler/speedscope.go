package profiler

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrNoEvents is returned when there is nothing to export.
var ErrNoEvents = errors.New("profiler: no events to dump")

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// buildSpeedscope turns raw events into an evented speedscope document.
// Closes without a matching open are dropped and scopes still open at the end
// are closed at the last timestamp.
func buildSpeedscope(evs []event, names []string) (*ssFile, error) {
	if len(evs) == 0 {
		return nil, ErrNoEvents
	}

	frames := make([]ssFrame, len(names))
	for i, name := range names {
		frames[i] = ssFrame{Name: name}
	}

	base := evs[0].AtNS
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	lastUS, endUS := int64(-1), int64(0)

	for _, e := range evs {
		atUS := (e.AtNS - base) / 1000
		if atUS < lastUS {
			atUS = lastUS
		}
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.Frame})
			stack = append(stack, e.Frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.Frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.Frame})
		}
		lastUS = atUS
		endUS = max(endUS, atUS)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return nil, errors.Wrap(ErrNoEvents, "after filtering")
	}

	return &ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "grove3d frames",
			Unit:       "microseconds",
			StartValue: 0,
			EndValue:   endUS,
			Events:     out,
		}},
		Exporter: "grove3d-profiler",
		Name:     "grove3d capture",
	}, nil
}

func writeSpeedscope(w io.Writer, evs []event, names []string) error {
	doc, err := buildSpeedscope(evs, names)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "encoding speedscope profile")
}

// saveSpeedscope writes through a temporary file so a reader never sees a
// partial profile.
func saveSpeedscope(path string, evs []event, names []string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "creating %s", tmp)
	}
	if err := writeSpeedscope(f, evs, names); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "renaming %s", tmp)
}
