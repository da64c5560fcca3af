package output

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hscells/activelearn"
	"github.com/pkg/errors"
)

// Filename is the name of the file a curve is written to, e.g., output_qbc_average-KL.txt.
func Filename(strategy, extension string) string {
	return "output_qbc_" + strings.Replace(strategy, " ", "_", -1) + "." + extension
}

// WriteCurve writes a curve into dir in each of the named formats and returns the files written.
func WriteCurve(dir string, c activelearn.Curve, formats ...string) ([]string, error) {
	var files []string
	for _, name := range formats {
		f, ok := Formatters[name]
		if !ok {
			return nil, errors.Errorf("unknown output format %q", name)
		}
		s, err := f.Formatter(c)
		if err != nil {
			return nil, errors.Wrapf(err, "formatting %s as %s", c.Strategy, name)
		}
		p := filepath.Join(dir, Filename(c.Strategy, f.Extension))
		if err := ioutil.WriteFile(p, []byte(s), 0644); err != nil {
			return nil, err
		}
		files = append(files, p)
	}
	return files, nil
}

// Manifest records how the output files of an experiment were produced.
type Manifest struct {
	RunID    string                 `json:"run_id"`
	Created  time.Time              `json:"created"`
	Settings map[string]interface{} `json:"settings"`
	Files    []string               `json:"files"`
}

// NewManifest creates a manifest with a fresh run identifier.
func NewManifest(settings map[string]interface{}) *Manifest {
	return &Manifest{
		RunID:    uuid.New().String(),
		Created:  time.Now(),
		Settings: settings,
	}
}

// Add records written files.
func (m *Manifest) Add(files ...string) {
	m.Files = append(m.Files, files...)
}

// Write the manifest to dir as manifest_<run id>.json and return its path.
func (m *Manifest) Write(dir string) (string, error) {
	sort.Strings(m.Files)
	b, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "manifest_"+m.RunID+".json")
	return p, ioutil.WriteFile(p, b, 0644)
}
