// Package sim plays scripted sessions without a terminal.
package sim

import (
	"fmt"
	"os"

	"github.com/withley/courier/internal/engine"
	"github.com/withley/courier/internal/logging"
	"github.com/withley/courier/internal/models"
	"gopkg.in/yaml.v3"
)

// Script is the sequence of lines a player would type.
type Script struct {
	Inputs []string `yaml:"inputs"`
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// Result is the outcome of a scripted playthrough.
type Result struct {
	models.Snapshot `yaml:",inline"`
	Phase           string `yaml:"phase"`
	Rejected        int    `yaml:"rejected"`
	// Seed is filled in by callers that know it.
	Seed            int64  `yaml:"seed,omitempty"`
}

// Play submits the script's inputs in order and stops early once the
// session ends. Unused inputs are ignored.
func Play(ctrl *engine.Controller, s *Script) Result {
	log := logging.New("sim")
	var rejected int
	for i, in := range s.Inputs {
		if ctrl.Done() {
			log.Debug("session ended before script", "unused", len(s.Inputs)-i)
			break
		}
		ctrl.Submit(in)
		if ctrl.Screen().Notice != "" {
			rejected++
		}
	}
	return Result{
		Snapshot: ctrl.Snapshot(),
		Phase:    ctrl.Phase().String(),
		Rejected: rejected,
	}
}

func (r Result) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
