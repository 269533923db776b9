package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/overlaykit/overlay/command"
)

// Script errors.
var (
	ErrUnknownKind   = errors.New("script: unknown command kind")
	ErrMissingKey    = errors.New("script: refresh needs a key")
	ErrTickOrder     = errors.New("script: ticks must not go back in time")
	ErrEmptyScript   = errors.New("script: no ticks")
	ErrNegativeStart = errors.New("script: tick time must not be negative")
)

// Script is a replayable sequence of ticks.
//
//	ticks:
//	  - at: 0
//	    commands:
//	      - kind: refresh
//	        key: clock
//	        text: "t=0"
//	        timeout: 2s
//	      - kind: push
//	        text: hello
//	        color: red
type Script struct {
	Ticks []Tick `yaml:"ticks"`
}

// Tick is a batch of commands followed by one overlay tick.
type Tick struct {
	At       float64 `yaml:"at"` // seconds on the replay clock
	Commands []Step  `yaml:"commands"`
}

// Step is one scripted command.
type Step struct {
	Kind    string `yaml:"kind"`
	Key     string `yaml:"key,omitempty"`
	Text    string `yaml:"text"`
	Timeout string `yaml:"timeout,omitempty"`
	Color   string `yaml:"color,omitempty"`
}

// Time returns the tick time as a duration on the replay clock.
func (t Tick) Time() time.Duration {
	return time.Duration(t.At * float64(time.Second))
}

// loadScript reads and validates a script file.
func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks tick order and every step.
func (s *Script) Validate() error {
	if len(s.Ticks) == 0 {
		return ErrEmptyScript
	}
	var last float64
	for i, tick := range s.Ticks {
		if tick.At < 0 {
			return fmt.Errorf("tick %d: %w", i, ErrNegativeStart)
		}
		if tick.At < last {
			return fmt.Errorf("tick %d at %gs: %w", i, tick.At, ErrTickOrder)
		}
		last = tick.At
		for j, step := range tick.Commands {
			if _, err := step.Command(time.Second); err != nil {
				return fmt.Errorf("tick %d command %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Keys returns the distinct refresh keys in order of first use.
func (s *Script) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, tick := range s.Ticks {
		for _, step := range tick.Commands {
			if step.Kind == "refresh" && !seen[step.Key] {
				seen[step.Key] = true
				keys = append(keys, step.Key)
			}
		}
	}
	return keys
}

// Command converts the step. An empty timeout selects defaultTimeout.
func (st Step) Command(defaultTimeout time.Duration) (command.Command, error) {
	timeout := defaultTimeout
	if st.Timeout != "" {
		d, err := time.ParseDuration(st.Timeout)
		if err != nil {
			return command.Command{}, fmt.Errorf("bad timeout %q: %w", st.Timeout, err)
		}
		if d > 0 {
			timeout = d
		}
	}

	switch st.Kind {
	case "refresh":
		if st.Key == "" {
			return command.Command{}, ErrMissingKey
		}
		return command.NewRefresh(command.Site(st.Key), st.Color, st.Text, timeout), nil
	case "push":
		return command.NewPush(st.Color, st.Text, timeout), nil
	default:
		return command.Command{}, fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
	}
}
