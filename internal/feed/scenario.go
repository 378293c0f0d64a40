package feed

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/state"
)

// ScenarioFile is the YAML form of a recorded or hand-written network
// timeline.
//
//	loop: true
//	period: 10s
//	steps:
//	  - at: 0s
//	    add_topic: {name: chatter, type: std_msgs::String, reliability: reliable}
//	  - at: 500ms
//	    add_writer: {guid: "010f...|00000102", topic: chatter, type: std_msgs::String}
//	  - at: 2s
//	    abnormality: {writer: "010f...|00000102", topic: chatter, desc: "liveliness lost"}
type ScenarioFile struct {
	Loop bool `yaml:"loop"`

	// Period is the length of one loop cycle. It defaults to one second
	// past the last step.
	Period time.Duration  `yaml:"period,omitempty"`
	Steps  []ScenarioStep `yaml:"steps"`
}

// ScenarioStep holds one or more actions applied at offset At.
type ScenarioStep struct {
	At           time.Duration    `yaml:"at"`
	AddTopic     *TopicSpec       `yaml:"add_topic,omitempty"`
	AddWriter    *EndpointSpec    `yaml:"add_writer,omitempty"`
	AddReader    *EndpointSpec    `yaml:"add_reader,omitempty"`
	RemoveTopic  string           `yaml:"remove_topic,omitempty"`
	RemoveWriter string           `yaml:"remove_writer,omitempty"`
	RemoveReader string           `yaml:"remove_reader,omitempty"`
	Abnormality  *AbnormalitySpec `yaml:"abnormality,omitempty"`
}

// TopicSpec describes a topic.
type TopicSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Reliability string `yaml:"reliability,omitempty"`
	Durability  string `yaml:"durability,omitempty"`
}

// EndpointSpec describes a writer or reader.
type EndpointSpec struct {
	GUID        string `yaml:"guid"`
	Topic       string `yaml:"topic"`
	Type        string `yaml:"type"`
	Reliability string `yaml:"reliability,omitempty"`
	Durability  string `yaml:"durability,omitempty"`
}

// AbnormalitySpec describes an abnormality. Empty fields are recorded as
// not applicable.
type AbnormalitySpec struct {
	Writer string `yaml:"writer,omitempty"`
	Reader string `yaml:"reader,omitempty"`
	Topic  string `yaml:"topic,omitempty"`
	Desc   string `yaml:"desc"`
}

// action mutates the store; now stamps LastSeen and abnormality times.
type action func(tx *state.Tx, now time.Time)

type compiledStep struct {
	at      time.Duration
	actions []action
}

// Scenario replays a validated ScenarioFile. It implements Source.
type Scenario struct {
	loop   bool
	period time.Duration
	steps  []compiledStep
	now    func() time.Time
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't read scenario %s", path),
			"Check the --scenario path or feed.scenario in your config")
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid scenario %s", path),
			"Fix the scenario file; see `ddstop init --help` for the format")
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return NewScenario(file)
}

// NewScenario validates file and compiles its steps in At order.
func NewScenario(file ScenarioFile) (*Scenario, error) {
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("scenario has no steps")
	}

	steps := make([]compiledStep, 0, len(file.Steps))
	var last time.Duration
	for i, st := range file.Steps {
		if st.At < 0 {
			return nil, fmt.Errorf("step %d: negative at %s", i+1, st.At)
		}
		actions, err := compileStep(st)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, compiledStep{at: st.At, actions: actions})
		if st.At > last {
			last = st.At
		}
	}
	period := file.Period
	if period == 0 {
		period = last + time.Second
	}
	if file.Loop && period <= last {
		return nil, fmt.Errorf("period %s must be longer than the last step at %s", period, last)
	}

	sort.SliceStable(steps, func(i, j int) bool { return steps[i].at < steps[j].at })

	return &Scenario{loop: file.Loop, period: period, steps: steps, now: time.Now}, nil
}

// Len returns the number of steps.
func (s *Scenario) Len() int { return len(s.steps) }

// Loop reports whether the scenario restarts after its last step.
func (s *Scenario) Loop() bool { return s.loop }

// Period returns the length of one loop cycle.
func (s *Scenario) Period() time.Duration { return s.period }

// EnableLoop makes the scenario restart after its last step, as if the file
// had set loop.
func (s *Scenario) EnableLoop() error {
	if n := len(s.steps); n > 0 && s.period <= s.steps[n-1].at {
		return fmt.Errorf("period %s must be longer than the last step at %s", s.period, s.steps[n-1].at)
	}
	s.loop = true
	return nil
}

// Run applies each step at its offset from the start. A looping scenario
// clears the store and starts over every period.
func (s *Scenario) Run(ctx context.Context, store *state.Store) error {
	for {
		start := time.Now()
		for _, st := range s.steps {
			if !sleep(ctx, time.Until(start.Add(st.at))) {
				return nil
			}
			now := s.now()
			if err := update(store, func(tx *state.Tx) {
				for _, apply := range st.actions {
					apply(tx, now)
				}
			}); err != nil {
				return err
			}
		}

		if !s.loop {
			return nil
		}
		if !sleep(ctx, time.Until(start.Add(s.period))) {
			return nil
		}
		if err := update(store, func(tx *state.Tx) { tx.Clear() }); err != nil {
			return err
		}
	}
}

func compileStep(st ScenarioStep) ([]action, error) {
	var actions []action

	if t := st.AddTopic; t != nil {
		if t.Name == "" {
			return nil, fmt.Errorf("add_topic: name is required")
		}
		rel, dur, err := parseQoS(t.Reliability, t.Durability)
		if err != nil {
			return nil, fmt.Errorf("add_topic %s: %w", t.Name, err)
		}
		topic := state.Topic{Name: t.Name, TypeName: t.Type, Reliability: rel, Durability: dur}
		actions = append(actions, func(tx *state.Tx, _ time.Time) { tx.PutTopic(topic) })
	}

	if e := st.AddWriter; e != nil {
		ep, err := compileEndpoint(e)
		if err != nil {
			return nil, fmt.Errorf("add_writer: %w", err)
		}
		actions = append(actions, func(tx *state.Tx, now time.Time) {
			w := state.Writer(ep)
			w.LastSeen = now
			tx.PutWriter(w)
		})
	}

	if e := st.AddReader; e != nil {
		ep, err := compileEndpoint(e)
		if err != nil {
			return nil, fmt.Errorf("add_reader: %w", err)
		}
		actions = append(actions, func(tx *state.Tx, now time.Time) {
			r := state.Reader(ep)
			r.LastSeen = now
			tx.PutReader(r)
		})
	}

	if name := st.RemoveTopic; name != "" {
		actions = append(actions, func(tx *state.Tx, _ time.Time) { tx.RemoveTopic(name) })
	}

	if s := st.RemoveWriter; s != "" {
		id, err := state.ParseGUID(s)
		if err != nil {
			return nil, fmt.Errorf("remove_writer: %w", err)
		}
		actions = append(actions, func(tx *state.Tx, _ time.Time) { tx.RemoveWriter(id) })
	}

	if s := st.RemoveReader; s != "" {
		id, err := state.ParseGUID(s)
		if err != nil {
			return nil, fmt.Errorf("remove_reader: %w", err)
		}
		actions = append(actions, func(tx *state.Tx, _ time.Time) { tx.RemoveReader(id) })
	}

	if a := st.Abnormality; a != nil {
		ab, err := compileAbnormality(a)
		if err != nil {
			return nil, fmt.Errorf("abnormality: %w", err)
		}
		actions = append(actions, func(tx *state.Tx, now time.Time) {
			rec := ab
			rec.When = now
			tx.AddAbnormality(rec)
		})
	}

	if len(actions) == 0 {
		return nil, fmt.Errorf("no action")
	}
	return actions, nil
}

// endpointFields matches the field layout of state.Writer and state.Reader.
type endpointFields struct {
	GUID        state.GUID
	TopicName   string
	TypeName    string
	Reliability state.Reliability
	Durability  state.Durability
	LastSeen    time.Time
}

func compileEndpoint(e *EndpointSpec) (endpointFields, error) {
	id, err := state.ParseGUID(e.GUID)
	if err != nil {
		return endpointFields{}, err
	}
	if e.Topic == "" {
		return endpointFields{}, fmt.Errorf("%s: topic is required", e.GUID)
	}
	rel, dur, err := parseQoS(e.Reliability, e.Durability)
	if err != nil {
		return endpointFields{}, fmt.Errorf("%s: %w", e.GUID, err)
	}
	return endpointFields{
		GUID:        id,
		TopicName:   e.Topic,
		TypeName:    e.Type,
		Reliability: rel,
		Durability:  dur,
	}, nil
}

func compileAbnormality(a *AbnormalitySpec) (state.Abnormality, error) {
	if a.Desc == "" {
		return state.Abnormality{}, fmt.Errorf("desc is required")
	}
	rec := state.Abnormality{Desc: a.Desc}
	if a.Writer != "" {
		id, err := state.ParseGUID(a.Writer)
		if err != nil {
			return rec, fmt.Errorf("writer: %w", err)
		}
		rec.WriterID = &id
	}
	if a.Reader != "" {
		id, err := state.ParseGUID(a.Reader)
		if err != nil {
			return rec, fmt.Errorf("reader: %w", err)
		}
		rec.ReaderID = &id
	}
	if a.Topic != "" {
		topic := a.Topic
		rec.TopicName = &topic
	}
	return rec, nil
}

// parseQoS maps policy names, defaulting empty values to best-effort and
// volatile.
func parseQoS(reliability, durability string) (state.Reliability, state.Durability, error) {
	rel, dur := state.BestEffort, state.Volatile
	if reliability != "" {
		var ok bool
		if rel, ok = state.ParseReliability(reliability); !ok {
			return rel, dur, fmt.Errorf("unknown reliability %q", reliability)
		}
	}
	if durability != "" {
		var ok bool
		if dur, ok = state.ParseDurability(durability); !ok {
			return rel, dur, fmt.Errorf("unknown durability %q", durability)
		}
	}
	return rel, dur, nil
}
