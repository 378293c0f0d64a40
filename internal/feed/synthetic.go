package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ddstop/ddstop/internal/state"
)

// topicCatalog is the pool of topics the synthetic network publishes on.
var topicCatalog = []state.Topic{
	{Name: "chatter", TypeName: "std_msgs::msg::String", Reliability: state.Reliable, Durability: state.Volatile},
	{Name: "rosout", TypeName: "rcl_interfaces::msg::Log", Reliability: state.Reliable, Durability: state.TransientLocal},
	{Name: "tf", TypeName: "tf2_msgs::msg::TFMessage", Reliability: state.Reliable, Durability: state.Volatile},
	{Name: "cmd_vel", TypeName: "geometry_msgs::msg::Twist", Reliability: state.BestEffort, Durability: state.Volatile},
	{Name: "scan", TypeName: "sensor_msgs::msg::LaserScan", Reliability: state.BestEffort, Durability: state.Volatile},
	{Name: "odom", TypeName: "nav_msgs::msg::Odometry", Reliability: state.Reliable, Durability: state.Volatile},
	{Name: "parameter_events", TypeName: "rcl_interfaces::msg::ParameterEvent", Reliability: state.Reliable, Durability: state.TransientLocal},
}

// Probabilities per step.
const (
	addEndpointChance    = 0.15
	removeEndpointChance = 0.08
	abnormalityChance    = 0.35
	maxEndpointsPerPeer  = 6
)

// Synthetic generates a pseudo-random DDS network from a seed. The same
// seed yields the same sequence of changes. It implements Source.
type Synthetic struct {
	seed         int64
	participants int
	interval     time.Duration
	now          func() time.Time

	rng      *rand.Rand
	prefixes [][12]byte
	nextID   []uint32
	writers  []state.GUID
	readers  []state.GUID
}

// NewSynthetic creates a generator for the given number of participants
// that changes the network every interval.
func NewSynthetic(seed int64, participants int, interval time.Duration) *Synthetic {
	if participants <= 0 {
		participants = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Synthetic{
		seed:         seed,
		participants: participants,
		interval:     interval,
		now:          time.Now,
	}
}

// Run seeds the store with an initial network and then mutates it every
// interval until ctx ends.
func (s *Synthetic) Run(ctx context.Context, store *state.Store) error {
	if err := update(store, func(tx *state.Tx) { s.populate(tx, s.now()) }); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := update(store, func(tx *state.Tx) { s.step(tx, s.now()) }); err != nil {
				return err
			}
		}
	}
}

// populate resets the generator and creates every participant with one
// writer and one reader.
func (s *Synthetic) populate(tx *state.Tx, now time.Time) {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.prefixes = make([][12]byte, s.participants)
	s.nextID = make([]uint32, s.participants)
	s.writers = nil
	s.readers = nil

	for i := range s.prefixes {
		s.rng.Read(s.prefixes[i][:])
		s.nextID[i] = 1
	}
	for _, t := range topicCatalog {
		tx.PutTopic(t)
	}
	for p := range s.prefixes {
		s.addWriter(tx, p, now)
		s.addReader(tx, p, now)
	}
}

// step advances the network by one interval.
func (s *Synthetic) step(tx *state.Tx, now time.Time) {
	for _, id := range s.writers {
		if w, ok := tx.Writer(id); ok {
			w.LastSeen = now
			tx.PutWriter(w)
		}
	}
	for _, id := range s.readers {
		if r, ok := tx.Reader(id); ok {
			r.LastSeen = now
			tx.PutReader(r)
		}
	}

	if s.rng.Float64() < addEndpointChance {
		p := s.rng.Intn(len(s.prefixes))
		if s.endpointsOf(p) < maxEndpointsPerPeer {
			if s.rng.Intn(2) == 0 {
				s.addWriter(tx, p, now)
			} else {
				s.addReader(tx, p, now)
			}
		}
	}

	if s.rng.Float64() < removeEndpointChance {
		if s.rng.Intn(2) == 0 && len(s.writers) > 1 {
			i := s.rng.Intn(len(s.writers))
			tx.RemoveWriter(s.writers[i])
			s.writers = append(s.writers[:i], s.writers[i+1:]...)
		} else if len(s.readers) > 1 {
			i := s.rng.Intn(len(s.readers))
			tx.RemoveReader(s.readers[i])
			s.readers = append(s.readers[:i], s.readers[i+1:]...)
		}
	}

	if s.rng.Float64() < abnormalityChance {
		tx.AddAbnormality(s.abnormality(tx, now))
	}
}

// abnormality makes one record of a random kind: a missed match between a
// writer and a reader, a QoS conflict on a topic, or a lost writer.
func (s *Synthetic) abnormality(tx *state.Tx, now time.Time) state.Abnormality {
	w := s.writers[s.rng.Intn(len(s.writers))]
	writer, _ := tx.Writer(w)
	topic := writer.TopicName

	switch s.rng.Intn(3) {
	case 0:
		r := s.readers[s.rng.Intn(len(s.readers))]
		return state.Abnormality{
			When:      now,
			WriterID:  &w,
			ReaderID:  &r,
			TopicName: &topic,
			Desc:      "missed match: reader did not discover writer",
		}
	case 1:
		return state.Abnormality{
			When:      now,
			WriterID:  &w,
			TopicName: &topic,
			Desc:      fmt.Sprintf("QoS conflict: offered %s, a reader requested reliable", writer.Reliability),
		}
	default:
		return state.Abnormality{
			When:     now,
			WriterID: &w,
			Desc:     "liveliness lost",
		}
	}
}

func (s *Synthetic) addWriter(tx *state.Tx, p int, now time.Time) {
	t := topicCatalog[s.rng.Intn(len(topicCatalog))]
	id := s.newGUID(p, 0x02)
	tx.PutWriter(state.Writer{
		GUID:        id,
		TopicName:   t.Name,
		TypeName:    t.TypeName,
		Reliability: t.Reliability,
		Durability:  t.Durability,
		LastSeen:    now,
	})
	s.writers = append(s.writers, id)
}

func (s *Synthetic) addReader(tx *state.Tx, p int, now time.Time) {
	t := topicCatalog[s.rng.Intn(len(topicCatalog))]
	id := s.newGUID(p, 0x07)
	tx.PutReader(state.Reader{
		GUID:        id,
		TopicName:   t.Name,
		TypeName:    t.TypeName,
		Reliability: t.Reliability,
		Durability:  t.Durability,
		LastSeen:    now,
	})
	s.readers = append(s.readers, id)
}

// newGUID allocates the next entity id of participant p. kind is the
// entity kind octet (0x02 writer, 0x07 reader).
func (s *Synthetic) newGUID(p int, kind byte) state.GUID {
	n := s.nextID[p]
	s.nextID[p]++
	return state.GUID{
		Prefix:   s.prefixes[p],
		EntityID: [4]byte{byte(n >> 16), byte(n >> 8), byte(n), kind},
	}
}

func (s *Synthetic) endpointsOf(p int) int {
	return int(s.nextID[p]) - 1
}
