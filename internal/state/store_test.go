package state

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGUID(b byte) GUID {
	var g GUID
	g.Prefix[11] = b
	g.EntityID[3] = 0x02
	return g
}

func TestStore_SnapshotEmpty(t *testing.T) {
	s := NewStore()

	snap, err := s.Snapshot()
	require.NoError(t, err)

	assert.Empty(t, snap.Writers)
	assert.Empty(t, snap.Readers)
	assert.Empty(t, snap.Topics)
	assert.Empty(t, snap.Abnormalities)
	assert.False(t, snap.TakenAt.IsZero())
}

func TestStore_PutAndRemove(t *testing.T) {
	s := NewStore()
	w := Writer{GUID: testGUID(1), TopicName: "chatter"}
	r := Reader{GUID: testGUID(2), TopicName: "chatter"}

	require.NoError(t, s.Update(func(tx *Tx) {
		tx.PutWriter(w)
		tx.PutReader(r)
		tx.PutTopic(Topic{Name: "chatter", TypeName: "std_msgs::String"})
	}))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []Writer{w}, snap.Writers)
	assert.Equal(t, []Reader{r}, snap.Readers)
	require.Len(t, snap.Topics, 1)
	assert.Equal(t, "chatter", snap.Topics[0].Name)

	require.NoError(t, s.Update(func(tx *Tx) {
		tx.RemoveWriter(w.GUID)
		tx.RemoveReader(r.GUID)
		tx.RemoveTopic("chatter")
		tx.RemoveTopic("missing")
	}))

	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Writers)
	assert.Empty(t, snap.Readers)
	assert.Empty(t, snap.Topics)
}

func TestStore_AddAbnormalityAssignsSeq(t *testing.T) {
	s := NewStore()

	var first, second uint64
	require.NoError(t, s.Update(func(tx *Tx) {
		first = tx.AddAbnormality(Abnormality{When: time.Now(), Desc: "a"})
		second = tx.AddAbnormality(Abnormality{When: time.Now(), Desc: "b"})
	}))

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
}

func TestStore_SnapshotIsOwnedCopy(t *testing.T) {
	s := NewStore()
	writer := testGUID(7)
	topic := "chatter"

	require.NoError(t, s.Update(func(tx *Tx) {
		tx.AddAbnormality(Abnormality{When: time.Now(), WriterID: &writer, TopicName: &topic, Desc: "missed match"})
	}))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Abnormalities, 1)

	// Mutating the snapshot must not reach the store.
	snap.Abnormalities[0].WriterID.Prefix[0] = 0xff
	*snap.Abnormalities[0].TopicName = "changed"
	writer.Prefix[0] = 0xee

	again, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, testGUID(7), *again.Abnormalities[0].WriterID)
	assert.Equal(t, "chatter", *again.Abnormalities[0].TopicName)
}

func TestStore_PanicPoisons(t *testing.T) {
	s := NewStore()

	err := s.Update(func(tx *Tx) {
		tx.PutTopic(Topic{Name: "half-written"})
		panic("producer crashed")
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.True(t, stderrors.Is(err, ErrPoisoned))
	require.Error(t, s.Poisoned())

	_, err = s.Snapshot()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.True(t, stderrors.Is(err, ErrPoisoned))
	assert.Contains(t, err.Error(), "producer crashed")

	// Further updates are refused without running fn.
	ran := false
	err = s.Update(func(tx *Tx) { ran = true })
	require.Error(t, err)
	assert.False(t, ran)
}

func TestStore_PruneAbnormalities(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		olderThan time.Time
		maxCount  int
		removed   int
		keptDescs []string
	}{
		{
			name:      "no limits",
			removed:   0,
			keptDescs: []string{"t0", "t1", "t2", "t3"},
		},
		{
			name:      "age only",
			olderThan: base.Add(2 * time.Second),
			removed:   2,
			keptDescs: []string{"t2", "t3"},
		},
		{
			name:      "count only keeps newest",
			maxCount:  1,
			removed:   3,
			keptDescs: []string{"t3"},
		},
		{
			name:      "age and count",
			olderThan: base.Add(1 * time.Second),
			maxCount:  2,
			removed:   2,
			keptDescs: []string{"t2", "t3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			require.NoError(t, s.Update(func(tx *Tx) {
				// Insert out of time order on purpose.
				tx.AddAbnormality(Abnormality{When: base.Add(3 * time.Second), Desc: "t3"})
				tx.AddAbnormality(Abnormality{When: base, Desc: "t0"})
				tx.AddAbnormality(Abnormality{When: base.Add(2 * time.Second), Desc: "t2"})
				tx.AddAbnormality(Abnormality{When: base.Add(1 * time.Second), Desc: "t1"})
			}))

			var removed int
			require.NoError(t, s.Update(func(tx *Tx) {
				removed = tx.PruneAbnormalities(tt.olderThan, tt.maxCount)
			}))
			assert.Equal(t, tt.removed, removed)

			snap, err := s.Snapshot()
			require.NoError(t, err)
			var descs []string
			for _, a := range snap.Abnormalities {
				descs = append(descs, a.Desc)
			}
			assert.ElementsMatch(t, tt.keptDescs, descs)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Update(func(tx *Tx) {
		tx.PutWriter(Writer{GUID: testGUID(1)})
		tx.AddAbnormality(Abnormality{Desc: "x"})
		tx.Clear()
	}))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Writers)
	assert.Empty(t, snap.Abnormalities)
}

func TestStore_TxLookups(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Update(func(tx *Tx) {
		tx.PutWriter(Writer{GUID: testGUID(3)})
		tx.PutWriter(Writer{GUID: testGUID(1)})
		tx.PutReader(Reader{GUID: testGUID(2)})

		assert.Equal(t, []GUID{testGUID(1), testGUID(3)}, tx.Writers())
		assert.Equal(t, []GUID{testGUID(2)}, tx.Readers())

		_, ok := tx.Writer(testGUID(1))
		assert.True(t, ok)
		_, ok = tx.Reader(testGUID(9))
		assert.False(t, ok)
	}))
}

func TestStore_ConcurrentProducerAndReader(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.Update(func(tx *Tx) {
				tx.PutWriter(Writer{GUID: testGUID(byte(i))})
				tx.AddAbnormality(Abnormality{When: time.Now(), Desc: "tick"})
				if i%10 == 0 {
					tx.PruneAbnormalities(time.Time{}, 5)
				}
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap, err := s.Snapshot()
			assert.NoError(t, err)
			assert.LessOrEqual(t, len(snap.Writers), 200)
		}
	}()
	wg.Wait()
}
