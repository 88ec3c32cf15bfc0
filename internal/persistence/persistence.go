package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/markusressel/xu4fan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketActuations = "actuations"
)

// Actuation is a single fan command issued by the controller.
type Actuation struct {
	Time     time.Time `json:"time"`
	Mean     float64   `json:"mean"`
	Decision string    `json:"decision"`
}

// Journal is an append-only history of fan commands. It is informational
// only, the controller never reads it back.
type Journal interface {
	Init() error

	Append(actuation Actuation) error
	// Recent returns up to limit entries, newest first
	Recent(limit int) ([]Actuation, error)

	controller.Observer
}

type journal struct {
	dbPath     string
	maxEntries int
}

func NewJournal(dbPath string, maxEntries int) Journal {
	return &journal{
		dbPath:     dbPath,
		maxEntries: maxEntries,
	}
}

// Init creates the parent directory of the database and the bucket.
func (j *journal) Init() (err error) {
	parentDir := filepath.Dir(j.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}

	db, err := j.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketActuations))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return nil
	})
}

// the database is only held open for a single operation, so that
// other processes can read the journal while the daemon is running
func (j *journal) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(j.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// ObserveCycle records cycles that switched the fan.
func (j *journal) ObserveCycle(cycle controller.Cycle) error {
	if cycle.Decision == control_loop.DecisionHold {
		return nil
	}
	return j.Append(Actuation{
		Time:     cycle.Time,
		Mean:     cycle.Mean,
		Decision: cycle.Decision.String(),
	})
}

func (j *journal) Append(actuation Actuation) error {
	data, err := json.Marshal(actuation)
	if err != nil {
		return err
	}

	db, err := j.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketActuations))
		if err != nil {
			return err
		}
		err = b.Put(timeKey(actuation.Time), data)
		if err != nil {
			return err
		}
		return prune(b, j.maxEntries)
	})
}

func (j *journal) Recent(limit int) ([]Actuation, error) {
	db, err := j.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []Actuation
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketActuations))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(result) < limit; k, v = c.Prev() {
			var actuation Actuation
			if err := json.Unmarshal(v, &actuation); err != nil {
				ui.Warning("Skipping corrupt journal entry: %v", err)
				continue
			}
			result = append(result, actuation)
		}
		return nil
	})
	return result, err
}

// prune deletes the oldest entries until at most maxEntries remain
func prune(b *bolt.Bucket, maxEntries int) error {
	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}
	excess := count - maxEntries
	if excess <= 0 {
		return nil
	}

	for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
		if err := b.Delete(k); err != nil {
			return err
		}
		excess--
	}
	return nil
}

// timeKey sorts chronologically as bbolt orders keys bytewise
func timeKey(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}
