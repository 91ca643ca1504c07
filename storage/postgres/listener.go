package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/devtna/jlsfinder/storage"
)

// notifyChannel is the single NOTIFY channel covering row changes on all
// three tables; the triggers are installed by the embedded migrations.
const notifyChannel = "jlsfinder_changes"

type notification struct {
	Table string          `json:"table"`
	Op    string          `json:"op"`
	Row   json.RawMessage `json:"row"`
}

// Subscribe opens the realtime change feed. Events are forwarded in delivery
// order; nothing de-duplicates or re-orders them here.
func (b *Backend) Subscribe(ctx context.Context) (<-chan storage.Event, error) {
	l := pq.NewListener(b.dsn, 10*time.Second, time.Minute, func(_ pq.ListenerEventType, err error) {
		if err != nil {
			b.log.Warn("change feed listener", err)
		}
	})
	if err := l.Listen(notifyChannel); err != nil {
		_ = l.Close()
		return nil, errors.Wrap(err, "listening on change feed")
	}
	b.listener = l

	ch := make(chan storage.Event, 64)
	b.events = ch
	go b.forward(ctx, l, ch)
	return ch, nil
}

func (b *Backend) forward(ctx context.Context, l *pq.Listener, ch chan<- storage.Event) {
	defer close(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-l.Notify:
			if !ok {
				return
			}
			if n == nil {
				// reconnect marker; notifications sent while disconnected are lost
				continue
			}
			ev, err := decodeNotification(n.Extra)
			if err != nil {
				b.log.Warn("dropping undecodable change event", err)
				continue
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func decodeNotification(payload string) (storage.Event, error) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return storage.Event{}, errors.Wrap(err, "decoding notification")
	}

	ev := storage.Event{Table: storage.Table(n.Table), Op: storage.Op(n.Op)}

	// deletes carry only the old row's key
	if ev.Op == storage.OpDelete {
		var key struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(n.Row, &key); err != nil {
			return storage.Event{}, errors.Wrap(err, "decoding deleted row key")
		}
		ev.RowID = key.ID
		return ev, nil
	}

	switch ev.Table {
	case storage.TableSchools:
		var r schoolRow
		if err := json.Unmarshal(n.Row, &r); err != nil {
			return storage.Event{}, errors.Wrap(err, "decoding school row")
		}
		s := r.entity()
		ev.Row, ev.RowID = &s, s.ID
	case storage.TableUsers:
		var r userRow
		if err := json.Unmarshal(n.Row, &r); err != nil {
			return storage.Event{}, errors.Wrap(err, "decoding user row")
		}
		u := r.entity()
		ev.Row, ev.RowID = &u, u.ID
	case storage.TableReviews:
		var r reviewRow
		if err := json.Unmarshal(n.Row, &r); err != nil {
			return storage.Event{}, errors.Wrap(err, "decoding review row")
		}
		rv := r.entity()
		ev.Row, ev.RowID = &rv, rv.ID
	default:
		return storage.Event{}, errors.Errorf("unknown table %q", n.Table)
	}
	return ev, nil
}
