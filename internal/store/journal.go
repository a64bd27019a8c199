package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
)

// AppendEvent records an applied change in the events table.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	entityID = strings.TrimSpace(entityID)
	if typ == "" {
		return errors.New("event: missing type")
	}
	if entityID == "" {
		return errors.New("event: missing entity id")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, issued_at_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UTC().UnixMilli(), typ, entityID, string(pb))
	return err
}

// ReadEventsTail returns the newest limit events, oldest first. limit <= 0 returns all.
func (s Store) ReadEventsTail(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, issued_at_unixms, type, entity_id, payload_json FROM events ORDER BY issued_at_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var tsMs int64
		var payloadJSON string
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.EntityID, &payloadJSON); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		ev.Payload = payload
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Commit saves snap and journals ch. A no-op change writes nothing.
func (s Store) Commit(ctx context.Context, snap *model.Snapshot, ch mutate.Change) error {
	if ch.Empty() {
		return nil
	}
	if err := s.Save(ctx, snap); err != nil {
		return err
	}
	entity := ch.ItemID
	if entity == "" {
		entity = ch.ListID
	}
	payload := map[string]any{"list": ch.ListID}
	for k, v := range ch.Payload {
		payload[k] = v
	}
	return s.AppendEvent(ctx, ch.Type, entity, payload)
}
