package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vitrine/internal/record"
)

// Store is a local, SQLite-backed ledger. It is the development and test
// authority: it assigns monotonic record IDs, enforces holdership and
// remixability, and carries originalCreator down every chain the same way a
// remote ledger would.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("ledger database %s is in use by another process", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the advisory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	return s.path
}

// Session binds the store to an acting identity. All create operations commit
// as this identity; holdership checks compare against it.
func (s *Store) Session(actor string) *Session {
	return &Session{store: s, actor: strings.TrimSpace(actor)}
}

// Session is a Ledger view bound to one acting identity.
type Session struct {
	store *Store
	actor string
}

var _ Ledger = (*Session)(nil)

// Actor returns the identity this session commits as.
func (l *Session) Actor() string {
	return l.actor
}

func (l *Session) CreateObjectRoot(ctx context.Context, params ObjectRootParams) (Commit, error) {
	rec := record.Record{
		Kind:            record.KindObject,
		PayloadRef:      params.PayloadRef,
		MetadataRef:     params.MetadataRef,
		Version:         1,
		OriginalCreator: l.actor,
		CurrentHolder:   l.actor,
		ObjectType:      params.ObjectType,
		Category:        params.Category,
	}
	return l.store.insert(ctx, rec)
}

func (l *Session) CreateObjectVersion(ctx context.Context, parentID int64, payloadRef, metadataRef string) (Commit, error) {
	parent, err := l.store.get(ctx, parentID)
	if err != nil {
		return Commit{}, err
	}
	if parent.CurrentHolder != l.actor {
		return Commit{}, fmt.Errorf("%w: record %d held by %s", ErrNotOwner, parentID, parent.CurrentHolder)
	}
	rec := record.Record{
		Kind:            record.KindObject,
		PayloadRef:      payloadRef,
		MetadataRef:     metadataRef,
		DisplayName:     parent.DisplayName,
		Version:         parent.Version + 1,
		ParentID:        parent.ID,
		OriginalCreator: parent.OriginalCreator,
		CurrentHolder:   l.actor,
		ObjectType:      parent.ObjectType,
		Category:        parent.Category,
	}
	return l.store.insert(ctx, rec)
}

func (l *Session) CreateChamberRoot(ctx context.Context, params ChamberRootParams) (Commit, error) {
	rec := record.Record{
		Kind:            record.KindChamber,
		PayloadRef:      params.PayloadRef,
		MetadataRef:     params.MetadataRef,
		ThumbnailRef:    params.ThumbnailRef,
		DisplayName:     strings.TrimSpace(params.DisplayName),
		Version:         1,
		OriginalCreator: l.actor,
		CurrentHolder:   l.actor,
		Remixable:       params.Remixable,
		ObjectRefs:      params.ObjectRefs,
	}
	return l.store.insert(ctx, rec)
}

func (l *Session) CreateChamberVersion(ctx context.Context, params ChamberVersionParams) (Commit, error) {
	parent, err := l.store.get(ctx, params.ParentID)
	if err != nil {
		return Commit{}, err
	}
	if parent.CurrentHolder != l.actor {
		return Commit{}, fmt.Errorf("%w: record %d held by %s", ErrNotOwner, params.ParentID, parent.CurrentHolder)
	}
	rec := record.Record{
		Kind:            record.KindChamber,
		PayloadRef:      params.PayloadRef,
		MetadataRef:     params.MetadataRef,
		ThumbnailRef:    params.ThumbnailRef,
		DisplayName:     parent.DisplayName,
		Version:         parent.Version + 1,
		ParentID:        parent.ID,
		OriginalCreator: parent.OriginalCreator,
		CurrentHolder:   l.actor,
		Remixable:       params.Remixable,
		ObjectRefs:      params.ObjectRefs,
	}
	return l.store.insert(ctx, rec)
}

func (l *Session) CreateChamberRemix(ctx context.Context, params ChamberRemixParams) (Commit, error) {
	source, err := l.store.get(ctx, params.SourceID)
	if err != nil {
		return Commit{}, err
	}
	if !source.Remixable {
		return Commit{}, fmt.Errorf("%w: record %d", ErrNotRemixable, params.SourceID)
	}
	rec := record.Record{
		Kind:            record.KindChamber,
		PayloadRef:      params.PayloadRef,
		MetadataRef:     params.MetadataRef,
		ThumbnailRef:    params.ThumbnailRef,
		DisplayName:     strings.TrimSpace(params.DisplayName),
		Version:         1,
		OriginalCreator: l.actor,
		CurrentHolder:   l.actor,
		Remixable:       params.Remixable,
		ObjectRefs:      params.ObjectRefs,
	}
	return l.store.insert(ctx, rec)
}

func (l *Session) Record(ctx context.Context, id int64) (record.Record, error) {
	return l.store.get(ctx, id)
}

func (l *Session) RecordsByCreator(ctx context.Context, address string) ([]record.Record, error) {
	return l.store.recordsByCreator(ctx, address)
}

const recordColumns = `id, kind, payload_ref, metadata_ref, thumbnail_ref, display_name,
	version, parent_id, original_creator, current_holder, remixable, object_refs,
	object_type, category, created_at`

func (s *Store) insert(ctx context.Context, rec record.Record) (Commit, error) {
	ctx = ensureContext(ctx)
	refs, err := json.Marshal(objectRefsOrEmpty(rec.ObjectRefs))
	if err != nil {
		return Commit{}, fmt.Errorf("marshal object refs: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	var res sql.Result
	err = retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO records (
				kind, payload_ref, metadata_ref, thumbnail_ref, display_name,
				version, parent_id, original_creator, current_holder, remixable,
				object_refs, object_type, category, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(rec.Kind), rec.PayloadRef, rec.MetadataRef, rec.ThumbnailRef, rec.DisplayName,
			rec.Version, rec.ParentID, rec.OriginalCreator, rec.CurrentHolder, boolToInt(rec.Remixable),
			string(refs), rec.ObjectType, rec.Category, timestamp,
		)
		return execErr
	})
	if err != nil {
		return Commit{}, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Commit{}, fmt.Errorf("last insert id: %w", err)
	}
	return Commit{ID: id, Receipt: uuid.NewString()}, nil
}

func (s *Store) get(ctx context.Context, id int64) (record.Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("fetch record %d: %w", id, err)
	}
	return rec, nil
}

func (s *Store) recordsByCreator(ctx context.Context, address string) ([]record.Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records
		 WHERE original_creator = ? OR current_holder = ?
		 ORDER BY id`,
		address, address,
	)
	if err != nil {
		return nil, fmt.Errorf("query records by creator: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (record.Record, error) {
	var (
		rec       record.Record
		kind      string
		remixable int
		refsJSON  string
		createdAt string
	)
	err := row.Scan(
		&rec.ID, &kind, &rec.PayloadRef, &rec.MetadataRef, &rec.ThumbnailRef, &rec.DisplayName,
		&rec.Version, &rec.ParentID, &rec.OriginalCreator, &rec.CurrentHolder, &remixable, &refsJSON,
		&rec.ObjectType, &rec.Category, &createdAt,
	)
	if err != nil {
		return record.Record{}, err
	}
	rec.Kind = record.Kind(kind)
	rec.Remixable = remixable != 0
	if refsJSON != "" {
		if err := json.Unmarshal([]byte(refsJSON), &rec.ObjectRefs); err != nil {
			return record.Record{}, fmt.Errorf("decode object refs: %w", err)
		}
	}
	if createdAt != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}

func objectRefsOrEmpty(refs []int64) []int64 {
	if refs == nil {
		return []int64{}
	}
	return refs
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
