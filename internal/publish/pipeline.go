package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/contentstore"
	"vitrine/internal/ledger"
	"vitrine/internal/logging"
	"vitrine/internal/metadata"
	"vitrine/internal/scene"
	"vitrine/internal/services"
)

// ErrBusy is returned when a publish is already in flight for the same
// target. Attempts are rejected, never queued: callers derive their busy
// state from this rather than tracking it separately.
var ErrBusy = errors.New("publish already in flight for this target")

// Options configures a Pipeline.
type Options struct {
	// Actor is the identity publishes commit as. It must match the ledger
	// session identity.
	Actor string
	// RemixFee is the flat fee forwarded to the source's original creator
	// before a remix. Zero disables the fee step.
	RemixFee int64
	// DefaultRemixable applies to new chamber roots when the request does
	// not set the flag.
	DefaultRemixable bool
	// Fees pays the remix fee. Nil skips the fee step with a recorded reason.
	Fees FeePayer
	// Now overrides the clock for tests.
	Now func() time.Time
}

// Pipeline drives publish attempts through the linear stage sequence:
// preparing, payload upload, thumbnail upload (chamber scenes), metadata
// upload, ledger commit. Failures are terminal for the attempt; nothing is
// retried and no ledger state exists for attempts that fail before commit.
type Pipeline struct {
	store  contentstore.Store
	ledger ledger.Ledger
	logger *slog.Logger
	opts   Options

	mu     sync.Mutex
	inUse  map[string]bool
}

// New constructs a publish pipeline over the given collaborators.
func New(store contentstore.Store, ldg ledger.Ledger, logger *slog.Logger, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		store:  store,
		ledger: ldg,
		logger: logging.NewComponentLogger(logger, "publish"),
		opts:   opts,
		inUse:  make(map[string]bool),
	}
}

// Busy reports whether a publish is currently in flight for the request's
// target. UI layers derive disabled/busy affordances from this.
func (p *Pipeline) Busy(req Request) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse[req.target()]
}

// Publish runs one attempt to completion and returns its terminal outcome.
// On error, no ledger mutation has occurred unless the failure came from the
// commit itself; content uploaded before a failure is orphaned but harmless.
func (p *Pipeline) Publish(ctx context.Context, req Request) (*Result, error) {
	target := req.target()
	if !p.acquire(target) {
		return nil, services.Wrap(services.ErrPrecondition, string(StagePreparing), "start publish", ErrBusy.Error(), ErrBusy)
	}
	defer p.release(target)

	sessionID := uuid.NewString()
	ctx = services.WithSessionID(ctx, sessionID)
	ctx = services.WithKind(ctx, string(req.Kind))
	logger := logging.WithContext(ctx, p.logger)

	started := p.opts.Now()
	logger.Info("publish started", logging.String("target", target))

	result, err := p.run(ctx, logger, req)
	if err != nil {
		p.report(req, Progress{Stage: StageFailed, Message: err.Error()})
		logger.Error("publish failed",
			logging.String("category", services.Category(err)),
			logging.Error(err),
			logging.Duration("elapsed", p.opts.Now().Sub(started)),
		)
		return nil, err
	}

	p.report(req, Progress{Stage: StageSucceeded, Percent: 100, Message: fmt.Sprintf("Published record #%d", result.RecordID)})
	logger.Info("publish succeeded",
		logging.Int64(logging.FieldRecordID, result.RecordID),
		logging.Duration("elapsed", p.opts.Now().Sub(started)),
	)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, req Request) (*Result, error) {
	p.report(req, Progress{Stage: StagePreparing, Message: "Validating publish"})
	if err := p.prepare(req); err != nil {
		return nil, err
	}

	result := &Result{Kind: req.Kind}

	// Best-effort remix fee: its failure is recorded, never fatal.
	if req.Kind == KindRemix {
		outcome := p.payRemixFee(ctx, logger, req)
		result.Fee = &outcome
	}

	payloadRef, err := p.uploadPayload(ctx, req)
	if err != nil {
		return nil, err
	}
	result.PayloadRef = payloadRef

	if req.Kind.chamberScene() {
		thumbnailRef, err := p.uploadThumbnail(ctx, req)
		if err != nil {
			return nil, err
		}
		result.ThumbnailRef = thumbnailRef
	}

	metadataRef, err := p.uploadMetadata(ctx, req, result.PayloadRef, result.ThumbnailRef)
	if err != nil {
		return nil, err
	}
	result.MetadataRef = metadataRef

	p.report(req, Progress{Stage: StageCommitting, Message: "Committing record to ledger"})
	commit, err := p.commit(ctx, req, result)
	if err != nil {
		return nil, err
	}
	result.RecordID = commit.ID
	result.Receipt = commit.Receipt
	return result, nil
}

func (p *Pipeline) prepare(req Request) error {
	stage := string(StagePreparing)
	switch req.Kind {
	case KindObject:
		if len(req.ObjectData) == 0 {
			return services.Wrap(services.ErrPrecondition, stage, "publish object", "no object selected", nil)
		}
	case KindChamber:
		if len(req.Objects) == 0 {
			return services.Wrap(services.ErrPrecondition, stage, "publish chamber", "chamber has no objects", nil)
		}
		if strings.TrimSpace(req.Name) == "" {
			return services.Wrap(services.ErrPrecondition, stage, "publish chamber", "chamber name is required", nil)
		}
	case KindVersion:
		if req.Parent == nil {
			return services.Wrap(services.ErrPrecondition, stage, "save version", "no chamber loaded", nil)
		}
		if len(req.Objects) == 0 {
			return services.Wrap(services.ErrPrecondition, stage, "save version", "chamber has no objects", nil)
		}
	case KindRemix:
		if req.Source == nil {
			return services.Wrap(services.ErrPrecondition, stage, "remix", "no source record", nil)
		}
		if !req.Source.Remixable {
			return services.Wrap(services.ErrPermission, stage, "remix",
				fmt.Sprintf("record #%d disallows remix", req.Source.ID), nil)
		}
		if p.opts.Actor == req.Source.CurrentHolder || p.opts.Actor == req.Source.OriginalCreator {
			return services.Wrap(services.ErrPermission, stage, "remix",
				"cannot remix your own chamber; save a version instead", nil)
		}
	default:
		return services.Wrap(services.ErrPrecondition, stage, "publish", fmt.Sprintf("unknown publish kind %q", req.Kind), nil)
	}
	return nil
}

func (p *Pipeline) payRemixFee(ctx context.Context, logger *slog.Logger, req Request) FeeOutcome {
	recipient := req.Source.OriginalCreator
	amount := p.opts.RemixFee
	switch {
	case amount <= 0:
		return feeSkipped("remix fee disabled", recipient, amount)
	case p.opts.Fees == nil:
		return feeSkipped("no fee payer configured", recipient, amount)
	}
	if err := p.opts.Fees.Pay(ctx, recipient, amount); err != nil {
		logger.Warn("remix fee transfer failed; continuing",
			logging.String("recipient", recipient),
			logging.Int64("amount", amount),
			logging.Error(err),
		)
		return feeSkipped(err.Error(), recipient, amount)
	}
	return feePaid(recipient, amount)
}

func (p *Pipeline) uploadPayload(ctx context.Context, req Request) (string, error) {
	stage := StageUploadingPayload
	ctx = services.WithStage(ctx, string(stage))
	p.report(req, Progress{Stage: stage, Message: "Uploading payload"})

	var data []byte
	if req.Kind == KindObject {
		data = req.ObjectData
	} else {
		serialized, err := scene.Serialize(req.Objects, req.RoomConfig, p.opts.Now())
		if err != nil {
			return "", services.Wrap(services.ErrUpload, string(stage), "serialize scene", "", err)
		}
		data = serialized
	}

	ref, err := p.store.Upload(ctx, data, func(pct int) {
		p.report(req, Progress{Stage: stage, Percent: pct, Message: "Uploading payload"})
	})
	if err != nil {
		return "", services.Wrap(services.ErrUpload, string(stage), "upload payload", "", err)
	}
	return ref, nil
}

func (p *Pipeline) uploadThumbnail(ctx context.Context, req Request) (string, error) {
	stage := StageUploadingThumbnail
	ctx = services.WithStage(ctx, string(stage))
	p.report(req, Progress{Stage: stage, Message: "Uploading thumbnail"})

	// A chamber publish without a captured snapshot is a terminal upload
	// failure, not a skip: listings render from this image.
	if len(req.Thumbnail) == 0 {
		return "", services.Wrap(services.ErrUpload, string(stage), "upload thumbnail", "no snapshot captured", nil)
	}

	ref, err := p.store.Upload(ctx, req.Thumbnail, func(pct int) {
		p.report(req, Progress{Stage: stage, Percent: pct, Message: "Uploading thumbnail"})
	})
	if err != nil {
		return "", services.Wrap(services.ErrUpload, string(stage), "upload thumbnail", "", err)
	}
	return ref, nil
}

func (p *Pipeline) uploadMetadata(ctx context.Context, req Request, payloadRef, thumbnailRef string) (string, error) {
	stage := StageUploadingMetadata
	ctx = services.WithStage(ctx, string(stage))
	p.report(req, Progress{Stage: stage, Message: "Uploading metadata"})

	refs := metadata.Refs{PayloadRef: payloadRef, ThumbnailRef: thumbnailRef}
	now := p.opts.Now()

	var doc metadata.Document
	switch req.Kind {
	case KindObject:
		doc = metadata.ForObjectRoot(req.ObjectName, req.ObjectType, req.Category, refs, now)
	case KindChamber:
		doc = metadata.ForChamberRoot(req.Name, len(req.Objects), p.remixableForRoot(req), refs, now)
	case KindVersion:
		doc = metadata.ForVersion(*req.Parent, len(req.Objects), req.Parent.Version+1, refs, now)
	case KindRemix:
		doc = metadata.ForRemix(*req.Source, req.Name, len(req.Objects), p.remixableForRemix(req), refs, now)
	}

	ref, err := p.store.UploadJSON(ctx, doc, "metadata.json")
	if err != nil {
		return "", services.Wrap(services.ErrUpload, string(stage), "upload metadata", "", err)
	}
	return ref, nil
}

func (p *Pipeline) commit(ctx context.Context, req Request, result *Result) (ledger.Commit, error) {
	stage := string(StageCommitting)
	ctx = services.WithStage(ctx, stage)

	var (
		commit ledger.Commit
		err    error
	)
	switch req.Kind {
	case KindObject:
		commit, err = p.ledger.CreateObjectRoot(ctx, ledger.ObjectRootParams{
			PayloadRef:  result.PayloadRef,
			MetadataRef: result.MetadataRef,
			ObjectType:  req.ObjectType,
			Category:    req.Category,
		})
	case KindChamber:
		commit, err = p.ledger.CreateChamberRoot(ctx, ledger.ChamberRootParams{
			PayloadRef:   result.PayloadRef,
			MetadataRef:  result.MetadataRef,
			ThumbnailRef: result.ThumbnailRef,
			DisplayName:  req.Name,
			ObjectRefs:   req.ObjectRefs,
			Remixable:    p.remixableForRoot(req),
		})
	case KindVersion:
		commit, err = p.ledger.CreateChamberVersion(ctx, ledger.ChamberVersionParams{
			ParentID:     req.Parent.ID,
			PayloadRef:   result.PayloadRef,
			MetadataRef:  result.MetadataRef,
			ThumbnailRef: result.ThumbnailRef,
			ObjectRefs:   req.ObjectRefs,
			Remixable:    p.remixableForVersion(req),
		})
	case KindRemix:
		commit, err = p.ledger.CreateChamberRemix(ctx, ledger.ChamberRemixParams{
			SourceID:     req.Source.ID,
			PayloadRef:   result.PayloadRef,
			MetadataRef:  result.MetadataRef,
			ThumbnailRef: result.ThumbnailRef,
			DisplayName:  req.Name,
			ObjectRefs:   req.ObjectRefs,
			Remixable:    p.remixableForRemix(req),
		})
	}
	if err != nil {
		return ledger.Commit{}, services.Wrap(services.ErrCommit, stage, "create record", "", err)
	}
	return commit, nil
}

// remixableForRoot resolves the flag for a new chamber root: explicit request
// value, else the configured default.
func (p *Pipeline) remixableForRoot(req Request) bool {
	if req.Remixable != nil {
		return *req.Remixable
	}
	return p.opts.DefaultRemixable
}

// remixableForVersion inherits the parent's flag unless explicitly overridden.
func (p *Pipeline) remixableForVersion(req Request) bool {
	if req.Remixable != nil {
		return *req.Remixable
	}
	return req.Parent.Remixable
}

// remixableForRemix defaults to false regardless of the source's flag.
func (p *Pipeline) remixableForRemix(req Request) bool {
	if req.Remixable != nil {
		return *req.Remixable
	}
	return false
}

func (p *Pipeline) report(req Request, progress Progress) {
	if req.OnProgress != nil {
		req.OnProgress(progress)
	}
}

func (p *Pipeline) acquire(target string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inUse[target] {
		return false
	}
	p.inUse[target] = true
	return true
}

func (p *Pipeline) release(target string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inUse, target)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
