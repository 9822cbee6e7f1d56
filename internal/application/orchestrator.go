package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

type RunOptions struct {
	BusinessIDs []string
	// UserID is sent as the account header on store enumeration.
	UserID   string
	Generate bool
	Submit   bool
	Reply    domain.ReplyConfig
}

type Orchestrator struct {
	places    ports.PlaceAPIProvider
	generator ports.TextGenerator
	runs      ports.RunRepository
	clock     ports.Clock
	observer  ports.RunObserver
	newID     func() string
}

type OrchestratorOption func(*Orchestrator)

// WithTextGenerator enables the generation stage. Without it the stage is
// skipped even when RunOptions.Generate is set.
func WithTextGenerator(generator ports.TextGenerator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

func WithRunRepository(runs ports.RunRepository) OrchestratorOption {
	return func(o *Orchestrator) {
		o.runs = runs
	}
}

func WithClock(clock ports.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithObserver(observer ports.RunObserver) OrchestratorOption {
	return func(o *Orchestrator) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func WithRunIDGenerator(newID func() string) OrchestratorOption {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

func NewOrchestrator(places ports.PlaceAPIProvider, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		places:   places,
		clock:    ports.SystemClock{},
		observer: ports.NopObserver{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run drives one pass over the configured stores. The returned RunResult is
// always populated; the error is non-nil only when the run ended Failed.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions, cancel *CancellationSignal) (domain.RunResult, error) {
	run := &domain.RunResult{
		ID:        o.newID(),
		State:     domain.RunStateIdle,
		StartedAt: o.clock.Now(),
	}

	if err := o.advance(run, domain.RunStateResolvingStores); err != nil {
		return o.fail(ctx, run, err)
	}

	api, err := o.places.OpenPlaceAPI(ctx)
	if err != nil {
		o.observer.OnLog(domain.LogLevelError, fmt.Sprintf("세션을 불러올 수 없습니다: %v", err))
		return o.fail(ctx, run, fmt.Errorf("open place api: %w", err))
	}
	defer api.Close()

	stores := o.resolveStores(ctx, api, opts)
	if len(stores) == 0 {
		o.observer.OnLog(domain.LogLevelError, domain.ErrNoValidStores.Error())
		return o.fail(ctx, run, domain.ErrNoValidStores)
	}

	if err := o.advance(run, domain.RunStateFetchingReviews); err != nil {
		return o.fail(ctx, run, err)
	}
	fetched, err := NewReviewFetcher(o.observer).FetchAll(ctx, api, stores, cancel)
	run.Stores = fetched
	o.emitCounts(run)
	if err != nil {
		return o.fail(ctx, run, err)
	}

	if opts.Generate {
		if err := o.generateReplies(ctx, run, opts.Reply, cancel); err != nil {
			return o.fail(ctx, run, err)
		}
	}

	if opts.Submit {
		if err := o.submitReplies(ctx, run, api, cancel); err != nil {
			return o.fail(ctx, run, err)
		}
	}

	if err := o.advance(run, domain.RunStateCompleted); err != nil {
		return o.fail(ctx, run, err)
	}

	return o.complete(ctx, run), nil
}

func (o *Orchestrator) advance(run *domain.RunResult, next domain.RunState) error {
	current := run.State
	if !current.CanTransition(next) {
		return fmt.Errorf("invalid run transition %s -> %s", current, next)
	}

	run.State = next
	o.observer.OnLog(domain.LogLevelDebug, fmt.Sprintf("run %s: %s -> %s", run.ID, current, next))

	return nil
}

func (o *Orchestrator) resolveStores(ctx context.Context, api ports.PlaceAPI, opts RunOptions) []domain.StoreIdentifierMap {
	ids := domain.NormalizeBusinessIDs(opts.BusinessIDs)
	total := len(ids)
	o.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("%d개 사업장 정보를 확인합니다.", total))

	stores := make([]domain.StoreIdentifierMap, 0, total)
	for i, id := range ids {
		store, err := api.ResolveStore(ctx, id, opts.UserID)
		if err != nil {
			o.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("사업장 %s 정보 확인 실패: %v", id, err))
		} else {
			o.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("사업장 %s -> placeId %s, placeSeq %s", id, store.PlaceID, store.PlaceSeq))
			stores = append(stores, store)
		}
		o.observer.OnProgress(i+1, total)
	}

	return stores
}

func (o *Orchestrator) generateReplies(ctx context.Context, run *domain.RunResult, cfg domain.ReplyConfig, cancel *CancellationSignal) error {
	if o.generator == nil {
		o.observer.OnLog(domain.LogLevelWarn, "답변 생성 API 키가 설정되지 않아 답변 생성을 건너뜁니다.")
		return nil
	}
	if err := o.advance(run, domain.RunStateGeneratingReplies); err != nil {
		return err
	}

	generator := NewReplyGenerator(o.generator, o.clock, o.observer)
	for i := range run.Stores {
		store := &run.Stores[i]
		if !store.Succeeded() || len(store.Reviews) == 0 {
			continue
		}

		o.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("플레이스 %s 답변 생성", store.Store.BookingBusinessID))
		store.Drafts = generator.GenerateBatch(ctx, store.Reviews, cfg, cancel)
	}

	return nil
}

func (o *Orchestrator) submitReplies(ctx context.Context, run *domain.RunResult, api ports.PlaceAPI, cancel *CancellationSignal) error {
	pending := 0
	for _, store := range run.Stores {
		pending += len(domain.EligibleDrafts(store.Drafts))
	}
	if pending == 0 {
		o.observer.OnLog(domain.LogLevelInfo, "제출할 답변이 없습니다.")
		return nil
	}
	if err := o.advance(run, domain.RunStateSubmittingReplies); err != nil {
		return err
	}

	submitter := NewReplySubmitter(o.clock, o.observer)
	for i := range run.Stores {
		store := &run.Stores[i]
		eligible := domain.EligibleDrafts(store.Drafts)
		if !store.Succeeded() || len(eligible) == 0 {
			continue
		}

		o.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("플레이스 %s 답변 제출", store.Store.BookingBusinessID))
		store.Outcomes = submitter.SubmitBatch(ctx, api, store.Store, eligible, cancel)
	}

	return nil
}

func (o *Orchestrator) complete(ctx context.Context, run *domain.RunResult) domain.RunResult {
	run.FinishedAt = o.clock.Now()
	for _, store := range run.Stores {
		o.observer.OnStoreCompleted(store)
	}
	o.emitCounts(run)
	o.save(ctx, *run)
	o.observer.OnRunCompleted(*run)

	return *run
}

func (o *Orchestrator) fail(ctx context.Context, run *domain.RunResult, err error) (domain.RunResult, error) {
	run.State = domain.RunStateFailed
	run.Err = err
	run.FinishedAt = o.clock.Now()
	o.save(ctx, *run)
	o.observer.OnRunFailed(err)

	return *run, err
}

func (o *Orchestrator) emitCounts(run *domain.RunResult) {
	counts := run.Counts()
	o.observer.OnCounts(counts.Processed, counts.Success, counts.Failed)
}

// save records the run even when ctx was cancelled by an interrupt.
func (o *Orchestrator) save(ctx context.Context, result domain.RunResult) {
	if o.runs == nil {
		return
	}

	if err := o.runs.Save(context.WithoutCancel(ctx), domain.SummarizeRun(result)); err != nil {
		o.observer.OnLog(domain.LogLevelWarn, fmt.Sprintf("실행 기록 저장 실패: %v", err))
	}
}
