package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	order_cache "github.com/Modeva-Ecommerce/ops-dashboard-backend/cache"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/services"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/utils"
)

const defaultFetchTimeout = 2 * time.Minute

// TimeoutPolicy bounds how long a query waits for its fetch: Base plus PerChunk for every
// full 30 days in the range, capped at Max.
type TimeoutPolicy struct {
	Base     time.Duration
	PerChunk time.Duration
	Max      time.Duration
}

func DefaultTimeoutPolicy() TimeoutPolicy {
	return TimeoutPolicy{Base: 8 * time.Second, PerChunk: 4 * time.Second, Max: 30 * time.Second}
}

func (p TimeoutPolicy) For(r models.DateRange) time.Duration {
	d := p.Base + time.Duration(r.Days()/30)*p.PerChunk
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// HintParser is implemented by services.PromptParser.
type HintParser interface {
	Available() bool
	Parse(ctx context.Context, prompt string) (*models.IntentHint, error)
}

// Command is one user question addressed to a session. An empty SessionID starts a new one.
type Command struct {
	SessionID  string
	Prompt     string
	SkipParser bool
}

// Outcome is the answer to a Command.
type Outcome struct {
	SessionID string
	Result    Result
	// Partial is set when the fetch did not finish in time.
	Partial bool
}

// Orchestrator makes sure a question is answered over the orders of the range it asks
// about, fetching them first when the session has something else loaded.
type Orchestrator struct {
	classifier   *Classifier
	loader       services.OrderLoader
	parser       HintParser
	sessions     *SessionStore
	policy       TimeoutPolicy
	fetchTimeout time.Duration
	now          func() time.Time
}

func NewOrchestrator(loader services.OrderLoader, parser HintParser, sessions *SessionStore, policy TimeoutPolicy, now func() time.Time) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	if sessions == nil {
		sessions = NewSessionStore()
	}
	return &Orchestrator{
		classifier:   NewClassifier(now),
		loader:       loader,
		parser:       parser,
		sessions:     sessions,
		policy:       policy,
		fetchTimeout: defaultFetchTimeout,
		now:          now,
	}
}

func (o *Orchestrator) Sessions() *SessionStore {
	return o.sessions
}

// Execute answers cmd. Only an unknown session or a cancelled ctx is an error; fetch
// failures come back as explanatory content.
func (o *Orchestrator) Execute(ctx context.Context, cmd Command) (*Outcome, error) {
	prompt := strings.TrimSpace(cmd.Prompt)
	if prompt == "" {
		return nil, models.ErrEmptyPrompt
	}
	sess, err := o.sessions.Resolve(cmd.SessionID)
	if err != nil {
		return nil, err
	}

	sess.exec.Lock()
	defer sess.exec.Unlock()

	sess.append(models.Message{Type: models.MessageUser, Content: prompt, CreatedAt: o.now()})

	hint := o.parseHint(ctx, prompt, cmd.SkipParser)
	outcome, err := o.answer(ctx, sess, prompt, hint)
	if err != nil {
		return nil, err
	}

	sess.append(models.Message{
		Type:      models.MessageAssistant,
		Content:   outcome.Result.Content,
		Data:      outcome.Result.Data,
		CreatedAt: o.now(),
	})
	return outcome, nil
}

func (o *Orchestrator) parseHint(ctx context.Context, prompt string, skip bool) *models.IntentHint {
	if skip || o.parser == nil || !o.parser.Available() {
		return nil
	}
	hint, err := o.parser.Parse(ctx, prompt)
	if err != nil {
		log.Printf("[assistant.parse] WARN falling back to local heuristics: %v", err)
		return nil
	}
	return hint
}

func (o *Orchestrator) answer(ctx context.Context, sess *Session, prompt string, hint *models.IntentHint) (*Outcome, error) {
	out := &Outcome{SessionID: sess.ID}

	if hint != nil && hint.Intent == models.IntentUnknown {
		out.Result = o.classify(sess, prompt, hint)
		return out, nil
	}

	r := o.classifier.ResolveRange(prompt, hint)
	if r == nil {
		loaded, orders := sess.view.Loaded()
		if loaded != nil || len(orders) > 0 {
			out.Result = o.classify(sess, prompt, hint)
			return out, nil
		}
		mtd := utils.MonthToDate(o.now())
		r = &mtd
	}

	f := o.dispatch(sess, *r)
	if f == nil {
		sess.setState(StateReady)
		out.Result = o.classify(sess, prompt, hint)
		return out, nil
	}
	sess.setState(StateAwaitingFetch)

	timer := time.NewTimer(o.policy.For(*r))
	defer timer.Stop()

	select {
	case <-f.done:
	case <-timer.C:
		log.Printf("[assistant.fetch] WARN session=%s range=%s timed out, answering with loaded orders", sess.ID, r)
		sess.setState(StateIdle)
		out.Partial = true
		out.Result = o.classify(sess, prompt, hint)
		return out, nil
	case <-ctx.Done():
		sess.setState(StateIdle)
		return nil, ctx.Err()
	}

	if f.err != nil {
		sess.setState(StateIdle)
		out.Result = Result{
			Intent:  MatchIntent(prompt, hint),
			Content: fmt.Sprintf("I couldn't load orders from %s to %s: %v", r.StartDate, r.EndDate, f.err),
			Range:   r,
		}
		return out, nil
	}

	if o.ready(sess, *r) {
		sess.setState(StateReady)
	} else {
		sess.setState(StateIdle)
	}
	out.Result = o.classify(sess, prompt, hint)
	return out, nil
}

// ready holds when the view carries exactly r and at least one order inside it.
func (o *Orchestrator) ready(sess *Session, r models.DateRange) bool {
	if !sess.view.Matches(r) {
		return false
	}
	_, orders := sess.view.Loaded()
	for _, ord := range orders {
		if r.Contains(ord.OrderDate) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) classify(sess *Session, prompt string, hint *models.IntentHint) Result {
	_, orders := sess.view.Loaded()
	return o.classifier.Classify(Input{Text: prompt, Hint: hint, Orders: orders})
}

// dispatch returns nil when the view already holds r. Otherwise it points the view at r and
// joins the fetch already running for r, or starts one. sess.mu orders this against run, so a
// fetch found in inflight has not yet applied its orders.
func (o *Orchestrator) dispatch(sess *Session, r models.DateRange) *fetch {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.view.Matches(r) {
		return nil
	}

	sess.view.BeginFetch(r)
	key := order_cache.Key(r)
	if f, ok := sess.inflight[key]; ok {
		return f
	}

	f := &fetch{rng: r, done: make(chan struct{})}
	sess.inflight[key] = f
	go o.run(sess, key, f)
	return f
}

func (o *Orchestrator) run(sess *Session, key string, f *fetch) {
	ctx, cancel := context.WithTimeout(context.Background(), o.fetchTimeout)
	defer cancel()

	res, err := o.loader.LoadOrders(ctx, f.rng)
	if err != nil {
		log.Printf("[assistant.fetch] ERROR session=%s range=%s: %v", sess.ID, f.rng, err)
	}

	sess.mu.Lock()
	if err == nil && !sess.view.Apply(f.rng, res.Orders) {
		log.Printf("[assistant.fetch] WARN session=%s discarded stale response for range=%s", sess.ID, f.rng)
	}
	f.err = err
	delete(sess.inflight, key)
	sess.mu.Unlock()
	close(f.done)
}
