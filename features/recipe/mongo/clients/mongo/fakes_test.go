package mongo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"goa.design/recipes/telemetry"
)

// fakeCollection is an in-memory stand-in for the recipes collection. It
// understands the filters the client issues: {}, {"id": n},
// {"id": {"$in": [...]}}, {"title": s} and {"$text": {"$search": s}}.
type fakeCollection struct {
	mu      sync.Mutex
	exists  bool
	docs    []recipeDocument
	indexes map[string]mongodriver.IndexModel
	calls   []string
	ctxs    []context.Context
	filters []any
	opts    []*options.FindOptions

	findErr   error
	insertErr error
	dropErr   error
	indexErr  error
}

func newFakeCollection(docs ...recipeDocument) *fakeCollection {
	c := &fakeCollection{indexes: make(map[string]mongodriver.IndexModel)}
	if len(docs) > 0 {
		c.exists = true
		c.docs = append(c.docs, docs...)
	}
	return c
}

func (c *fakeCollection) record(ctx context.Context, name string) {
	c.calls = append(c.calls, name)
	c.ctxs = append(c.ctxs, ctx)
}

func (c *fakeCollection) FindOne(ctx context.Context, filter any, _ ...*options.FindOneOptions) singleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(ctx, "findOne")
	c.filters = append(c.filters, filter)
	if c.findErr != nil {
		return fakeSingleResult{err: c.findErr}
	}
	matches, err := c.match(filter)
	if err != nil {
		return fakeSingleResult{err: err}
	}
	if len(matches) == 0 {
		return fakeSingleResult{err: mongodriver.ErrNoDocuments}
	}
	doc := matches[0]
	return fakeSingleResult{doc: &doc}
}

func (c *fakeCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(ctx, "find")
	c.filters = append(c.filters, filter)
	c.opts = append(c.opts, opts...)
	if c.findErr != nil {
		return nil, c.findErr
	}
	matches, err := c.match(filter)
	if err != nil {
		return nil, err
	}
	return &fakeCursor{docs: matches}, nil
}

func (c *fakeCollection) InsertMany(ctx context.Context, docs []any, _ ...*options.InsertManyOptions) (*mongodriver.InsertManyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(ctx, "insertMany")
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	if len(docs) == 0 {
		return nil, errors.New("must provide at least one element in input slice")
	}
	ids := make([]any, 0, len(docs))
	for _, d := range docs {
		doc, ok := d.(recipeDocument)
		if !ok {
			return nil, errors.New("unsupported document type")
		}
		c.docs = append(c.docs, doc)
		ids = append(ids, doc.ID)
	}
	c.exists = true
	return &mongodriver.InsertManyResult{InsertedIDs: ids}, nil
}

func (c *fakeCollection) Drop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(ctx, "drop")
	if c.dropErr != nil {
		return c.dropErr
	}
	c.exists = false
	c.docs = nil
	c.indexes = make(map[string]mongodriver.IndexModel)
	return nil
}

func (c *fakeCollection) Indexes() indexView {
	return fakeIndexView{parent: c}
}

func (c *fakeCollection) hasTextIndex() bool {
	for _, idx := range c.indexes {
		for _, k := range idx.Keys.(bson.D) {
			if k.Value == "text" {
				return true
			}
		}
	}
	return false
}

func (c *fakeCollection) match(filter any) ([]recipeDocument, error) {
	f, ok := filter.(bson.M)
	if !ok {
		return nil, errors.New("unsupported filter type")
	}
	if _, ok := f["$text"]; ok && c.exists && !c.hasTextIndex() {
		return nil, errors.New("text index required for $text query")
	}
	var result []recipeDocument
	for _, doc := range c.docs {
		if matches(f, doc) {
			result = append(result, doc)
		}
	}
	return result, nil
}

func matches(f bson.M, doc recipeDocument) bool {
	for k, v := range f {
		switch k {
		case "id":
			switch val := v.(type) {
			case int:
				if doc.ID != val {
					return false
				}
			case bson.M:
				in, _ := val["$in"].([]int)
				if !containsInt(in, doc.ID) {
					return false
				}
			default:
				return false
			}
		case "title":
			if s, _ := v.(string); s != doc.Title {
				return false
			}
		case "$text":
			m, _ := v.(bson.M)
			s, _ := m["$search"].(string)
			if !textMatch(s, doc) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func textMatch(search string, doc recipeDocument) bool {
	haystack := []string{strings.ToLower(doc.Title)}
	for _, in := range doc.Ingredients {
		haystack = append(haystack, strings.ToLower(in.DisplayValue))
	}
	for _, term := range strings.Fields(strings.ToLower(search)) {
		for _, h := range haystack {
			if strings.Contains(h, term) {
				return true
			}
		}
	}
	return false
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

type fakeIndexView struct {
	parent *fakeCollection
}

func (v fakeIndexView) CreateOne(ctx context.Context, model mongodriver.IndexModel, opts ...*options.CreateIndexesOptions) (string, error) {
	v.parent.mu.Lock()
	defer v.parent.mu.Unlock()
	v.parent.record(ctx, "createIndex")
	if v.parent.indexErr != nil {
		return "", v.parent.indexErr
	}
	keys, ok := model.Keys.(bson.D)
	if !ok || len(keys) == 0 {
		return "", errors.New("missing keys")
	}
	name := "unnamed"
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}
	v.parent.indexes[name] = model
	v.parent.exists = true
	return name, nil
}

type fakeSingleResult struct {
	doc *recipeDocument
	err error
}

func (r fakeSingleResult) Decode(val any) error {
	if r.err != nil {
		return r.err
	}
	dest, ok := val.(*recipeDocument)
	if !ok {
		return errors.New("unsupported decode target")
	}
	*dest = *r.doc
	return nil
}

type fakeCursor struct {
	docs   []recipeDocument
	closed bool
}

func (c *fakeCursor) All(_ context.Context, results any) error {
	defer func() { c.closed = true }()
	switch dest := results.(type) {
	case *[]recipeDocument:
		*dest = append([]recipeDocument(nil), c.docs...)
	case *[]idDocument:
		out := make([]idDocument, len(c.docs))
		for i, d := range c.docs {
			out[i] = idDocument{ID: d.ID}
		}
		*dest = out
	default:
		return errors.New("unexpected decode target")
	}
	return nil
}

func (c *fakeCursor) Close(context.Context) error {
	c.closed = true
	return nil
}

// fakeDialer hands out connections to a shared fakeCollection and tracks
// every connection it opened.
type fakeDialer struct {
	mu       sync.Mutex
	coll     *fakeCollection
	dialErr  error
	pingErr  error
	closeErr error
	conns    []*fakeConnection
}

func newFakeDialer(coll *fakeCollection) *fakeDialer {
	return &fakeDialer{coll: coll}
}

func (d *fakeDialer) Dial(ctx context.Context) (connection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	conn := &fakeConnection{coll: d.coll, pingErr: d.pingErr, closeErr: d.closeErr}
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *fakeDialer) opened() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

type fakeConnection struct {
	mu       sync.Mutex
	coll     *fakeCollection
	pingErr  error
	closeErr error
	closes   int
	closeCtx context.Context
	ctxErr   error
}

func (c *fakeConnection) Collection() collection {
	return c.coll
}

func (c *fakeConnection) Ping(context.Context) error {
	return c.pingErr
}

func (c *fakeConnection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	c.closeCtx = ctx
	c.ctxErr = ctx.Err()
	return c.closeErr
}

type logEntry struct {
	level   string
	msg     string
	keyvals []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, keyvals []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, keyvals: keyvals})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, keyvals ...any) {
	l.add("debug", msg, keyvals)
}
func (l *recordingLogger) Info(_ context.Context, msg string, keyvals ...any) {
	l.add("info", msg, keyvals)
}
func (l *recordingLogger) Warn(_ context.Context, msg string, keyvals ...any) {
	l.add("warn", msg, keyvals)
}
func (l *recordingLogger) Error(_ context.Context, msg string, keyvals ...any) {
	l.add("error", msg, keyvals)
}

type metricSample struct {
	name string
	tags []string
}

type recordingMetrics struct {
	mu       sync.Mutex
	counters []metricSample
	timers   []metricSample
}

func (m *recordingMetrics) IncCounter(name string, _ float64, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, metricSample{name: name, tags: tags})
}

func (m *recordingMetrics) RecordTimer(name string, _ time.Duration, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers = append(m.timers, metricSample{name: name, tags: tags})
}

type recordingTracer struct {
	mu    sync.Mutex
	spans []*recordingSpan
}

func (tr *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, telemetry.Span) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	s := &recordingSpan{name: name}
	tr.spans = append(tr.spans, s)
	return ctx, s
}

type spanEvent struct {
	name  string
	attrs []any
}

type recordingSpan struct {
	name   string
	events []spanEvent
	code   codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordingSpan) AddEvent(name string, attrs ...any) {
	s.events = append(s.events, spanEvent{name: name, attrs: attrs})
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.code = code }

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}
