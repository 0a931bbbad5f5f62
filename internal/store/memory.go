package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store implementing the same operator subset as
// the Mongo engine. It backs tests; documents round-trip through the bson
// codec so struct tags behave identically on both engines.
// Updates hold the store lock for their full duration, which gives the
// per-document atomicity the Mongo engine guarantees natively.
type Memory struct {
	mu   sync.RWMutex
	cols map[string]map[string]bson.M
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{cols: make(map[string]map[string]bson.M)}
}

func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{store: m, name: name}
}

func (m *Memory) docs(name string) map[string]bson.M {
	col, ok := m.cols[name]
	if !ok {
		col = make(map[string]bson.M)
		m.cols[name] = col
	}
	return col
}

type memoryCollection struct {
	store *Memory
	name  string
}

func (c *memoryCollection) InsertOne(_ context.Context, doc interface{}) error {
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	id, _ := d["_id"].(string)
	if id == "" {
		return fmt.Errorf("%w: insert without _id", ErrUnavailable)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.docs(c.name)
	if _, exists := col[id]; exists {
		return ErrDuplicateID
	}
	col[id] = d
	return nil
}

func (c *memoryCollection) FindByID(_ context.Context, id string, out interface{}) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	d, ok := c.store.docs(c.name)[id]
	if !ok {
		return ErrNotFound
	}
	return decodeDoc(d, out)
}

func (c *memoryCollection) Find(_ context.Context, filter bson.M, sortSpec bson.D, out interface{}) error {
	// matched holds references to live documents, so the lock stays held
	// until they are decoded
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var matched []bson.M
	for _, d := range c.store.docs(c.name) {
		if matchFilter(d, filter) {
			matched = append(matched, d)
		}
	}
	if sortSpec != nil {
		sortDocs(matched, sortSpec)
	}
	return decodeAll(matched, out)
}

func (c *memoryCollection) UpdateByID(_ context.Context, id string, update bson.M) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.docs(c.name)
	d, ok := col[id]
	if !ok {
		return ErrNotFound
	}
	return applyUpdate(d, update, false)
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter bson.M, update bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, d := range c.store.docs(c.name) {
		if matchFilter(d, filter) {
			if err := applyUpdate(d, update, false); err != nil {
				return 0, err
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) UpsertByID(_ context.Context, id string, update bson.M) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.docs(c.name)
	d, ok := col[id]
	if !ok {
		d = bson.M{"_id": id}
		col[id] = d
		return applyUpdate(d, update, true)
	}
	return applyUpdate(d, update, false)
}

func (c *memoryCollection) DeleteByID(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.docs(c.name)
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func (c *memoryCollection) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.docs(c.name)
	var n int64
	for id, d := range col {
		if matchFilter(d, filter) {
			delete(col, id)
			n++
		}
	}
	return n, nil
}

func (c *memoryCollection) Count(_ context.Context, filter bson.M) (int64, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var n int64
	for _, d := range c.store.docs(c.name) {
		if matchFilter(d, filter) {
			n++
		}
	}
	return n, nil
}

// toDoc deep-copies an arbitrary document into bson.M via the bson codec.
// DefaultDocumentM keeps nested documents as bson.M instead of bson.D so
// dotted-path lookups work.
func toDoc(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	dec.DefaultDocumentM()
	var d bson.M
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return d, nil
}

func decodeDoc(d bson.M, out interface{}) error {
	raw, err := bson.Marshal(d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func decodeAll(docs []bson.M, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: Find needs a pointer to a slice", ErrUnavailable)
	}
	sliceVal := v.Elem()
	elemType := sliceVal.Type().Elem()
	result := reflect.MakeSlice(sliceVal.Type(), 0, len(docs))
	for _, d := range docs {
		elem := reflect.New(elemType)
		if err := decodeDoc(d, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceVal.Set(result)
	return nil
}

// lookup resolves a possibly dotted field path inside a document.
func lookup(d bson.M, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = d
	for _, p := range parts {
		m, ok := cur.(bson.M)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath writes a value at a possibly dotted field path, creating
// intermediate maps.
func setPath(d bson.M, path string, value interface{}) {
	parts := strings.Split(path, ".")
	cur := d
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(bson.M)
		if !ok {
			next = bson.M{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// matchFilter implements equality matching plus the `$ne`/`$eq` operators.
// Matching a scalar against an array field means "array contains", and `$ne`
// against an array means "array does not contain", mirroring Mongo.
func matchFilter(d bson.M, filter bson.M) bool {
	for path, cond := range filter {
		field, _ := lookup(d, path)
		if ops, ok := cond.(bson.M); ok {
			if !matchOps(field, ops) {
				return false
			}
			continue
		}
		if !fieldEq(field, cond) {
			return false
		}
	}
	return true
}

func matchOps(field interface{}, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$eq":
			if !fieldEq(field, arg) {
				return false
			}
		case "$ne":
			if fieldEq(field, arg) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// fieldEq compares a stored field with a filter value; arrays match when any
// element equals the value.
func fieldEq(field, want interface{}) bool {
	if arr, ok := asArray(field); ok {
		if _, wantIsArr := asArray(want); !wantIsArr {
			for _, el := range arr {
				if valueEq(el, want) {
					return true
				}
			}
			return false
		}
	}
	return valueEq(field, want)
}

func asArray(v interface{}) (primitive.A, bool) {
	switch a := v.(type) {
	case primitive.A:
		return a, true
	case []interface{}:
		return primitive.A(a), true
	default:
		return nil, false
	}
}

func valueEq(a, b interface{}) bool {
	if an, aok := asFloat(a); aok {
		if bn, bok := asFloat(b); bok {
			return an == bn
		}
	}
	// typed strings (status enums, kinds) compare equal to their stored
	// plain-string form
	if as, aok := asString(a); aok {
		if bs, bok := asString(b); bok {
			return as == bs
		}
	}
	return reflect.DeepEqual(a, b)
}

func asString(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	default:
		return 0, false
	}
}

// applyUpdate mutates d in place with the supported update operators. The
// caller holds the store lock, so the whole update is atomic.
func applyUpdate(d bson.M, update bson.M, inserting bool) error {
	for op, rawFields := range update {
		fields, ok := asDocFields(rawFields)
		if !ok {
			return fmt.Errorf("%w: malformed %s", ErrUnavailable, op)
		}
		switch op {
		case "$set":
			for path, v := range fields {
				setPath(d, path, normalize(v))
			}
		case "$setOnInsert":
			if !inserting {
				continue
			}
			for path, v := range fields {
				setPath(d, path, normalize(v))
			}
		case "$inc":
			for path, v := range fields {
				delta, ok := asFloat(v)
				if !ok {
					return fmt.Errorf("%w: non-numeric $inc", ErrUnavailable)
				}
				cur, _ := lookup(d, path)
				base, _ := asFloat(cur)
				setPath(d, path, int64(base+delta))
			}
		case "$addToSet":
			for path, v := range fields {
				cur, _ := lookup(d, path)
				arr, _ := asArray(cur)
				exists := false
				for _, el := range arr {
					if valueEq(el, v) {
						exists = true
						break
					}
				}
				if !exists {
					setPath(d, path, append(arr, normalize(v)))
				}
			}
		case "$pull":
			for path, v := range fields {
				cur, _ := lookup(d, path)
				arr, _ := asArray(cur)
				kept := make(primitive.A, 0, len(arr))
				for _, el := range arr {
					if !valueEq(el, v) {
						kept = append(kept, el)
					}
				}
				setPath(d, path, kept)
			}
		case "$currentDate":
			for path := range fields {
				setPath(d, path, primitive.NewDateTimeFromTime(time.Now().UTC()))
			}
		default:
			return fmt.Errorf("%w: unsupported operator %s", ErrUnavailable, op)
		}
	}
	return nil
}

func asDocFields(v interface{}) (bson.M, bool) {
	f, ok := v.(bson.M)
	return f, ok
}

// normalize converts update values into the representation the bson codec
// would produce on a storage round trip.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return primitive.NewDateTimeFromTime(t.UTC())
	case *time.Time:
		if t == nil {
			return nil
		}
		return primitive.NewDateTimeFromTime(t.UTC())
	default:
		return v
	}
}

func sortDocs(docs []bson.M, order bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, s := range order {
			dir, _ := asFloat(s.Value)
			a, _ := lookup(docs[i], s.Key)
			b, _ := lookup(docs[j], s.Key)
			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			if dir < 0 {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	if an, aok := asFloat(a); aok {
		if bn, bok := asFloat(b); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := asString(a)
	bs, bok := asString(b)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}
