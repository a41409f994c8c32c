package bind

import (
	"reflect"

	"view-binder/internal/analyze"
	"view-binder/internal/match"
)

// Pair identifies a (target, source) type combination.
type Pair struct {
	Target reflect.Type
	Source reflect.Type
}

func (p Pair) String() string {
	return analyze.IDOf(p.Target).Short() + " <- " + analyze.IDOf(p.Source).Short()
}

// pairing is one bindable (target field, source field) correspondence.
type pairing struct {
	Pair    Pair
	Target  *analyze.FieldDescriptor
	Source  *analyze.FieldDescriptor
	Verdict match.Verdict
}

// pairings returns the compatible field pairs of target and source, in the
// target's field order.
func (b *Binder) pairings(target, source reflect.Type) ([]pairing, error) {
	key := Pair{Target: target, Source: source}
	if v, ok := b.pairs.Load(key); ok {
		return v.([]pairing), nil
	}

	v, err, _ := b.group.Do(analyze.FlightKey(target)+"<-"+analyze.FlightKey(source), func() (any, error) {
		if v, ok := b.pairs.Load(key); ok {
			return v, nil
		}

		pairs, err := b.computePairings(key)
		if err != nil {
			return nil, err
		}
		b.pairs.Store(key, pairs)

		return pairs, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]pairing), nil
}

func (b *Binder) computePairings(key Pair) ([]pairing, error) {
	tfm, err := b.meta.Fields(key.Target)
	if err != nil {
		return nil, err
	}
	sfm, err := b.meta.Fields(key.Source)
	if err != nil {
		return nil, err
	}

	var pairs []pairing
	for _, tf := range tfm.Fields() {
		sf := sfm.Get(tf.Name)
		if sf == nil {
			continue
		}

		res := b.resolver.Check(tf.Type, sf.Type)
		b.logf("bind: %s %s: %s (%s)", key, tf.Name, res.Verdict, res.Reason)
		if !res.Verdict.Accepted() {
			continue
		}

		pairs = append(pairs, pairing{Pair: key, Target: tf, Source: sf, Verdict: res.Verdict})
	}

	return pairs, nil
}
