package bind

import (
	"reflect"

	"view-binder/internal/analyze"
	"view-binder/internal/diagnostic"
	"view-binder/internal/match"
	"view-binder/primitive"
	"view-binder/view"
)

const suggestThreshold = 0.7

// Explain reports, for every property of target, whether and why it would be
// bound from source. Both arguments may be instances or reflect.Types.
func (b *Binder) Explain(target, source any) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	key := Pair{Target: analyze.RuntimeType(target), Source: analyze.RuntimeType(source)}
	pairName := key.String()

	tfm, err := b.meta.Fields(key.Target)
	if err != nil {
		d.AddError(diagnostic.CodeMetadata, err.Error(), pairName, "")
		return d
	}
	sfm, err := b.meta.Fields(key.Source)
	if err != nil {
		d.AddError(diagnostic.CodeMetadata, err.Error(), pairName, "")
		return d
	}

	for _, tf := range tfm.Fields() {
		sf := sfm.Get(tf.Name)
		if sf == nil {
			w := d.AddWarning(diagnostic.CodeUnmatched, "no source property", pairName, tf.Name)
			w.Suggestions = match.Suggest(tf.Name, sfm.Names(), suggestThreshold, 3)
			continue
		}

		res := b.resolver.Check(tf.Type, sf.Type)
		if !res.Verdict.Accepted() {
			d.AddWarning(diagnostic.CodeIncompatible, res.Reason+": "+res.TargetType+" <- "+res.SourceType, pairName, tf.Name)
			continue
		}
		d.AddInfo(diagnostic.CodePaired, res.Verdict.String()+": "+res.Reason, pairName, tf.Name)

		if res.Verdict == match.VerdictBuiltin && sf.Type.Kind == analyze.TypeKindBuiltin {
			explainConversion(&d, sf.Declared, tf.Declared, pairName, tf.Name)
		}

		if res.Verdict == match.VerdictConstructible && view.IsCollection(tf.Type.Type) {
			coll := reflect.New(tf.Type.Type).Interface().(view.Collection)
			if _, err := b.elementMapping(tf, coll); err != nil {
				d.AddError(diagnostic.CodeElement, err.Error(), pairName, tf.Name)
			}
		}

		if !tf.Exported() {
			d.AddWarning(diagnostic.CodeUnwritable, "target field is unexported; the write will fail", pairName, tf.Name)
		}
	}

	return d
}

// explainConversion predicts the write of a builtin pair. Union sources are
// only known at runtime and are not checked.
func explainConversion(d *diagnostic.Diagnostics, from, to reflect.Type, pairName, field string) {
	switch conv := primitive.Classify(from, to); conv {
	case primitive.ConversionNone:
		d.AddWarning(diagnostic.CodeConversion, "non-null "+from.String()+" values will not convert to "+to.String(), pairName, field)
	case primitive.ConversionCheckedNumber:
		d.AddInfo(diagnostic.CodeConversion, conv.String()+": "+from.String()+" to "+to.String()+" fails when the value does not fit", pairName, field)
	}
}

// Pairs returns the names of the (target, source) property pairs Sync would
// bind, with their verdicts, in target field order.
func (b *Binder) Pairs(target, source any) ([]PairInfo, error) {
	pairs, err := b.pairings(analyze.RuntimeType(target), analyze.RuntimeType(source))
	if err != nil {
		return nil, err
	}

	out := make([]PairInfo, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, PairInfo{
			Target:  p.Target.Name,
			Source:  p.Source.Name,
			Type:    p.Target.Type.String(),
			Verdict: p.Verdict.String(),
		})
	}

	return out, nil
}

// PairInfo describes one bindable property pair.
type PairInfo struct {
	Target  string `yaml:"target"`
	Source  string `yaml:"source"`
	Type    string `yaml:"type"`
	Verdict string `yaml:"verdict"`
}
