package compare

import (
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
)

// AttributeCount returns the number of scalar leaves in v: objects and
// arrays sum their children, every other kind counts as one.
func AttributeCount(v value.Value) uint64 {
	switch v.Kind() {
	case value.KindObject:
		var sum uint64
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			sum += AttributeCount(field)
		}
		return sum
	case value.KindArray:
		var sum uint64
		for _, item := range v.Items() {
			sum += AttributeCount(item)
		}
		return sum
	default:
		return 1
	}
}

// WeightedCount returns the sum, over all scalar leaves of v, of the
// multiplicative weight an error at that leaf would carry: object keys
// multiply by spec.Weight(key) and descend into the key's child spec, array
// elements descend uniformly into spec.Content().
func WeightedCount(v value.Value, w float64, spec weight.Spec) float64 {
	switch v.Kind() {
	case value.KindObject:
		var sum float64
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			sum += WeightedCount(field, w*spec.Weight(k), spec.Child(k))
		}
		return sum
	case value.KindArray:
		content := spec.Content()
		var sum float64
		for _, item := range v.Items() {
			sum += WeightedCount(item, w, content)
		}
		return sum
	default:
		return w
	}
}
