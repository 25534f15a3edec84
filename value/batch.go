package value

import (
	"iter"

	"github.com/arloliu/cqlwire/frame"
)

// BatchValues supplies the ordered sequence of value lists for a batch
// request.
//
// BatchValuesIter must be callable any number of times, each call producing
// a fresh traversal over the same elements in the same order with identical
// bytes: the whole batch is re-driven from the start on every network retry.
// Sources must therefore be cheaply re-derivable (slices, re-invocable
// sequences), never single-use streams.
type BatchValues interface {
	BatchValuesIter() BatchValuesIterator
}

// BatchValuesIterator is a pull-based traversal over a batch's value lists.
// Callers invoke one of the three operations repeatedly until it reports
// exhaustion.
type BatchValuesIterator interface {
	// NextSerialized returns the next element in buffer form, built or
	// borrowed. ok is false once the traversal is exhausted.
	NextSerialized() (sv *SerializedValues, ok bool, err error)

	// WriteNextToRequest writes the next element's wire form directly into
	// buf, skipping the intermediate buffer when the source allows it.
	// ok is false once the traversal is exhausted.
	WriteNextToRequest(buf *frame.Buffer) (ok bool, err error)

	// SkipNext advances past the next element without producing bytes,
	// reporting whether an element was skipped.
	SkipNext() bool
}

// CountBatchValues drains it via SkipNext and returns the number of
// elements, encoding nothing.
func CountBatchValues(it BatchValuesIterator) int {
	n := 0
	for it.SkipNext() {
		n++
	}

	return n
}

// BatchValuesFromSlice adapts a slice of value lists. Every BatchValuesIter
// call re-reads the slice from the start.
func BatchValuesFromSlice[T ValueList](items []T) BatchValues {
	return sliceBatchValues[T](items)
}

// BatchValuesOf adapts a fixed set of possibly heterogeneous value lists,
// traversed by position.
func BatchValuesOf(items ...ValueList) BatchValues {
	return sliceBatchValues[ValueList](items)
}

type sliceBatchValues[T ValueList] []T

func (s sliceBatchValues[T]) BatchValuesIter() BatchValuesIterator {
	return &sliceBatchValuesIterator[T]{items: s}
}

type sliceBatchValuesIterator[T ValueList] struct {
	items []T
	idx   int
}

func (it *sliceBatchValuesIterator[T]) NextSerialized() (*SerializedValues, bool, error) {
	if it.idx >= len(it.items) {
		return nil, false, nil
	}
	vl := it.items[it.idx]
	it.idx++

	sv, err := vl.SerializedValues()

	return sv, true, err
}

func (it *sliceBatchValuesIterator[T]) WriteNextToRequest(buf *frame.Buffer) (bool, error) {
	if it.idx >= len(it.items) {
		return false, nil
	}
	vl := it.items[it.idx]
	it.idx++

	return true, WriteValueList(vl, buf)
}

func (it *sliceBatchValuesIterator[T]) SkipNext() bool {
	if it.idx >= len(it.items) {
		return false
	}
	it.idx++

	return true
}

// BatchValuesFromSeq adapts an iter.Seq source. The sequence is re-invoked
// for every traversal, so it must be re-derivable from a stable source
// (e.g. built over a slice); a single-use stream would violate the restart
// contract.
func BatchValuesFromSeq[T ValueList](seq iter.Seq[T]) BatchValues {
	return seqBatchValues[T]{seq: seq}
}

type seqBatchValues[T ValueList] struct {
	seq iter.Seq[T]
}

func (s seqBatchValues[T]) BatchValuesIter() BatchValuesIterator {
	next, stop := iter.Pull(s.seq)

	return &seqBatchValuesIterator[T]{next: next, stop: stop}
}

type seqBatchValuesIterator[T ValueList] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func (it *seqBatchValuesIterator[T]) pull() (T, bool) {
	var zero T
	if it.done {
		return zero, false
	}
	v, ok := it.next()
	if !ok {
		it.done = true
		it.stop()

		return zero, false
	}

	return v, true
}

func (it *seqBatchValuesIterator[T]) NextSerialized() (*SerializedValues, bool, error) {
	vl, ok := it.pull()
	if !ok {
		return nil, false, nil
	}

	sv, err := vl.SerializedValues()

	return sv, true, err
}

func (it *seqBatchValuesIterator[T]) WriteNextToRequest(buf *frame.Buffer) (bool, error) {
	vl, ok := it.pull()
	if !ok {
		return false, nil
	}

	return true, WriteValueList(vl, buf)
}

func (it *seqBatchValuesIterator[T]) SkipNext() bool {
	_, ok := it.pull()

	return ok
}

// NewBatchValuesFirstSerialized decorates rest, substituting an
// already-serialized buffer for its first element.
//
// Statement routing needs the first element's buffer before the rest of the
// batch is built; once computed, the traversal reuses that buffer instead of
// serializing element zero twice. When first is nil (e.g. a later retry that
// did not recompute it), the traversal behaves exactly like rest and
// rebuilds every element.
func NewBatchValuesFirstSerialized(rest BatchValues, first *SerializedValues) BatchValues {
	return &firstSerializedBatchValues{first: first, rest: rest}
}

type firstSerializedBatchValues struct {
	first *SerializedValues
	rest  BatchValues
}

func (b *firstSerializedBatchValues) BatchValuesIter() BatchValuesIterator {
	return &firstSerializedBatchValuesIterator{first: b.first, rest: b.rest.BatchValuesIter()}
}

type firstSerializedBatchValuesIterator struct {
	first *SerializedValues
	rest  BatchValuesIterator
}

// takeFirst consumes the precomputed buffer and discards whatever the
// underlying traversal would have produced at position zero.
func (it *firstSerializedBatchValuesIterator) takeFirst() *SerializedValues {
	f := it.first
	it.first = nil
	it.rest.SkipNext()

	return f
}

func (it *firstSerializedBatchValuesIterator) NextSerialized() (*SerializedValues, bool, error) {
	if it.first != nil {
		return it.takeFirst(), true, nil
	}

	return it.rest.NextSerialized()
}

func (it *firstSerializedBatchValuesIterator) WriteNextToRequest(buf *frame.Buffer) (bool, error) {
	if it.first != nil {
		it.takeFirst().WriteToRequest(buf)

		return true, nil
	}

	return it.rest.WriteNextToRequest(buf)
}

func (it *firstSerializedBatchValuesIterator) SkipNext() bool {
	if it.first != nil {
		it.takeFirst()

		return true
	}

	return it.rest.SkipNext()
}
