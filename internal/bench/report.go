package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sample is one measurement: problem size and elapsed seconds for the timed
// run. It serializes as the two-element array [n, dt].
type Sample struct {
	N       uint64
	Seconds float64
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d, %g]", s.N, s.Seconds)), nil
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var pair [2]json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	n, err := pair[0].Int64()
	if err != nil {
		return fmt.Errorf("sample size: %w", err)
	}
	dt, err := pair[1].Float64()
	if err != nil {
		return fmt.Errorf("sample duration: %w", err)
	}
	s.N, s.Seconds = uint64(n), dt
	return nil
}

// Series is the ordered measurements for one workload/implementation pair,
// in measurement order (increasing target duration).
type Series []Sample

// ImplSeries names the implementation a series was measured against.
type ImplSeries struct {
	Impl   string
	Series Series
}

// KindResult holds one workload kind's series for every implementation, in
// registration order. It serializes as a JSON object whose key order is the
// slice order; a plain map would lose that ordering.
type KindResult struct {
	Kind  string
	Impls []ImplSeries
}

func (k KindResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, is := range k.Impls {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(is.Impl)
		if err != nil {
			return nil, err
		}
		series, err := json.Marshal(is.Series)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(series)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report maps workload kinds to per-implementation series, preserving the
// order kinds were measured in.
type Report []KindResult

func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kr := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(kr.Kind)
		if err != nil {
			return nil, err
		}
		body, err := kr.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
